package jobs

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"

	"noteapp/internal/domain/entity"
	"noteapp/internal/service"
	"noteapp/internal/utils"
)

// ConnectionCleaner periodically drops websocket connections whose token
// expired or whose client stopped sending heartbeats.
type ConnectionCleaner struct {
	wsService *service.WebSocketService
}

func NewConnectionCleaner(wsService *service.WebSocketService) *ConnectionCleaner {
	return &ConnectionCleaner{wsService: wsService}
}

func (c *ConnectionCleaner) Start(ctx context.Context) {
	// Poll every 5 minutes
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	log.Info("Connection cleaner cron started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping connection cleaner...")
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

func (c *ConnectionCleaner) cleanup(ctx context.Context) {
	now := utils.NowUTC()
	hbLimit := now - entity.HeartbeatPeriodMillis - entity.HeartbeatToleranceMillis

	conns, err := c.wsService.ConnRepo.FindStale(now, hbLimit)
	if err != nil {
		log.Errorf("Cleaner: failed to fetch stale connections: %v", err)
		return
	}

	if len(conns) == 0 {
		return
	}

	log.Infof("Cleaner: found %d stale connections. Terminating...", len(conns))
	for _, conn := range conns {
		c.wsService.CloseConnection(ctx, conn.ConnectionID)
	}
}
