package service

import (
	"context"

	"github.com/labstack/gommon/log"

	"noteapp/internal/contract"
	"noteapp/internal/domain/entity"
	"noteapp/internal/domain/events"
	"noteapp/internal/infrastructure/aws/websocket"
	"noteapp/internal/utils"
	"noteapp/internal/utils/apierror"
)

type ConnectionRepository interface {
	Save(conn *entity.Connection) error
	Delete(connID string) error
	FindByUserID(userID int64) ([]string, error)
	FindByUserIDs(userIDs []int64) ([]string, error)
	FindStale(now, hbLimit int64) ([]*entity.Connection, error)
	UpdateHeartbeat(connID string, now int64) error
}

// WebSocketService keeps a registry of API Gateway connections per user
// and pushes note events to them so clients can refresh their local
// caches without polling.
type WebSocketService struct {
	ConnRepo ConnectionRepository
	Gateway  websocket.GatewayClient
}

func NewWebSocketService(repo ConnectionRepository, gateway websocket.GatewayClient) *WebSocketService {
	return &WebSocketService{
		ConnRepo: repo,
		Gateway:  gateway,
	}
}

func (s *WebSocketService) RegisterConnection(userID int64, connectionID string, exp int64) apierror.ErrorResponse {
	now := utils.NowUTC()
	conn := &entity.Connection{
		ConnectionID:    connectionID,
		UserID:          userID,
		ExpiresAt:       exp * 1000, // "exp" is stored in seconds, our app uses millis
		LastHeartbeatAt: now,        // Avoid users getting disconnected immediately
		CreatedAt:       now,
	}

	if err := s.ConnRepo.Save(conn); err != nil {
		log.Errorf("failed to save connection: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

func (s *WebSocketService) RemoveConnection(connectionID string) {
	// We don't return error here because if it fails, it's not the client's fault
	_ = s.ConnRepo.Delete(connectionID)
}

func (s *WebSocketService) HandleMessage(msg *contract.IncomingSocketMessage, connID string) {
	switch msg.Type {
	case contract.EventPing:
		s.handlePing(connID)
	}
}

// DispatchToUsers pushes an event to every open connection of the listed
// users. One stale connection never blocks the others.
func (s *WebSocketService) DispatchToUsers(ctx context.Context, userIDs []int64, evt events.SocketEvent) {
	conns, err := s.ConnRepo.FindByUserIDs(userIDs)
	if err != nil {
		log.Errorf("failed to fetch connections for users %v: %v", userIDs, err)
		return
	}

	envelope := &contract.OutgoingSocketMessage{
		Type: evt.GetType(),
		Data: evt,
	}

	for _, connID := range conns {
		_ = s.Gateway.PostToConnection(ctx, connID, envelope)
	}
}

// CloseConnection notifies and then drops a single connection, used by
// the stale-connection cleaner.
func (s *WebSocketService) CloseConnection(ctx context.Context, connID string) {
	_ = s.Gateway.PostToConnection(ctx, connID, &contract.OutgoingSocketMessage{
		Type: contract.EventSessionExpired,
	})
	_ = s.Gateway.DeleteConnection(ctx, connID)
	_ = s.ConnRepo.Delete(connID)
}

func (s *WebSocketService) handlePing(connID string) {
	now := utils.NowUTC()
	if err := s.ConnRepo.UpdateHeartbeat(connID, now); err != nil {
		log.Errorf("failed to update heartbeat: %v", err)
		return
	}

	go func(conn string) {
		_ = s.Gateway.PostToConnection(context.Background(), conn, &contract.OutgoingSocketMessage{
			Type: contract.EventAck,
		})
	}(connID)
}
