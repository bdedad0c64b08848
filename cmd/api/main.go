package main

import (
	"context"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"noteapp/internal/domain/policy"
	"noteapp/internal/domain/sqlite"
	"noteapp/internal/domain/sqlite/repository"
	"noteapp/internal/http/handler"
	authmw "noteapp/internal/http/middleware"
	cognitoclient "noteapp/internal/infrastructure/aws/cognito"
	"noteapp/internal/infrastructure/aws/storage"
	"noteapp/internal/infrastructure/aws/websocket"
	"noteapp/internal/service"
	"noteapp/internal/service/jobs"
	"noteapp/internal/utils"
	"noteapp/internal/utils/uid"
	"noteapp/internal/utils/validators"
)

const envVarsPrefix = "/noteapp/prod/"

func main() {
	validate := validator.New()
	registerValidators(validate)

	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env
		err := godotenv.Load()
		if err != nil {
			panic(err)
		}
	}

	machineID, _ := strconv.ParseInt(os.Getenv("MACHINE_ID"), 10, 64)
	uid.Init(machineID)

	region := os.Getenv("AWS_COGNITO_REGION")
	poolID := os.Getenv("AWS_COGNITO_USER_POOL_ID")
	if err := utils.InitJWKS(region, poolID); err != nil {
		panic(err)
	}

	// Init SQLite
	db, err := sqlite.Init()
	if err != nil {
		panic(err)
	}

	// Init cognito client
	cogClient, err := cognitoclient.InitCognitoClient()
	if err != nil {
		panic(err)
	}

	// Init S3 client
	s3Client, err := storage.NewStorageClient()
	if err != nil {
		panic(err)
	}

	// Init API Gateway websocket client
	gateway, err := websocket.NewAWSGatewayClient(
		context.Background(),
		os.Getenv("WS_GATEWAY_ENDPOINT"),
		os.Getenv("WS_GATEWAY_REGION"),
	)
	if err != nil {
		panic(err)
	}

	// Getting repos
	noteRepo := repository.NewNoteRepository(db)
	tagRepo := repository.NewTagRepository(db)
	userRepo := repository.NewUserRepository(db)
	connRepo := repository.NewConnectionRepository(db)

	// Getting services
	notePolicy := policy.NewNotePolicy()
	wsService := service.NewWebSocketService(connRepo, gateway)
	tagService := service.NewTagService(tagRepo)
	noteService := service.NewNoteService(noteRepo, tagService, notePolicy, s3Client, wsService, validate)
	shareService := service.NewShareService(noteRepo, userRepo, notePolicy, wsService, validate)
	userService := service.NewUserService(userRepo, validate, cogClient)

	// Getting handlers
	noteRoutes := handler.NewNoteDefault(noteService)
	shareRoutes := handler.NewShareDefault(shareService)
	tagRoutes := handler.NewTagDefault(tagService)
	userRoutes := handler.NewUserDefault(userService)
	wsRoutes := handler.NewWSDefault(wsService)

	// Stale websocket connection cleanup
	cleanerCtx, stopCleaner := context.WithCancel(context.Background())
	defer stopCleaner()
	go jobs.NewConnectionCleaner(wsService).Start(cleanerCtx)

	e := echo.New()
	e.Use(echomw.CORS())
	e.Use(echomw.BodyLimit("30M"))

	authed := authmw.NewAuthMiddleware(&authmw.AuthMiddlewareConfig{UserRepo: userRepo})

	// Notes
	e.GET("/api/notes", noteRoutes.GetNotes, authed)
	e.GET("/api/notes/shared", shareRoutes.GetSharedNotes, authed)
	e.GET("/api/notes/:id", noteRoutes.GetNote, authed)
	e.POST("/api/notes", noteRoutes.CreateNote, authed)
	e.PATCH("/api/notes/:id", noteRoutes.UpdateNote, authed)
	e.DELETE("/api/notes/:id", noteRoutes.DeleteNote, authed)

	// Sharing
	e.POST("/api/notes/:id/shares", shareRoutes.ShareNote, authed)
	e.DELETE("/api/notes/:id/shares/:userId", shareRoutes.RevokeAccess, authed)

	// Tags
	e.GET("/api/tags", tagRoutes.GetTags, authed)

	// Images
	e.POST("/api/images", noteRoutes.UploadImage, authed)

	// Users
	e.POST("/api/users", userRoutes.Register)
	e.POST("/api/users/login", userRoutes.Login)
	e.POST("/api/users/logout", userRoutes.Logout, authed)
	e.POST("/api/users/confirms", userRoutes.ConfirmSignup)
	e.POST("/api/users/confirms/resend", userRoutes.ResendConfirmation)
	e.POST("/api/users/check-email", userRoutes.CheckEmail)
	e.GET("/api/users/@me", userRoutes.GetMe, authed)
	e.GET("/api/users/search", userRoutes.SearchUsers, authed)

	// WebSocket lifecycle (API Gateway proxies these)
	e.POST("/api/ws/connect", wsRoutes.HandleConnect, authed)
	e.POST("/api/ws/disconnect", wsRoutes.HandleDisconnect)
	e.POST("/api/ws/message", wsRoutes.HandleMessage)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	if err := e.Start(":7070"); err != nil {
		panic(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("hasupper", validators.HasUpper)
	_ = validate.RegisterValidation("haslower", validators.HasLower)
	_ = validate.RegisterValidation("hasdigit", validators.HasDigit)
	_ = validate.RegisterValidation("hasspecial", validators.HasSpecial)
	_ = validate.RegisterValidation("nodupes", validators.NoDupes)
	_ = validate.RegisterValidation("nospaces", validators.NoWhiteSpaces)
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(os.Getenv("AWS_SSM_REGION")))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
