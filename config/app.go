package config

import (
	"dating-chat-api/config/common"
	"dating-chat-api/config/logger"
	"dating-chat-api/handler"
	"dating-chat-api/middleware"
	"dating-chat-api/notification"
	"dating-chat-api/realtime"
	"dating-chat-api/repository"
	"dating-chat-api/routes"
	"dating-chat-api/screen"
	"dating-chat-api/security"
	"dating-chat-api/storage"
	"dating-chat-api/usecase"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type AppConfig struct {
	*fiber.App
	*common.Config
	*validator.Validate
	*logrus.Logger
	*DBConfig
	*security.JWT
	*middleware.Middleware
	Redis    *redis.Client
	S3       *s3.Client
	WSLogger *logger.AppLogger
}

func RunServer() {
	newConfig := common.NewViper()
	logDir, _ := newConfig.GetLogConfig()
	appLog := logger.NewLogger(logDir)
	log := NewLogrus(newConfig)
	app := NewFiber(newConfig, log)
	newDB := NewDB(newConfig, appLog)
	newValidator := NewValidator()
	newJWT := security.NewJWT(newConfig)
	newMiddleware := middleware.NewMiddleware(newConfig, log)

	app.Use(cors.New(cors.Config{
		AllowOrigins: newConfig.GetCorsOrigins(),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	App(&AppConfig{
		App:        app,
		Config:     newConfig,
		Validate:   newValidator,
		Logger:     log,
		DBConfig:   newDB,
		JWT:        newJWT,
		Middleware: newMiddleware,
		Redis:      NewRedis(newConfig, appLog),
		S3:         NewS3(newConfig, appLog),
		WSLogger:   appLog,
	})

	if err := app.Listen(":" + newConfig.GetAppPort()); err != nil {
		log.WithError(err).Errorf("Failed to start server: %v", err)
	}
}

func App(aC *AppConfig) {
	db := aC.GetDB()
	newUserRepository := repository.NewUserRepository(db)
	newMatchRepository := repository.NewMatchRepository(db)
	newChatRepository := repository.NewChatRepository(db)
	newMessageRepository := repository.NewMessageRepository(db)
	newMessageStatusRepository := repository.NewMessageStatusRepository(db)
	newTypingRepository := repository.NewTypingRepository(db)

	var feed realtime.Feed = realtime.NewLocalFeed()
	if aC.Redis != nil {
		feed = realtime.NewRedisFeed(aC.Redis, aC.Logger)
	}

	s3cfg := aC.Config.GetS3Config()
	uploader := storage.NewS3Uploader(aC.S3, s3cfg.Bucket, s3cfg.Region, s3cfg.KeyPrefix, s3cfg.PublicURL)
	notifier := notification.NewExpoDispatcher(newChatRepository, newUserRepository, aC.Config.GetPushURL(), aC.Logger)

	newMatchUsecase := usecase.NewMatchUsecase(newMatchRepository, aC.Validate, aC.Logger)
	newChatUsecase := usecase.NewChatUsecase(newChatRepository, newMessageRepository, newMatchUsecase, aC.Logger)
	newMessageUsecase := usecase.NewMessageUsecase(newMessageRepository, newMessageStatusRepository, newChatUsecase, uploader, feed, notifier, aC.Logger)
	newTypingUsecase := usecase.NewTypingUsecase(newTypingRepository, feed, aC.Logger)

	newMatchHandler := handler.NewMatchHandler(newMatchUsecase, aC.Logger)
	newChatHandler := handler.NewChatHandler(newChatUsecase, newMessageUsecase, newTypingUsecase, aC.Validate, aC.Logger)
	wsHandler := handler.NewWebSocketHandler(screen.Dependencies{
		Chats:          newChatUsecase,
		Messages:       newMessageUsecase,
		Typing:         newTypingUsecase,
		Feed:           feed,
		Log:            aC.Logger,
		TypingDebounce: aC.Config.GetTypingDebounce(),
	}, aC.JWT, aC.Validate, aC.WSLogger)

	route := routes.ConfigRoute{
		App:              aC.App,
		Middleware:       aC.Middleware,
		MatchHandler:     newMatchHandler,
		ChatHandler:      newChatHandler,
		WebSocketHandler: wsHandler,
	}
	route.GetRoute()
}
