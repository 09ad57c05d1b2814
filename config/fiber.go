package config

import (
	"dating-chat-api/config/common"
	"dating-chat-api/handler"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const maxUploadBytes = 10 * 1024 * 1024

func NewFiber(cfg *common.Config, log *logrus.Logger) *fiber.App {
	appName := cfg.GetAppConfig()
	return fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		StrictRouting: true,
		AppName:       appName,
		BodyLimit:     maxUploadBytes,
		ErrorHandler:  handler.NewErrorHandler(log),
	})
}
