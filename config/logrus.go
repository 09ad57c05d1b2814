package config

import (
	"dating-chat-api/config/common"

	"github.com/sirupsen/logrus"
)

func NewLogrus(cfg *common.Config) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	_, levelName := cfg.GetLogConfig()
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		log.WithError(err).Warnf("unknown LOG_LEVEL %q, using info", levelName)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
