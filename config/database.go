package config

import (
	"dating-chat-api/config/common"
	"dating-chat-api/config/logger"
	"dating-chat-api/entity"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type DBConfig struct {
	*gorm.DB
	*logger.AppLogger
}

func NewDB(config *common.Config, log *logger.AppLogger) *DBConfig {
	db := initDatabase(config, log)
	return &DBConfig{DB: db, AppLogger: log}
}

func (db *DBConfig) GetDB() *gorm.DB {
	return db.DB
}

func initDatabase(cfg *common.Config, log *logger.AppLogger) *gorm.DB {
	dbHost, dbUser, dbPassword, dbName, dbPort := cfg.GetDatabaseConfig()
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbHost, dbUser, dbPassword, dbName, dbPort,
	)
	// table names come from each entity's TableName
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{NowFunc: func() time.Time { return time.Now().UTC() }})
	if err != nil {
		log.Http.Error.Error().Err(err).Msg("failed to connect to database")
		panic("failed to connect database")
	}

	log.Http.Info.Info().Str("host", dbHost).Str("db", dbName).Msg("connection opened to database")
	conn, err := db.DB()
	if err != nil {
		panic("failed to connect database")
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Match{},
		&entity.ChatRoom{},
		&entity.Message{},
		&entity.MessageStatus{},
		&entity.TypingStatus{},
	); err != nil {
		log.Http.Error.Error().Err(err).Msg("failed to run migration")
		panic("failed run migration")
	}

	conn.SetMaxIdleConns(10)
	conn.SetMaxOpenConns(100)
	conn.SetConnMaxLifetime(time.Second * time.Duration(300))
	return db
}
