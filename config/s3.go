package config

import (
	"context"
	"dating-chat-api/config/common"
	"dating-chat-api/config/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// NewS3 builds the client from the default credential chain. A custom
// S3_ENDPOINT (MinIO, LocalStack) switches to path-style addressing.
func NewS3(cfg *common.Config, log *logger.AppLogger) *s3.Client {
	s3cfg := cfg.GetS3Config()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(s3cfg.Region))
	if err != nil {
		log.Http.Error.Error().Err(err).Msg("failed to load AWS configuration")
		panic("failed to load aws config")
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s3cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s3cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
}
