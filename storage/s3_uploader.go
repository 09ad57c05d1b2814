package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrEmptyBlob = errors.New("attachment is empty")

// S3API is the part of *s3.Client the uploader needs.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Uploader struct {
	Client    S3API
	Bucket    string
	Region    string
	KeyPrefix string
	// PublicBaseURL overrides the AWS virtual-host URL, e.g. for MinIO or a CDN.
	PublicBaseURL string

	now func() time.Time
}

func NewS3Uploader(client S3API, bucket, region, keyPrefix, publicBaseURL string) *S3Uploader {
	return &S3Uploader{
		Client:        client,
		Bucket:        bucket,
		Region:        region,
		KeyPrefix:     keyPrefix,
		PublicBaseURL: publicBaseURL,
		now:           time.Now,
	}
}

func (u *S3Uploader) Upload(ctx context.Context, blob []byte, contentType string) (string, error) {
	if len(blob) == 0 {
		return "", ErrEmptyBlob
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := ObjectName(u.KeyPrefix, u.clock())
	_, err := u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(blob),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(blob))),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

func (u *S3Uploader) PublicURL(ref string) string {
	if ref == "" {
		return ""
	}
	if u.PublicBaseURL != "" {
		return strings.TrimRight(u.PublicBaseURL, "/") + "/" + u.Bucket + "/" + ref
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.Bucket, u.Region, ref)
}

func (u *S3Uploader) clock() time.Time {
	if u.now == nil {
		return time.Now()
	}
	return u.now()
}
