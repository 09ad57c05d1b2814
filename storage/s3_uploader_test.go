package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestS3Uploader_UploadReturnsKey(t *testing.T) {
	client := new(mockS3)
	uploader := NewS3Uploader(client, "chat-images", "eu-west-1", "rooms", "")
	uploader.now = func() time.Time { return time.UnixMilli(1700000000000) }

	var body string
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		raw, _ := io.ReadAll(in.Body)
		body = string(raw)
		return aws.ToString(in.Bucket) == "chat-images" && aws.ToString(in.ContentType) == "image/jpeg"
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	ref, err := uploader.Upload(context.Background(), []byte("jpeg-bytes"), "image/jpeg")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "rooms/1700000000000-"), ref)
	assert.Equal(t, "jpeg-bytes", body)
	client.AssertExpectations(t)
}

func TestS3Uploader_UploadFailureSurfaces(t *testing.T) {
	client := new(mockS3)
	uploader := NewS3Uploader(client, "chat-images", "eu-west-1", "", "")
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("network down")).Once()

	ref, err := uploader.Upload(context.Background(), []byte("x"), "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "network down")
	assert.Empty(t, ref)
}

func TestS3Uploader_RejectsEmptyBlob(t *testing.T) {
	client := new(mockS3)
	uploader := NewS3Uploader(client, "chat-images", "eu-west-1", "", "")

	_, err := uploader.Upload(context.Background(), nil, "image/png")

	assert.ErrorIs(t, err, ErrEmptyBlob)
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
}

func TestS3Uploader_PublicURLContainsRef(t *testing.T) {
	hosted := NewS3Uploader(nil, "chat-images", "eu-west-1", "", "")
	assert.Equal(t, "https://chat-images.s3.eu-west-1.amazonaws.com/a/b.jpg", hosted.PublicURL("a/b.jpg"))

	minio := NewS3Uploader(nil, "chat-images", "", "", "http://localhost:9000/")
	assert.Equal(t, "http://localhost:9000/chat-images/a/b.jpg", minio.PublicURL("a/b.jpg"))

	assert.Empty(t, minio.PublicURL(""))
}

func TestObjectName_IsUniquePerCall(t *testing.T) {
	now := time.UnixMilli(42)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		name := ObjectName("/chat/", now)
		assert.True(t, strings.HasPrefix(name, "chat/42-"), name)
		assert.False(t, seen[name], "duplicate object name %s", name)
		seen[name] = true
	}
}
