package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Uploader stores message attachments and resolves them to fetchable URLs.
type Uploader interface {
	Upload(ctx context.Context, blob []byte, contentType string) (string, error)
	PublicURL(ref string) string
}

// ObjectName builds a key that concurrent senders cannot collide on:
// millisecond timestamp plus a random uuid.
func ObjectName(prefix string, now time.Time) string {
	name := fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString())
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
