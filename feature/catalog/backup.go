package catalog

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"tag-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// BackupStore uploads catalog snapshots to object storage before every
// mutation. Uploads are best effort: a dead backup target never blocks a
// catalog save.
type BackupStore struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewBackupStore creates a backup store over the given bucket.
func NewBackupStore(client storage.Client, bucket string, logger *zap.Logger) *BackupStore {
	return &BackupStore{client: client, bucket: bucket, logger: logger}
}

// Upload stores one timestamped snapshot of the catalog file content.
func (b *BackupStore) Upload(ctx context.Context, data []byte) error {
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return fmt.Errorf("failed to check backup bucket: %w", err)
	}
	if !exists {
		if err := b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create backup bucket: %w", err)
		}
	}

	object := fmt.Sprintf("%s/%s.json", FileName, time.Now().UTC().Format("20060102-150405"))
	_, err = b.client.PutObject(ctx, b.bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload catalog backup: %w", err)
	}

	b.logger.Debug("Catalog snapshot uploaded", zap.String("object", object), zap.Int("bytes", len(data)))
	return nil
}
