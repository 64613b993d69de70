// Package storage archives generated reports in MinIO.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"gramhealth-go/internal/config"
	"gramhealth-go/pkg/log"
)

// MinioClient is the process-wide client, set by InitMinIO.
var MinioClient *minio.Client

// InitMinIO creates the client and the bucket if it does not exist.
func InitMinIO(cfg config.MinIOConfig) {
	var err error
	MinioClient, err = minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Fatal("failed to create MinIO client", err)
	}

	ctx := context.Background()
	exists, err := MinioClient.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		log.Fatal("failed to check MinIO bucket", err)
	}
	if !exists {
		log.Infof("bucket '%s' does not exist, creating it", cfg.BucketName)
		if err := MinioClient.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			log.Fatal("failed to create MinIO bucket", err)
		}
	}
	log.Info("MinIO client initialized")
}

// ReportArchive stores report documents and hands out time-limited download links.
type ReportArchive struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

// NewReportArchive returns an archive writing to bucket with links valid for expiry.
func NewReportArchive(client *minio.Client, bucket string, expiry time.Duration) *ReportArchive {
	return &ReportArchive{client: client, bucket: bucket, expiry: expiry}
}

// Store uploads data as objectName and returns a presigned GET URL for it.
func (a *ReportArchive) Store(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	_, err := a.client.PutObject(ctx, a.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload report: %w", err)
	}
	u, err := a.client.PresignedGetObject(ctx, a.bucket, objectName, a.expiry, nil)
	if err != nil {
		log.Errorf("presigning %s failed: %v", objectName, err)
		return "", fmt.Errorf("presign report: %w", err)
	}
	return u.String(), nil
}
