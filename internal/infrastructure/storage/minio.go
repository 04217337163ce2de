package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hospitalvoice/booking-agent/pkg/config"
)

// RecordingStore keeps call recordings in a MinIO bucket
type RecordingStore struct {
	client    *minio.Client
	bucket    string
	publicURL string // public endpoint when MinIO sits behind a reverse proxy
}

// NewRecordingStore creates a MinIO-backed recording store
func NewRecordingStore(cfg *config.StorageConfig) (*RecordingStore, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	store := &RecordingStore{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: cfg.PublicURL,
	}

	ctx := context.Background()
	if err := store.ensureBucketWithPolicy(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return store, nil
}

// ensureBucketWithPolicy ensures the bucket exists with a public read policy
// so the transcription provider can fetch recordings
func (s *RecordingStore) ensureBucketWithPolicy(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, s.bucket)

	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}
	return nil
}

// UploadRecording stores a call recording and returns its object name
func (s *RecordingStore) UploadRecording(ctx context.Context, callSid string, reader io.Reader, size int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("recordings/%s/%d.wav", callSid, time.Now().Unix())
	if contentType == "" {
		contentType = "audio/wav"
	}

	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload recording: %w", err)
	}
	return objectName, nil
}

// RecordingURL returns a presigned download URL for a stored recording
func (s *RecordingStore) RecordingURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	if s.publicURL != "" {
		// Swap the internal endpoint for the public one, keeping path and query
		urlStr := url.String()
		prefixLen := len(url.Scheme) + 3 + len(url.Host)
		if prefixLen < len(urlStr) {
			return s.publicURL + urlStr[prefixLen:], nil
		}
	}
	return url.String(), nil
}

// ListRecordings lists stored recording object names under a prefix
func (s *RecordingStore) ListRecordings(ctx context.Context, prefix string) ([]string, error) {
	var objects []string

	objectCh := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		objects = append(objects, object.Key)
	}
	return objects, nil
}
