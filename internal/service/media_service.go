package service

import (
	"context"
	"fmt"
	"log"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// MediaService issues short-lived signed URLs for stored media objects
// via Amazon S3. With no bucket configured it runs disabled and resolves
// every key to nil, which clients render as a placeholder.
type MediaService struct {
	presigner *s3.PresignClient
	bucket    string
	urlExpiry time.Duration
	enabled   bool
	debug     bool
}

// NewMediaService creates a new media service
func NewMediaService(ctx context.Context, awsRegion, bucket string, urlExpiry time.Duration, debug bool) (*MediaService, error) {
	if bucket == "" {
		log.Println("Media service disabled: MEDIA_BUCKET not configured")
		return &MediaService{
			urlExpiry: urlExpiry,
			enabled:   false,
			debug:     debug,
		}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	log.Printf("Media service enabled: bucket=%s, region=%s, url expiry=%s", bucket, awsRegion, urlExpiry)

	return &MediaService{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		urlExpiry: urlExpiry,
		enabled:   true,
		debug:     debug,
	}, nil
}

// IsEnabled returns whether the media service is enabled
func (s *MediaService) IsEnabled() bool {
	return s.enabled
}

// ResolveURL returns a signed GET URL for a stored object, or nil when
// resolution fails. Failures are logged and never escalated.
func (s *MediaService) ResolveURL(ctx context.Context, objectKey string) *string {
	if !s.enabled || objectKey == "" {
		return nil
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(s.urlExpiry))
	if err != nil {
		log.Printf("Failed to presign GET for %s: %v", objectKey, err)
		return nil
	}

	if s.debug {
		log.Printf("[DEBUG] Presigned GET for %s (expires in %s)", objectKey, s.urlExpiry)
	}

	return &req.URL
}

// PresignUpload returns a signed PUT URL plus the object key the client
// must upload to. kind scopes the key prefix (e.g. "video", "avatar").
func (s *MediaService) PresignUpload(ctx context.Context, kind, filename string) (uploadURL, objectKey string, err error) {
	if !s.enabled {
		return "", "", fmt.Errorf("media service is disabled")
	}

	objectKey = path.Join(kind, uuid.New().String()+path.Ext(filename))

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(s.urlExpiry))
	if err != nil {
		return "", "", fmt.Errorf("failed to presign upload: %w", err)
	}

	if s.debug {
		log.Printf("[DEBUG] Presigned PUT for %s", objectKey)
	}

	return req.URL, objectKey, nil
}
