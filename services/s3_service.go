package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/11Rojas/mascoticas-backend/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Service hands out presigned URLs so clients upload chat images straight
// to the bucket and the API never proxies image bytes.
type S3Service struct {
	Bucket    string
	presigner *s3.PresignClient
}

// NewS3ServiceFromEnv builds the service from AWS_REGION and
// S3_BUCKET_NAME.
func NewS3ServiceFromEnv(ctx context.Context) (*S3Service, error) {
	bucket := os.Getenv("S3_BUCKET_NAME")
	if bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET_NAME must be set")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Service{
		Bucket:    bucket,
		presigner: s3.NewPresignClient(s3.NewFromConfig(cfg)),
	}, nil
}

// PresignUpload returns a presigned PUT URL for a chat image plus the
// object key the client should reference in its message.
func (s *S3Service) PresignUpload(ctx context.Context, fileName, contentType string) (string, string, error) {
	if fileName == "" || contentType == "" {
		return "", "", models.NewValidationError("fileName and contentType are required")
	}
	key := "chat-images/" + time.Now().Format("20060102150405") + "-" + uuid.NewString()[:8] + "-" + fileName
	params := &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}
	presigned, err := s.presigner.PresignPutObject(ctx, params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", "", fmt.Errorf("failed to presign upload: %w", err)
	}
	return presigned.URL, key, nil
}

// PresignRead returns a presigned GET URL for a stored object key.
func (s *S3Service) PresignRead(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", models.NewValidationError("key is required")
	}
	params := &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	}
	presigned, err := s.presigner.PresignGetObject(ctx, params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", fmt.Errorf("failed to presign read: %w", err)
	}
	return presigned.URL, nil
}
