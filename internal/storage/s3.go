package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store writes objects to one bucket and mints presigned read grants
// for them. Minted grants are remembered so repeat reads of the same
// object reuse the grant until it expires.
type S3Store struct {
	client    *s3.Client
	presigner *s3.PresignClient
	uploader  *manager.Uploader
	bucket    string
	region    string
	grants    grantRegistry
}

func NewS3Store(ctx context.Context, region, bucket string) (*S3Store, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg)
	return &S3Store{
		client:    client,
		presigner: s3.NewPresignClient(client),
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		region:    region,
	}, nil
}

// Upload stores data under key and returns the canonical bucket URL.
func (s *S3Store) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return s.ObjectURL(key), nil
}

// ObjectURL is the canonical backing-store address for key.
func (s *S3Store) ObjectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, url.PathEscape(key))
}

// PresignRead returns a time-limited read URL for key, reusing an
// existing unexpired grant for the same object when one is known.
func (s *S3Store) PresignRead(ctx context.Context, key string, ttl time.Duration) (string, error) {
	now := time.Now()
	if u, ok := s.grants.find(key, now); ok {
		return u, nil
	}
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", err
	}
	s.grants.add(key, req.URL, now.Add(ttl))
	return req.URL, nil
}
