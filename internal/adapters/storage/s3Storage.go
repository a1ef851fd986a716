package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3ImageStorage uploads images to a bucket and returns their public URL
type S3ImageStorage struct {
	Client *s3.Client
	Bucket string
	Region string
	Folder string
	Now    func() time.Time
}

type S3Options struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

func NewS3ImageStorage(ctx context.Context, opts S3Options) (*S3ImageStorage, error) {
	loaders := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	// without static keys the default credential chain applies
	if opts.AccessKeyID != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &S3ImageStorage{
		Client: s3.NewFromConfig(cfg),
		Bucket: opts.Bucket,
		Region: opts.Region,
		Folder: "images",
		Now:    time.Now,
	}, nil
}

func (s *S3ImageStorage) Save(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("%s/%s", s.Folder, StoredName(name, s.Now()))

	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.Bucket, s.Region, key), nil
}
