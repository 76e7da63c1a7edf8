package s3storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	appconfig "github.com/GoArmGo/CommunityApp/internal/config"
)

// Client работает с S3-совместимым хранилищем (AWS S3 или MinIO)
type Client struct {
	s3Client   *s3.Client
	presigner  *s3.PresignClient
	uploader   *manager.Uploader
	bucketName string
	publicBase string
	logger     *slog.Logger
}

// NewClient создает клиент S3 по конфигурации и проверяет, что бакет существует.
// Если бакета нет, он создаётся.
func NewClient(ctx context.Context, cfg *appconfig.Config, logger *slog.Logger) (*Client, error) {
	endpoint := cfg.S3EndpointURL()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	c := newClient(s3Client, cfg.S3.BucketName, publicBaseURL(cfg.S3.PublicURL, endpoint, cfg.S3.BucketName, cfg.S3.Region), logger)
	if err := c.ensureBucket(ctx, cfg.S3.Region); err != nil {
		return nil, err
	}
	return c, nil
}

func newClient(s3Client *s3.Client, bucket, publicBase string, logger *slog.Logger) *Client {
	return &Client{
		s3Client:   s3Client,
		presigner:  s3.NewPresignClient(s3Client),
		uploader:   manager.NewUploader(s3Client),
		bucketName: bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
		logger:     logger,
	}
}

// publicBaseURL определяет, с какого адреса объекты бакета доступны снаружи
func publicBaseURL(publicURL, endpoint, bucket, region string) string {
	switch {
	case publicURL != "":
		return publicURL
	case endpoint != "":
		return strings.TrimRight(endpoint, "/") + "/" + bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
}

func (c *Client) ensureBucket(ctx context.Context, region string) error {
	headCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := c.s3Client.HeadBucket(headCtx, &s3.HeadBucketInput{Bucket: aws.String(c.bucketName)})
	if err == nil {
		c.logger.Info("bucket already exists", "bucket", c.bucketName)
		return nil
	}

	var notFound *types.NotFound
	if !errors.As(err, &notFound) {
		c.logger.Warn("head bucket failed, trying to create", "bucket", c.bucketName, "error", err)
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(c.bucketName)}
	// us-east-1 не принимает LocationConstraint
	if region != "" && region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		}
	}
	if _, err := c.s3Client.CreateBucket(ctx, input); err != nil {
		return fmt.Errorf("failed to create bucket '%s': %w", c.bucketName, err)
	}

	waiter := s3.NewBucketExistsWaiter(c.s3Client)
	if err := waiter.Wait(ctx, &s3.HeadBucketInput{Bucket: aws.String(c.bucketName)}, 30*time.Second); err != nil {
		return fmt.Errorf("failed waiting for bucket '%s' to be created: %w", c.bucketName, err)
	}

	c.logger.Info("bucket created", "bucket", c.bucketName)
	return nil
}

// PresignPut возвращает URL для прямой загрузки объекта клиентом
func (c *Client) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	req, err := c.presigner.PresignPutObject(ctx, input, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign put %s: %w", key, err)
	}
	return req.URL, nil
}

// PresignGet возвращает временный URL для скачивания объекта
func (c *Client) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign get %s: %w", key, err)
	}
	return req.URL, nil
}

// UploadFile загружает файл через multipart uploader и возвращает публичный URL объекта
func (c *Client) UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	out, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file %s to bucket %s: %w", key, c.bucketName, err)
	}

	c.logger.Info("file uploaded", "key", key, "location", out.Location)
	return c.ObjectURL(key), nil
}

// ObjectURL возвращает публичный адрес объекта
func (c *Client) ObjectURL(key string) string {
	return c.publicBase + "/" + strings.TrimLeft(key, "/")
}

// DeleteFile удаляет объект из бакета
func (c *Client) DeleteFile(ctx context.Context, key string) error {
	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file %s from bucket %s: %w", key, c.bucketName, err)
	}
	return nil
}
