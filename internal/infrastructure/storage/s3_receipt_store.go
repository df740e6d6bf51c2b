package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jhoicas/Obra-api/internal/application/ports"
	"github.com/jhoicas/Obra-api/pkg/config"
)

var _ ports.ReceiptStore = (*S3ReceiptStore)(nil)

type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3ReceiptStore guarda los comprobantes en un bucket S3 (o MinIO/LocalStack).
type S3ReceiptStore struct {
	objects    objectAPI
	presigner  presignAPI
	bucket     string
	presignTTL time.Duration
}

// NewS3ReceiptStore construye el cliente S3. Sin access key usa la cadena de credenciales por defecto (IAM, env).
func NewS3ReceiptStore(ctx context.Context, cfg config.StorageConfig) (*S3ReceiptStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return newS3ReceiptStore(client, s3.NewPresignClient(client), cfg.Bucket, cfg.PresignTTL), nil
}

func newS3ReceiptStore(objects objectAPI, presigner presignAPI, bucket string, ttl time.Duration) *S3ReceiptStore {
	return &S3ReceiptStore{objects: objects, presigner: presigner, bucket: bucket, presignTTL: ttl}
}

// Put sube el comprobante.
func (s *S3ReceiptStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.objects.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("put receipt %s: %w", key, err)
	}
	return nil
}

// PresignGet URL GET firmada, válida por presignTTL.
func (s *S3ReceiptStore) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.presignTTL))
	if err != nil {
		return "", fmt.Errorf("presign receipt %s: %w", key, err)
	}
	return req.URL, nil
}

// Delete borra el comprobante. S3 no falla si la clave no existe.
func (s *S3ReceiptStore) Delete(ctx context.Context, key string) error {
	_, err := s.objects.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete receipt %s: %w", key, err)
	}
	return nil
}
