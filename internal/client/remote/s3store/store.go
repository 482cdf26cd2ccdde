// Package s3store хранилище документов в бакете S3 (или совместимом, например MinIO).
package s3store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/iudanet/chatsync/internal/client/remote"
	"github.com/iudanet/chatsync/internal/client/remote/awsutil"
)

// Config параметры хранилища
type Config struct {
	awsutil.Config `mapstructure:",squash" yaml:",inline"`
	Bucket         string `mapstructure:"bucket" yaml:"bucket"`
	Prefix         string `mapstructure:"prefix" yaml:"prefix"`
	UsePathStyle   bool   `mapstructure:"use_path_style" yaml:"use_path_style"`
}

// Store документы как объекты bucket/prefix/name
type Store struct {
	client *s3.Client
	logger *slog.Logger
	bucket string
	prefix string
}

var _ remote.DocumentStore = (*Store)(nil)

// New создает хранилище по конфигурации
func New(ctx context.Context, cfg Config, httpClient *http.Client, logger *slog.Logger) (*Store, error) {
	awsCfg, err := awsutil.Load(ctx, cfg.Config, httpClient)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		// MinIO не принимает aws-chunked тела с контрольными суммами
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	return NewWithClient(client, cfg.Bucket, cfg.Prefix, logger), nil
}

// NewWithClient создает хранилище поверх готового клиента
func NewWithClient(client *s3.Client, bucket, prefix string, logger *slog.Logger) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Find returns handle if the object exists
func (s *Store) Find(ctx context.Context, name string) (*remote.Handle, error) {
	key := s.key(name)
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		classified := awsutil.Classify("s3 head "+key, err)
		if remote.IsNotFound(classified) {
			return nil, nil
		}
		return nil, classified
	}

	return &remote.Handle{ID: key, Name: name, ModifiedAt: aws.ToTime(out.LastModified)}, nil
}

// Upload writes the object
func (s *Store) Upload(ctx context.Context, name string, content []byte, existing *remote.Handle) (*remote.Handle, error) {
	key := s.key(name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return nil, awsutil.Classify("s3 put "+key, err)
	}

	s.logger.Debug("S3 object written", "bucket", s.bucket, "key", key, "size", len(content))
	return &remote.Handle{ID: key, Name: name, ModifiedAt: time.Now().UTC()}, nil
}

// Download reads the object
func (s *Store) Download(ctx context.Context, handle *remote.Handle) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(handle.ID),
	})
	if err != nil {
		return nil, awsutil.Classify("s3 get "+handle.ID, err)
	}
	defer func() {
		_ = out.Body.Close()
	}()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", handle.ID, err)
	}
	return content, nil
}

// Delete removes the object
func (s *Store) Delete(ctx context.Context, handle *remote.Handle) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(handle.ID),
	})
	return awsutil.Classify("s3 delete "+handle.ID, err)
}
