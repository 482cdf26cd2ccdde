// Package awsutil общая настройка AWS SDK для хранилищ S3 и DynamoDB.
package awsutil

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/smithy-go"

	"github.com/iudanet/chatsync/internal/client/remote"
)

// Config параметры подключения. Пустые ключи означают цепочку
// учетных данных по умолчанию (env, профиль, IMDS).
type Config struct {
	Region    string `mapstructure:"region" yaml:"region"`
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint"` // MinIO, LocalStack, DynamoDB Local
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`
}

// Load загружает aws.Config
func Load(ctx context.Context, c Config, httpClient *http.Client) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(c.Region),
	}
	if c.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, ""),
		))
	}
	if httpClient != nil {
		opts = append(opts, config.WithHTTPClient(httpClient))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	if c.Endpoint != "" {
		cfg.BaseEndpoint = aws.String(c.Endpoint)
	}
	return cfg, nil
}

// authErrorCodes коды AWS, означающие неверные или просроченные учетные данные
var authErrorCodes = map[string]bool{
	"AccessDenied":                 true,
	"AccessDeniedException":        true,
	"ExpiredToken":                 true,
	"ExpiredTokenException":        true,
	"InvalidAccessKeyId":           true,
	"InvalidClientTokenId":         true,
	"SignatureDoesNotMatch":        true,
	"UnrecognizedClientException":  true,
	"MissingAuthenticationToken":   true,
	"IncompleteSignatureException": true,
}

// Classify приводит ошибки SDK к remote.ErrUnauthorized и remote.ErrNotFound
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && authErrorCodes[apiErr.ErrorCode()] {
		return fmt.Errorf("%s: %w: %s", op, remote.ErrUnauthorized, apiErr.ErrorCode())
	}

	// awshttp.ResponseError встраивает smithyhttp.ResponseError, ищем по методу
	var respErr interface{ HTTPStatusCode() int }
	if errors.As(err, &respErr) {
		switch respErr.HTTPStatusCode() {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%s: %w", op, remote.ErrUnauthorized)
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", op, remote.ErrNotFound)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
