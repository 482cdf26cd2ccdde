// Package dynamostore хранилище документов в таблице DynamoDB.
// Ключ таблицы: Account (partition) + Name (sort).
package dynamostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/iudanet/chatsync/internal/client/remote"
	"github.com/iudanet/chatsync/internal/client/remote/awsutil"
)

// MaxDocumentSize предел размера элемента DynamoDB с запасом на атрибуты ключа
const MaxDocumentSize = 390 * 1024

// ErrDocumentTooLarge документ не помещается в один элемент таблицы
var ErrDocumentTooLarge = errors.New("document exceeds dynamodb item size limit")

// Config параметры хранилища
type Config struct {
	awsutil.Config `mapstructure:",squash" yaml:",inline"`
	Table          string `mapstructure:"table" yaml:"table"`
	Account        string `mapstructure:"account" yaml:"account"`
}

// item строка таблицы
type item struct {
	Account    string `dynamodbav:"Account"`
	Name       string `dynamodbav:"Name"`
	Content    string `dynamodbav:"Content,omitempty"`
	ModifiedAt int64  `dynamodbav:"ModifiedAt"`
}

// Store документы одного аккаунта
type Store struct {
	client  *dynamodb.Client
	logger  *slog.Logger
	table   string
	account string
}

var _ remote.DocumentStore = (*Store)(nil)

// New создает хранилище по конфигурации
func New(ctx context.Context, cfg Config, httpClient *http.Client, logger *slog.Logger) (*Store, error) {
	awsCfg, err := awsutil.Load(ctx, cfg.Config, httpClient)
	if err != nil {
		return nil, err
	}
	return NewWithClient(dynamodb.NewFromConfig(awsCfg), cfg.Table, cfg.Account, logger), nil
}

// NewWithClient создает хранилище поверх готового клиента
func NewWithClient(client *dynamodb.Client, table, account string, logger *slog.Logger) *Store {
	return &Store{
		client:  client,
		table:   table,
		account: account,
		logger:  logger,
	}
}

func (s *Store) key(name string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"Account": &types.AttributeValueMemberS{Value: s.account},
		"Name":    &types.AttributeValueMemberS{Value: name},
	}
}

// EnsureTable создает таблицу, если ее нет, и ждет ее готовности
func (s *Store) EnsureTable(ctx context.Context, timeout time.Duration) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.table)})
	if err == nil {
		return nil
	}

	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return awsutil.Classify("dynamodb describe table", err)
	}

	s.logger.Info("Creating DynamoDB table", "table", s.table)
	_, err = s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(s.table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("Account"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("Name"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("Account"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("Name"), KeyType: types.KeyTypeRange},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		return awsutil.Classify("dynamodb create table", err)
	}

	waiter := dynamodb.NewTableExistsWaiter(s.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.table)}, timeout); err != nil {
		return fmt.Errorf("table %s not ready: %w", s.table, err)
	}
	return nil
}

// Find returns handle if the item exists
func (s *Store) Find(ctx context.Context, name string) (*remote.Handle, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            aws.String(s.table),
		Key:                  s.key(name),
		ConsistentRead:       aws.Bool(true),
		ProjectionExpression: aws.String("ModifiedAt"),
	})
	if err != nil {
		return nil, awsutil.Classify("dynamodb get "+name, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var it item
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return &remote.Handle{ID: name, Name: name, ModifiedAt: time.UnixMilli(it.ModifiedAt).UTC()}, nil
}

// Upload writes the item
func (s *Store) Upload(ctx context.Context, name string, content []byte, existing *remote.Handle) (*remote.Handle, error) {
	if len(content) > MaxDocumentSize {
		return nil, fmt.Errorf("%s: %w (%d bytes)", name, ErrDocumentTooLarge, len(content))
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	av, err := attributevalue.MarshalMap(item{
		Account:    s.account,
		Name:       name,
		Content:    string(content),
		ModifiedAt: now.UnixMilli(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item: %w", err)
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	}); err != nil {
		return nil, awsutil.Classify("dynamodb put "+name, err)
	}

	return &remote.Handle{ID: name, Name: name, ModifiedAt: now}, nil
}

// Download reads the item content
func (s *Store) Download(ctx context.Context, handle *remote.Handle) ([]byte, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            s.key(handle.ID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, awsutil.Classify("dynamodb get "+handle.ID, err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("dynamodb get %s: %w", handle.ID, remote.ErrNotFound)
	}

	var it item
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return []byte(it.Content), nil
}

// Delete removes the item
func (s *Store) Delete(ctx context.Context, handle *remote.Handle) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       s.key(handle.ID),
	})
	return awsutil.Classify("dynamodb delete "+handle.ID, err)
}
