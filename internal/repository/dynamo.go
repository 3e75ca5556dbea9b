package repository

import (
	"log/slog"
	"strings"
	"time"

	"seocrawler/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

// NewDynamoDBClient creates a new DynamoDB client
func NewDynamoDBClient(cfg config.DynamoDBConfig) (*dynamodb.DynamoDB, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(cfg.Region),
		Endpoint: aws.String(cfg.Endpoint),
		Credentials: credentials.NewCredentials(&credentials.StaticProvider{
			Value: credentials.Value{
				AccessKeyID:     cfg.AccessKeyID,
				SecretAccessKey: cfg.SecretAccessKey,
			},
		}),
	})
	if err != nil {
		return nil, err
	}

	client := dynamodb.New(sess)
	return client, nil
}

// SeedTables seeds the DynamoDB tables
func SeedTables(client *dynamodb.DynamoDB, mc MetricsCollector) error {
	if mc == nil {
		mc = NoOpMetricsCollector{}
	}

	tables := []struct {
		name     string
		hashKey  string
		rangeKey string
	}{
		{JobsTableName, "partition_key", "id"},
		{PagesTableName, "job_id", "url"},
		{ReportsTableName, "job_id", ""},
	}

	for _, t := range tables {
		if err := createTableIfNotExists(client, t.name, t.hashKey, t.rangeKey, mc); err != nil {
			return err
		}
	}

	return nil
}

// createTableIfNotExists creates a table with string keys if it doesn't exist
func createTableIfNotExists(client *dynamodb.DynamoDB, tableName, hashKey, rangeKey string, mc MetricsCollector) error {
	// Check if table exists
	_, err := client.DescribeTable(&dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
	if err == nil {
		return nil // Table already exists
	}

	start := time.Now()
	defer mc.RecordDatabaseOperation("create", tableName, start, nil)

	keySchema := []*dynamodb.KeySchemaElement{
		{
			AttributeName: aws.String(hashKey),
			KeyType:       aws.String("HASH"),
		},
	}
	attributeDefinitions := []*dynamodb.AttributeDefinition{
		{
			AttributeName: aws.String(hashKey),
			AttributeType: aws.String("S"),
		},
	}

	if rangeKey != "" {
		keySchema = append(keySchema, &dynamodb.KeySchemaElement{
			AttributeName: aws.String(rangeKey),
			KeyType:       aws.String("RANGE"),
		})
		attributeDefinitions = append(attributeDefinitions, &dynamodb.AttributeDefinition{
			AttributeName: aws.String(rangeKey),
			AttributeType: aws.String("S"),
		})
	}

	input := &dynamodb.CreateTableInput{
		TableName:            aws.String(tableName),
		KeySchema:            keySchema,
		AttributeDefinitions: attributeDefinitions,
		BillingMode:          aws.String("PAY_PER_REQUEST"),
	}

	_, err = client.CreateTable(input)
	if err != nil {
		if strings.Contains(err.Error(), "Cannot create preexisting table") {
			return nil
		}
		return err
	}

	slog.Info("Created DynamoDB table", "table", tableName)
	return nil
}
