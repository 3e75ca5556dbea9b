package repository

import (
	"context"
	"time"

	"seocrawler/internal/config"
	"seocrawler/internal/models"
	"seocrawler/internal/tracing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

const PagesTableName = "seocrawler-pages"

//go:generate mockgen -destination=../mocks/mock_pages_repository.go -package=mocks . PageRepositoryInterface

type PageRepositoryInterface interface {
	SavePageResult(ctx context.Context, jobID string, page *models.PageResult) error
	GetPagesByJobID(ctx context.Context, jobID string) ([]models.PageResult, error)
}

type PageRepository struct {
	ddb *dynamodb.DynamoDB
	mc  MetricsCollector
}

// NewPageRepository creates a new PageRepository with the given metrics collector
func NewPageRepository(cfg config.DynamoDBConfig, mc MetricsCollector) (*PageRepository, error) {
	ddb, err := NewDynamoDBClient(cfg)
	if err != nil {
		return nil, err
	}

	if mc == nil {
		mc = NoOpMetricsCollector{}
	}

	return &PageRepository{
		ddb: ddb,
		mc:  mc,
	}, nil
}

// SavePageResult stores one analyzed page. Keyed by job ID and URL, so a
// retried crawl overwrites instead of duplicating.
func (p *PageRepository) SavePageResult(ctx context.Context, jobID string, page *models.PageResult) (err error) {
	start := time.Now()
	_, span := tracing.StartDatabaseSpan(ctx, "save_page_result", PagesTableName)

	defer func() {
		p.mc.RecordDatabaseOperation("save_page_result", PagesTableName, start, err)
		span.Close(err)
	}()

	entity := &PageResultEntity{}
	entity.FromModel(jobID, page)

	item, err := dynamodbattribute.MarshalMap(entity)
	if err != nil {
		return err
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(PagesTableName),
		Item:      item,
	}

	_, err = p.ddb.PutItem(input)
	return err
}

// GetPagesByJobID queries all analyzed pages for a job
func (p *PageRepository) GetPagesByJobID(ctx context.Context, jobID string) (pages []models.PageResult, err error) {
	start := time.Now()
	_, span := tracing.StartDatabaseSpan(ctx, "query_pages_by_job_id", PagesTableName)

	defer func() {
		p.mc.RecordDatabaseOperation("query_pages_by_job_id", PagesTableName, start, err)
		span.Close(err)
	}()

	input := &dynamodb.QueryInput{
		TableName:              aws.String(PagesTableName),
		KeyConditionExpression: aws.String("job_id = :job_id"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":job_id": {
				S: aws.String(jobID),
			},
		},
	}

	result, err := p.ddb.Query(input)
	if err != nil {
		return nil, err
	}

	pages = make([]models.PageResult, 0, len(result.Items))
	for _, item := range result.Items {
		var entity PageResultEntity
		err = dynamodbattribute.UnmarshalMap(item, &entity)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *entity.ToModel())
	}

	return pages, nil
}
