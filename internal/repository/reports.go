package repository

import (
	"context"
	"errors"
	"time"

	"seocrawler/internal/config"
	"seocrawler/internal/models"
	"seocrawler/internal/tracing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

const ReportsTableName = "seocrawler-reports"

var ErrReportNotFound = errors.New("report not found")

//go:generate mockgen -destination=../mocks/mock_reports_repository.go -package=mocks . ReportRepositoryInterface

type ReportRepositoryInterface interface {
	SaveReport(ctx context.Context, report *models.CrawlReport) error
	GetReportSummary(ctx context.Context, jobID string) (*models.ReportSummary, error)
}

type ReportRepository struct {
	ddb *dynamodb.DynamoDB
	mc  MetricsCollector
}

// NewReportRepository creates a new ReportRepository with the given metrics collector
func NewReportRepository(cfg config.DynamoDBConfig, mc MetricsCollector) (*ReportRepository, error) {
	ddb, err := NewDynamoDBClient(cfg)
	if err != nil {
		return nil, err
	}

	if mc == nil {
		mc = NoOpMetricsCollector{}
	}

	return &ReportRepository{
		ddb: ddb,
		mc:  mc,
	}, nil
}

// SaveReport stores the summary snapshot of a finished crawl
func (r *ReportRepository) SaveReport(ctx context.Context, report *models.CrawlReport) (err error) {
	start := time.Now()
	_, span := tracing.StartDatabaseSpan(ctx, "save_report", ReportsTableName)

	defer func() {
		r.mc.RecordDatabaseOperation("save_report", ReportsTableName, start, err)
		span.Close(err)
	}()

	entity := &ReportEntity{}
	entity.FromModel(report)

	item, err := dynamodbattribute.MarshalMap(entity)
	if err != nil {
		return err
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(ReportsTableName),
		Item:      item,
	}

	_, err = r.ddb.PutItem(input)
	return err
}

// GetReportSummary loads the stored summary snapshot for a job
func (r *ReportRepository) GetReportSummary(ctx context.Context, jobID string) (summary *models.ReportSummary, err error) {
	start := time.Now()
	_, span := tracing.StartDatabaseSpan(ctx, "get_report", ReportsTableName)

	defer func() {
		r.mc.RecordDatabaseOperation("get_report", ReportsTableName, start, err)
		span.Close(err)
	}()

	input := &dynamodb.GetItemInput{
		TableName: aws.String(ReportsTableName),
		Key: map[string]*dynamodb.AttributeValue{
			"job_id": {
				S: aws.String(jobID),
			},
		},
	}

	result, err := r.ddb.GetItem(input)
	if err != nil {
		return nil, err
	}

	if result.Item == nil {
		return nil, ErrReportNotFound
	}

	var entity ReportEntity
	err = dynamodbattribute.UnmarshalMap(result.Item, &entity)
	if err != nil {
		return nil, err
	}

	s := entity.ToSummary()
	return &s, nil
}
