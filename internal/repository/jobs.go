package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"seocrawler/internal/config"
	"seocrawler/internal/models"
	"seocrawler/internal/tracing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

const JobsTableName = "seocrawler-jobs"

// All jobs share a fixed partition key so GetAllJobs can use a single Query
const jobsPartitionKey = "1000"

var (
	ErrJobNotFound       = errors.New("job not found")
	ErrJobAlreadyClaimed = errors.New("job already claimed")
)

//go:generate mockgen -destination=../mocks/mock_jobs_repository.go -package=mocks . JobRepositoryInterface

type JobRepositoryInterface interface {
	CreateJob(ctx context.Context, job *models.CrawlJob) error
	GetJob(ctx context.Context, id string) (*models.CrawlJob, error)
	GetAllJobs(ctx context.Context) ([]models.CrawlJob, error)
	ClaimJob(ctx context.Context, id string, attempt int) error
	UpdateProgress(ctx context.Context, id string, pagesCrawled int, pagesTotal *int) error
	FinalizeJob(ctx context.Context, id string, status models.JobStatus, pagesCrawled int, errorMessage string) error
	RequestCancellation(ctx context.Context, id string) error
	ReapStaleJobs(ctx context.Context, olderThan time.Duration, maxAttempts int) (int, error)
}

type JobRepository struct {
	ddb *dynamodb.DynamoDB
	mc  MetricsCollector
}

// NewJobRepository creates a new JobRepository with the given metrics collector
func NewJobRepository(cfg config.DynamoDBConfig, mc MetricsCollector) (*JobRepository, error) {
	ddb, err := NewDynamoDBClient(cfg)
	if err != nil {
		return nil, err
	}

	if mc == nil {
		mc = NoOpMetricsCollector{}
	}

	return &JobRepository{
		ddb: ddb,
		mc:  mc,
	}, nil
}

// CreateJob stores a new crawl job
func (j *JobRepository) CreateJob(ctx context.Context, job *models.CrawlJob) (err error) {
	start := time.Now()
	_, span := tracing.StartDatabaseSpan(ctx, "create_job", JobsTableName)

	defer func() {
		j.mc.RecordDatabaseOperation("create_job", JobsTableName, start, err)
		span.Close(err)
	}()

	entity := &JobEntity{}
	entity.FromModel(job)

	item, err := dynamodbattribute.MarshalMap(entity)
	if err != nil {
		return err
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(JobsTableName),
		Item:      item,
	}

	_, err = j.ddb.PutItem(input)
	return err
}

// GetJob loads a crawl job by ID
func (j *JobRepository) GetJob(ctx context.Context, id string) (job *models.CrawlJob, err error) {
	start := time.Now()
	_, span := tracing.StartDatabaseSpan(ctx, "get_job", JobsTableName)

	defer func() {
		j.mc.RecordDatabaseOperation("get_job", JobsTableName, start, err)
		span.Close(err)
	}()

	input := &dynamodb.GetItemInput{
		TableName: aws.String(JobsTableName),
		Key:       jobKey(id),
	}

	result, err := j.ddb.GetItem(input)
	if err != nil {
		return nil, err
	}

	if result.Item == nil {
		return nil, ErrJobNotFound
	}

	var entity JobEntity
	err = dynamodbattribute.UnmarshalMap(result.Item, &entity)
	if err != nil {
		return nil, err
	}

	return entity.ToModel(), nil
}

// GetAllJobs queries all crawl jobs
func (j *JobRepository) GetAllJobs(ctx context.Context) (jobs []models.CrawlJob, err error) {
	start := time.Now()
	_, span := tracing.StartDatabaseSpan(ctx, "query_all_jobs", JobsTableName)

	defer func() {
		j.mc.RecordDatabaseOperation("query_all_jobs", JobsTableName, start, err)
		span.Close(err)
	}()

	input := &dynamodb.QueryInput{
		TableName:              aws.String(JobsTableName),
		KeyConditionExpression: aws.String("partition_key = :partition_key"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":partition_key": {
				S: aws.String(jobsPartitionKey),
			},
		},
	}

	result, err := j.ddb.Query(input)
	if err != nil {
		return nil, err
	}

	jobs = make([]models.CrawlJob, 0, len(result.Items))
	for _, item := range result.Items {
		var entity JobEntity
		err = dynamodbattribute.UnmarshalMap(item, &entity)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *entity.ToModel())
	}

	return jobs, nil
}

// ClaimJob transitions a job from pending to running. The conditional
// expression guarantees at most one worker wins the claim; everyone else
// gets ErrJobAlreadyClaimed.
func (j *JobRepository) ClaimJob(ctx context.Context, id string, attempt int) (err error) {
	start := time.Now()
	_, span := tracing.StartDatabaseSpan(ctx, "claim_job", JobsTableName)

	defer func() {
		j.mc.RecordDatabaseOperation("claim_job", JobsTableName, start, err)
		span.Close(err)
	}()

	now := time.Now().UTC()
	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(JobsTableName),
		Key:                 jobKey(id),
		ConditionExpression: aws.String("#status = :pending"),
		UpdateExpression:    aws.String("SET #status = :running, attempts = :attempts, started_at = :now, updated_at = :now"),
		ExpressionAttributeNames: map[string]*string{
			"#status": aws.String("status"),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":pending":  {S: aws.String(string(models.JobStatusPending))},
			":running":  {S: aws.String(string(models.JobStatusRunning))},
			":attempts": {N: aws.String(strconv.Itoa(attempt))},
			":now":      {S: aws.String(now.Format(time.RFC3339Nano))},
		},
	}

	_, err = j.ddb.UpdateItem(input)
	if err != nil {
		var awsErr awserr.Error
		if errors.As(err, &awsErr) && awsErr.Code() == dynamodb.ErrCodeConditionalCheckFailedException {
			return ErrJobAlreadyClaimed
		}
		return err
	}
	return nil
}

// UpdateProgress checkpoints crawl counters. Also serves as the heartbeat
// that keeps the job from being reaped as stale.
func (j *JobRepository) UpdateProgress(ctx context.Context, id string, pagesCrawled int, pagesTotal *int) (err error) {
	start := time.Now()
	_, span := tracing.StartDatabaseSpan(ctx, "update_progress", JobsTableName)

	defer func() {
		j.mc.RecordDatabaseOperation("update_progress", JobsTableName, start, err)
		span.Close(err)
	}()

	values := map[string]*dynamodb.AttributeValue{
		":pages_crawled": {N: aws.String(strconv.Itoa(pagesCrawled))},
		":now":           {S: aws.String(time.Now().UTC().Format(time.RFC3339Nano))},
	}
	expr := "SET pages_crawled = :pages_crawled, updated_at = :now"

	if pagesTotal != nil {
		expr += ", pages_total = :pages_total"
		values[":pages_total"] = &dynamodb.AttributeValue{N: aws.String(strconv.Itoa(*pagesTotal))}
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(JobsTableName),
		Key:                       jobKey(id),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
	}

	_, err = j.ddb.UpdateItem(input)
	return err
}

// FinalizeJob transitions a job to a terminal status. Terminal states are
// never overwritten: the conditional expression rejects the write if another
// finalizer got there first.
func (j *JobRepository) FinalizeJob(ctx context.Context, id string, status models.JobStatus, pagesCrawled int, errorMessage string) (err error) {
	start := time.Now()
	_, span := tracing.StartDatabaseSpan(ctx, "finalize_job", JobsTableName)

	defer func() {
		j.mc.RecordDatabaseOperation("finalize_job", JobsTableName, start, err)
		span.Close(err)
	}()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(JobsTableName),
		Key:                 jobKey(id),
		ConditionExpression: aws.String("#status IN (:pending, :running)"),
		UpdateExpression:    aws.String("SET #status = :status, pages_crawled = :pages_crawled, error_message = :error_message, completed_at = :now, updated_at = :now"),
		ExpressionAttributeNames: map[string]*string{
			"#status": aws.String("status"),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":pending":       {S: aws.String(string(models.JobStatusPending))},
			":running":       {S: aws.String(string(models.JobStatusRunning))},
			":status":        {S: aws.String(string(status))},
			":pages_crawled": {N: aws.String(strconv.Itoa(pagesCrawled))},
			":error_message": {S: aws.String(errorMessage)},
			":now":           {S: aws.String(now)},
		},
	}

	_, err = j.ddb.UpdateItem(input)
	if err != nil {
		var awsErr awserr.Error
		if errors.As(err, &awsErr) && awsErr.Code() == dynamodb.ErrCodeConditionalCheckFailedException {
			return ErrJobAlreadyClaimed
		}
		return err
	}
	return nil
}

// RequestCancellation flags a job for cooperative cancellation. Workers poll
// the flag; jobs already in a terminal state are rejected.
func (j *JobRepository) RequestCancellation(ctx context.Context, id string) (err error) {
	start := time.Now()
	_, span := tracing.StartDatabaseSpan(ctx, "request_cancellation", JobsTableName)

	defer func() {
		j.mc.RecordDatabaseOperation("request_cancellation", JobsTableName, start, err)
		span.Close(err)
	}()

	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(JobsTableName),
		Key:                 jobKey(id),
		ConditionExpression: aws.String("attribute_exists(id) AND #status IN (:pending, :running)"),
		UpdateExpression:    aws.String("SET cancellation_requested = :true, updated_at = :now"),
		ExpressionAttributeNames: map[string]*string{
			"#status": aws.String("status"),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":pending": {S: aws.String(string(models.JobStatusPending))},
			":running": {S: aws.String(string(models.JobStatusRunning))},
			":true":    {BOOL: aws.Bool(true)},
			":now":     {S: aws.String(time.Now().UTC().Format(time.RFC3339Nano))},
		},
	}

	_, err = j.ddb.UpdateItem(input)
	if err != nil {
		var awsErr awserr.Error
		if errors.As(err, &awsErr) && awsErr.Code() == dynamodb.ErrCodeConditionalCheckFailedException {
			return ErrJobNotFound
		}
		return err
	}
	return nil
}

// ReapStaleJobs recovers running jobs whose heartbeat is older than the
// cutoff. Covers workers that died without finalizing their job: the job goes
// back to pending for another claim, unless its attempts budget is spent, in
// which case it fails for good.
func (j *JobRepository) ReapStaleJobs(ctx context.Context, olderThan time.Duration, maxAttempts int) (reaped int, err error) {
	start := time.Now()
	_, span := tracing.StartDatabaseSpan(ctx, "reap_stale_jobs", JobsTableName)

	defer func() {
		j.mc.RecordDatabaseOperation("reap_stale_jobs", JobsTableName, start, err)
		span.Close(err)
	}()

	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339Nano)

	input := &dynamodb.QueryInput{
		TableName:              aws.String(JobsTableName),
		KeyConditionExpression: aws.String("partition_key = :partition_key"),
		FilterExpression:       aws.String("#status = :running AND updated_at < :cutoff"),
		ExpressionAttributeNames: map[string]*string{
			"#status": aws.String("status"),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":partition_key": {S: aws.String(jobsPartitionKey)},
			":running":       {S: aws.String(string(models.JobStatusRunning))},
			":cutoff":        {S: aws.String(cutoff)},
		},
	}

	result, err := j.ddb.Query(input)
	if err != nil {
		return 0, err
	}

	for _, item := range result.Items {
		var entity JobEntity
		if err := dynamodbattribute.UnmarshalMap(item, &entity); err != nil {
			return reaped, err
		}

		var reapErr error
		if entity.Attempts >= maxAttempts {
			reapErr = j.FinalizeJob(ctx, entity.ID, models.JobStatusFailed, entity.PagesCrawled, "worker lost: no heartbeat")
		} else {
			reapErr = j.releaseJob(ctx, entity.ID)
		}
		if reapErr != nil {
			if errors.Is(reapErr, ErrJobAlreadyClaimed) {
				continue // someone finalized or re-claimed it in the meantime
			}
			return reaped, reapErr
		}
		reaped++
	}

	return reaped, nil
}

// releaseJob puts a running job back to pending so another worker can claim it
func (j *JobRepository) releaseJob(ctx context.Context, id string) error {
	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(JobsTableName),
		Key:                 jobKey(id),
		ConditionExpression: aws.String("#status = :running"),
		UpdateExpression:    aws.String("SET #status = :pending, updated_at = :now"),
		ExpressionAttributeNames: map[string]*string{
			"#status": aws.String("status"),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":running": {S: aws.String(string(models.JobStatusRunning))},
			":pending": {S: aws.String(string(models.JobStatusPending))},
			":now":     {S: aws.String(time.Now().UTC().Format(time.RFC3339Nano))},
		},
	}

	_, err := j.ddb.UpdateItem(input)
	if err != nil {
		var awsErr awserr.Error
		if errors.As(err, &awsErr) && awsErr.Code() == dynamodb.ErrCodeConditionalCheckFailedException {
			return ErrJobAlreadyClaimed
		}
		return err
	}
	return nil
}

func jobKey(id string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"partition_key": {
			S: aws.String(jobsPartitionKey),
		},
		"id": {
			S: aws.String(id),
		},
	}
}
