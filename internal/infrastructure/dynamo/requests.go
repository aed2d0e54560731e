package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/portfolio-api/internal/domain"
)

// ResumeRequestRepo provides typed DynamoDB operations for the resume_requests
// table. It is the authoritative quota store: the conditional increment in
// Redeem is the only place a download count ever changes, and DynamoDB's
// row-level atomicity on that single write is what keeps concurrent
// redemptions of the same credential from overshooting the ceiling.
type ResumeRequestRepo struct {
	client       *dynamodb.Client
	tableName    string
	maxDownloads int
}

func NewResumeRequestRepo(client *dynamodb.Client, tableName string, maxDownloads int) *ResumeRequestRepo {
	return &ResumeRequestRepo{client: client, tableName: tableName, maxDownloads: maxDownloads}
}

// Create inserts a fresh quota record with count 0. The token_hash is the
// partition key and must be unique; a collision fails the insert rather than
// silently overwriting an existing record's count.
func (r *ResumeRequestRepo) Create(ctx context.Context, rec *domain.ResumeRequest) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal resume request: %w", domain.ErrPersistence)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(" + fieldTokenHash + ")"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("token hash collision: %w", domain.ErrPersistence)
		}
		return fmt.Errorf("put resume request: %v: %w", err, domain.ErrPersistence)
	}
	return nil
}

// Redeem atomically increments the download count for the record with this
// hash, if and only if the record exists, has not expired, and is still below
// the ceiling. It returns the new count on success.
//
// When any condition fails the write does not happen and ErrNotRedeemable is
// returned — a business negative, not a storage failure. Callers that need to
// know why should Get the record and inspect it.
func (r *ResumeRequestRepo) Redeem(ctx context.Context, tokenHash string, now int64) (int, error) {
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              strKey(fieldTokenHash, tokenHash),
		UpdateExpression: aws.String("SET #count = #count + :one"),
		ConditionExpression: aws.String(
			"attribute_exists(#hash) AND #exp > :now AND #count < :max",
		),
		ExpressionAttributeNames: map[string]string{
			"#hash":  fieldTokenHash,
			"#count": fieldDownloadCount,
			"#exp":   fieldExpiresAt,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
			":now": &types.AttributeValueMemberN{Value: strconv.FormatInt(now, 10)},
			":max": &types.AttributeValueMemberN{Value: strconv.Itoa(r.maxDownloads)},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return 0, domain.ErrNotRedeemable
		}
		return 0, fmt.Errorf("redeem update: %v: %w", err, domain.ErrPersistence)
	}

	countAttr, ok := out.Attributes[fieldDownloadCount].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("redeem returned no count: %w", domain.ErrPersistence)
	}
	count, err := strconv.Atoi(countAttr.Value)
	if err != nil {
		return 0, fmt.Errorf("redeem returned non-numeric count %q: %w", countAttr.Value, domain.ErrPersistence)
	}
	return count, nil
}

// Get fetches the record for an exact token hash. Records are never matched by
// email alone.
func (r *ResumeRequestRepo) Get(ctx context.Context, tokenHash string) (*domain.ResumeRequest, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(fieldTokenHash, tokenHash),
	})
	if err != nil {
		return nil, fmt.Errorf("get resume request: %v: %w", err, domain.ErrPersistence)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("resume request not found: %w", domain.ErrNotFound)
	}
	var rec domain.ResumeRequest
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal resume request: %w", domain.ErrPersistence)
	}
	return &rec, nil
}

// GetCount returns the stored redemption count for an exact token hash.
func (r *ResumeRequestRepo) GetCount(ctx context.Context, tokenHash string) (int, error) {
	rec, err := r.Get(ctx, tokenHash)
	if err != nil {
		return 0, err
	}
	return rec.DownloadCount, nil
}

// GetSubject returns the subject email behind an exact token hash.
func (r *ResumeRequestRepo) GetSubject(ctx context.Context, tokenHash string) (string, error) {
	rec, err := r.Get(ctx, tokenHash)
	if err != nil {
		return "", err
	}
	return rec.Email, nil
}
