package repository

import (
	"context"
	"encoding/json"
	"time"

	"proposal_gateway/internal/domain/entities"
	"proposal_gateway/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const DefaultDraftsTableName = "proposal_drafts"

// DraftDynamoAPI is the subset of *dynamodb.Client the repository uses.
type DraftDynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

type draftItem struct {
	ID        string `dynamodbav:"id"`
	Step      int    `dynamodbav:"step"`
	Form      string `dynamodbav:"form"`
	Errors    string `dynamodbav:"errors"`
	Reviewed  bool   `dynamodbav:"reviewed"`
	LastError string `dynamodbav:"last_error,omitempty"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
	ExpiresAt int64  `dynamodbav:"expires_at,omitempty"`
}

// DraftDynamoRepository persists drafts in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - TTL attribute: expires_at (epoch seconds)
//
// DynamoDB TTL deletes lazily, so expired items are also filtered on read.
type DraftDynamoRepository struct {
	ddb       DraftDynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.IDraftRepository = (*DraftDynamoRepository)(nil)

func NewDraftDynamoRepository(ddb DraftDynamoAPI, tableName string) *DraftDynamoRepository {
	if tableName == "" {
		tableName = DefaultDraftsTableName
	}
	return &DraftDynamoRepository{
		ddb:       ddb,
		tableName: tableName,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (r *DraftDynamoRepository) Save(ctx context.Context, d entities.Draft) error {
	it, err := toDraftItem(d)
	if err != nil {
		return err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func (r *DraftDynamoRepository) GetByID(ctx context.Context, id string) (entities.Draft, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Draft{}, err
	}
	if len(out.Item) == 0 {
		return entities.Draft{}, nil
	}

	var it draftItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Draft{}, err
	}
	d, err := fromDraftItem(it)
	if err != nil {
		return entities.Draft{}, err
	}
	if d.Expired(r.now()) {
		return entities.Draft{}, nil
	}
	return d, nil
}

func (r *DraftDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	return err
}

func toDraftItem(d entities.Draft) (draftItem, error) {
	form, err := json.Marshal(d.Form)
	if err != nil {
		return draftItem{}, err
	}
	errs, err := json.Marshal(d.Errors)
	if err != nil {
		return draftItem{}, err
	}
	it := draftItem{
		ID:        d.ID,
		Step:      int(d.Step),
		Form:      string(form),
		Errors:    string(errs),
		Reviewed:  d.Reviewed,
		LastError: d.LastError,
		CreatedAt: formatTime(d.CreatedAt),
		UpdatedAt: formatTime(d.UpdatedAt),
	}
	if !d.ExpiresAt.IsZero() {
		it.ExpiresAt = d.ExpiresAt.Unix()
	}
	return it, nil
}

func fromDraftItem(it draftItem) (entities.Draft, error) {
	d := entities.Draft{
		ID:        it.ID,
		Step:      entities.WizardStep(it.Step),
		Reviewed:  it.Reviewed,
		LastError: it.LastError,
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}
	if it.ExpiresAt > 0 {
		d.ExpiresAt = time.Unix(it.ExpiresAt, 0).UTC()
	}
	if it.Form != "" {
		if err := json.Unmarshal([]byte(it.Form), &d.Form); err != nil {
			return entities.Draft{}, err
		}
	}
	if it.Errors != "" && it.Errors != "null" {
		if err := json.Unmarshal([]byte(it.Errors), &d.Errors); err != nil {
			return entities.Draft{}, err
		}
	}
	return d, nil
}
