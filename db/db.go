package db

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/google/uuid"
	"github.com/jsphweid/gosoul/constants"
	"github.com/pkg/errors"
)

var (
	ErrNotFound     = errors.New("song not found")
	ErrTooManyIds   = errors.New("too many ids for one batch")
	ErrMalformedRow = errors.New("malformed song row")
)

// BatchGetItem takes at most 100 keys
const maxBatch = 100

// Song is a stored .mid file with a few facts about its sequence.
type Song struct {
	Id      string `dynamodbav:"PK"`
	Name    string `dynamodbav:",omitempty"`
	Tracks  int
	Tempo   float64
	Data    []byte `dynamodbav:",omitempty"`
	Created time.Time
}

// Library keeps songs in one DynamoDB table keyed by PK.
type Library struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

// New connects to the endpoint and table from the environment.
func New() (*Library, error) {
	endpoint := constants.GetDynamoEndpoint()
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(constants.GetDynamoRegion()),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return NewWithClient(dynamodb.New(sess), constants.GetSongTable()), nil
}

func NewWithClient(client dynamodbiface.DynamoDBAPI, table string) *Library {
	return &Library{client: client, table: table}
}

// Save stores song under a fresh id and returns the stored copy.
func (l *Library) Save(ctx context.Context, song Song) (Song, error) {
	song.Id = uuid.NewString()
	if song.Created.IsZero() {
		song.Created = time.Now().UTC()
	}
	item, err := toItem(song)
	if err != nil {
		return Song{}, err
	}
	_, err = l.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(l.table),
		Item:      item,
	})
	if err != nil {
		return Song{}, errors.Wrap(err, "error from DynamoDB")
	}
	return song, nil
}

func (l *Library) Get(ctx context.Context, id string) (Song, error) {
	out, err := l.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(l.table),
		Key:       key(id),
	})
	if err != nil {
		return Song{}, errors.Wrap(err, "error from DynamoDB")
	}
	if len(out.Item) == 0 {
		return Song{}, errors.Wrapf(ErrNotFound, "id %v", id)
	}
	return fromItem(out.Item)
}

// GetMany looks ids up in one batch. Ids that are not stored are absent
// from the result.
func (l *Library) GetMany(ctx context.Context, ids []string) (map[string]Song, error) {
	if len(ids) > maxBatch {
		return nil, errors.Wrapf(ErrTooManyIds, "%d > %d", len(ids), maxBatch)
	}

	res := make(map[string]Song)
	if len(ids) == 0 {
		return res, nil
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, id := range ids {
		keys = append(keys, key(id))
	}
	out, err := l.client.BatchGetItemWithContext(ctx, &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			l.table: {Keys: keys},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "error from DynamoDB")
	}

	for _, item := range out.Responses[l.table] {
		s, err := fromItem(item)
		if err != nil {
			return nil, err
		}
		res[s.Id] = s
	}
	return res, nil
}

func key(id string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"PK": {S: aws.String(id)},
	}
}

func toItem(s Song) (map[string]*dynamodb.AttributeValue, error) {
	item, err := dynamodbattribute.MarshalMap(s)
	if err != nil {
		return nil, errors.Wrapf(err, "could not marshal song %v", s.Id)
	}
	return item, nil
}

func fromItem(item map[string]*dynamodb.AttributeValue) (Song, error) {
	var s Song
	if err := dynamodbattribute.UnmarshalMap(item, &s); err != nil {
		return Song{}, errors.Wrapf(ErrMalformedRow, "%v", err)
	}
	if s.Id == "" {
		return Song{}, errors.Wrap(ErrMalformedRow, "missing PK")
	}
	return s, nil
}
