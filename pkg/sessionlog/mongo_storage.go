package sessionlog

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DefaultCollection is the conventional collection name for the event trail.
const DefaultCollection = "session_events"

// MongoStorage persists the event trail in a MongoDB collection.
type MongoStorage struct {
	collection *mongo.Collection
}

// eventDoc is the BSON shape of a stored event. Kept separate from Event so
// wire tags never leak into the public type.
type eventDoc struct {
	ID        string         `bson:"_id"`
	SessionID string         `bson:"session_id,omitempty"`
	UserID    string         `bson:"user_id,omitempty"`
	Action    string         `bson:"action"`
	Source    string         `bson:"source,omitempty"`
	Error     string         `bson:"error,omitempty"`
	Metadata  map[string]any `bson:"metadata,omitempty"`
	CreatedAt time.Time      `bson:"created_at"`
}

// NewMongoStorage creates a storage over the given collection, typically
// obtained from mongo.NewWithDatabase in pkg/mongo.
func NewMongoStorage(collection *mongo.Collection) *MongoStorage {
	if collection == nil {
		panic("sessionlog: collection cannot be nil")
	}
	return &MongoStorage{collection: collection}
}

// EnsureIndexes creates the indexes queries rely on. Run it once at startup;
// index creation is idempotent.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "action", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	if _, err := s.collection.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("%w: create indexes: %w", ErrStorageFailure, err)
	}
	return nil
}

// Store persists a single event.
func (s *MongoStorage) Store(ctx context.Context, event Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	if _, err := s.collection.InsertOne(ctx, toDoc(event)); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return nil
}

// StoreBatch persists events with one insert.
func (s *MongoStorage) StoreBatch(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}

	docs := make([]any, 0, len(events))
	for i := range events {
		if err := events[i].Validate(); err != nil {
			return err
		}
		docs = append(docs, toDoc(events[i]))
	}

	if _, err := s.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return nil
}

// Query returns matching events ordered newest first.
func (s *MongoStorage) Query(ctx context.Context, criteria Criteria) ([]Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if criteria.Limit > 0 {
		opts.SetLimit(int64(criteria.Limit))
	}
	if criteria.Offset > 0 {
		opts.SetSkip(int64(criteria.Offset))
	}

	cursor, err := s.collection.Find(ctx, buildFilter(criteria), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	defer cursor.Close(ctx)

	var events []Event
	for cursor.Next(ctx) {
		var doc eventDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: decode event: %w", ErrStorageFailure, err)
		}
		events = append(events, fromDoc(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return events, nil
}

// Count returns the number of matching events, ignoring pagination fields.
func (s *MongoStorage) Count(ctx context.Context, criteria Criteria) (int64, error) {
	n, err := s.collection.CountDocuments(ctx, buildFilter(criteria))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return n, nil
}

func buildFilter(criteria Criteria) bson.M {
	filter := bson.M{}

	if criteria.SessionID != "" {
		filter["session_id"] = criteria.SessionID
	}
	if criteria.UserID != "" {
		filter["user_id"] = criteria.UserID
	}
	if len(criteria.Actions) > 0 {
		actions := make([]string, len(criteria.Actions))
		for i, a := range criteria.Actions {
			actions[i] = string(a)
		}
		filter["action"] = bson.M{"$in": actions}
	}
	if criteria.Source != "" {
		filter["source"] = criteria.Source
	}

	createdAt := bson.M{}
	if !criteria.From.IsZero() {
		createdAt["$gte"] = criteria.From
	}
	if !criteria.To.IsZero() {
		createdAt["$lt"] = criteria.To
	}
	if len(createdAt) > 0 {
		filter["created_at"] = createdAt
	}

	return filter
}

func toDoc(e Event) eventDoc {
	return eventDoc{
		ID:        e.ID,
		SessionID: e.SessionID,
		UserID:    e.UserID,
		Action:    string(e.Action),
		Source:    e.Source,
		Error:     e.Error,
		Metadata:  e.Metadata,
		CreatedAt: e.CreatedAt,
	}
}

func fromDoc(d eventDoc) Event {
	return Event{
		ID:        d.ID,
		SessionID: d.SessionID,
		UserID:    d.UserID,
		Action:    Action(d.Action),
		Source:    d.Source,
		Error:     d.Error,
		Metadata:  d.Metadata,
		CreatedAt: d.CreatedAt,
	}
}

var (
	_ Storage        = (*MongoStorage)(nil)
	_ BatchWriter    = (*MongoStorage)(nil)
	_ StorageCounter = (*MongoStorage)(nil)
)
