package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jonesrussell/newscrawl/internal/article"
)

// Mongo defaults.
const (
	DefaultMongoDatabase   = "news_db"
	DefaultMongoCollection = "raw_news"
)

// Mongo upserts records keyed by url. A record already present wins:
// $setOnInsert makes redelivery of the same URL a no-op, which is the dedup
// backstop for re-crawled pages.
type Mongo struct {
	uri        string
	database   string
	collection string

	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongo builds a MongoDB sink. Empty database/collection names use the
// defaults.
func NewMongo(uri, database, collection string) *Mongo {
	if database == "" {
		database = DefaultMongoDatabase
	}
	if collection == "" {
		collection = DefaultMongoCollection
	}
	return &Mongo{uri: uri, database: database, collection: collection}
}

// Open connects and ensures the unique url index.
func (s *Mongo) Open(ctx context.Context) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	s.client = client
	s.coll = client.Database(s.database).Collection(s.collection)

	_, err = s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "url", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to ensure url index: %w", err)
	}
	return nil
}

// Send upserts one record by url.
func (s *Mongo) Send(ctx context.Context, record *article.Record) error {
	if s.coll == nil {
		return fmt.Errorf("mongo sink not open")
	}

	doc, err := recordDocument(record)
	if err != nil {
		return err
	}

	_, err = s.coll.UpdateOne(ctx,
		bson.M{"url": record.URL},
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert record: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Mongo) Close() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(context.Background())
	s.client = nil
	s.coll = nil
	return err
}

// recordDocument converts a record through its JSON wire shape so the stored
// field names match the jsonl and Kafka sinks exactly.
func recordDocument(record *article.Record) (bson.M, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	var doc bson.M
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return doc, nil
}
