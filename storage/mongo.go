package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/telefwd/telefwd/config"
)

const (
	// sentinelID keys the single record holding the whole document.
	sentinelID = 0
	author     = "telefwd"
)

type configRecord struct {
	ID     int            `bson:"_id"`
	Author string         `bson:"author"`
	Config *config.Config `bson:"config"`
}

// DocumentStore keeps the configuration document embedded in one
// fixed-key record of a MongoDB collection.
type DocumentStore struct {
	col *mongo.Collection
}

// ConnectDocumentStore dials the database, probes liveness and seeds the
// sentinel record on first use. Any failure is returned as-is: mongodb
// mode is strict and never silently downgraded.
func ConnectDocumentStore(ctx context.Context, uri, db, col string) (*DocumentStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongodb liveness probe: %w", err)
	}
	s := &DocumentStore{col: client.Database(db).Collection(col)}
	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *DocumentStore) ensureSeeded(ctx context.Context) error {
	err := s.col.FindOne(ctx, bson.M{"_id": sentinelID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		_, err = s.col.InsertOne(ctx, configRecord{
			ID:     sentinelID,
			Author: author,
			Config: config.Default(),
		})
		if err != nil {
			return fmt.Errorf("seed config record: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("look up config record: %w", err)
	}
	return nil
}

func (s *DocumentStore) Read(ctx context.Context) (*config.Config, error) {
	var rec configRecord
	if err := s.col.FindOne(ctx, bson.M{"_id": sentinelID}).Decode(&rec); err != nil {
		return nil, fmt.Errorf("read config record: %w", err)
	}
	if rec.Config == nil {
		return nil, fmt.Errorf("config record %d has no embedded document", sentinelID)
	}
	return rec.Config, nil
}

func (s *DocumentStore) Write(ctx context.Context, cfg *config.Config) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": sentinelID},
		bson.M{"$set": bson.M{"config": cfg}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("update config record: %w", err)
	}
	return nil
}
