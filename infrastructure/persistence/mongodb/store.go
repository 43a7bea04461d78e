// Package mongodb implements the outbound repository ports on MongoDB using
// the official v2 driver. Collection names and indexes are managed centrally
// in ensureIndexes; documents map through the bson tags on the entities.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	ColAdmins = "admins"
	ColUsers  = "users"
	ColClubs  = "clubs"
	ColEvents = "events"
	ColLogs   = "logs"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect failed: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongodb: ping failed: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName)}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("mongodb: ensure indexes failed: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		// principals: login resolution is keyed by email per collection
		{ColAdmins, bson.D{{Key: "email", Value: 1}}, true},
		{ColUsers, bson.D{{Key: "email", Value: 1}}, true},
		{ColClubs, bson.D{{Key: "email", Value: 1}}, true},
		{ColUsers, bson.D{{Key: "role", Value: 1}}, false},
		{ColUsers, bson.D{{Key: "clubAssigne", Value: 1}}, false},

		// clubs
		{ColClubs, bson.D{{Key: "statut", Value: 1}}, false},
		{ColClubs, bson.D{{Key: "categorie", Value: 1}}, false},
		{ColClubs, bson.D{{Key: "createdAt", Value: -1}}, false},

		// events
		{ColEvents, bson.D{{Key: "clubId", Value: 1}}, false},
		{ColEvents, bson.D{{Key: "statut", Value: 1}}, false},
		{ColEvents, bson.D{{Key: "dateDebut", Value: 1}}, false},
		{ColEvents, bson.D{{Key: "createdAt", Value: -1}}, false},

		// logs: newest-first listing plus the filter combinations
		{ColLogs, bson.D{{Key: "createdAt", Value: -1}}, false},
		{ColLogs, bson.D{{Key: "userId", Value: 1}, {Key: "action", Value: 1}}, false},
		{ColLogs, bson.D{{Key: "targetType", Value: 1}, {Key: "targetId", Value: 1}}, false},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", i.col, err)
		}
	}

	// text search over event titles and descriptions
	_, err := s.col(ColEvents).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "titre", Value: "text"}, {Key: "description", Value: "text"}},
	})
	if err != nil {
		return fmt.Errorf("create text index on %s: %w", ColEvents, err)
	}
	return nil
}
