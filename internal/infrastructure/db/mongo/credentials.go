package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const credentialCollection = "credentials"

// CredentialStore keeps the bearer credential as one document keyed by name.
type CredentialStore struct {
	db   *mongo.Database
	coll *mongo.Collection
	name string
}

func NewCredentialStore(db *mongo.Database, name string) *CredentialStore {
	return &CredentialStore{db: db, coll: db.Collection(credentialCollection), name: name}
}

type credentialDoc struct {
	Name      string `bson:"_id"`
	Token     string `bson:"token"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (s *CredentialStore) Save(ctx context.Context, token string) error {
	doc := credentialDoc{Name: s.name, Token: token, UpdatedAt: time.Now().UTC().Unix()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": s.name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (s *CredentialStore) Load(ctx context.Context) (string, bool, error) {
	var doc credentialDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": s.name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load credential: %w", err)
	}
	return doc.Token, doc.Token != "", nil
}

func (s *CredentialStore) Clear(ctx context.Context) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": s.name}); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

func (s *CredentialStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}
