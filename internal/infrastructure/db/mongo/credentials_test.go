package mongo

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestCredentialStore_Mock(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("load absent", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "console.credentials", mtest.FirstBatch))

		_, ok, err := NewCredentialStore(mt.DB, "access_token").Load(context.Background())
		if err != nil {
			mt.Fatalf("Load returned error: %v", err)
		}
		if ok {
			mt.Fatalf("expected absent credential")
		}
	})

	mt.Run("load present", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "console.credentials", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "access_token"},
			{Key: "token", Value: "tok-1"},
			{Key: "updated_at", Value: int64(1700000000)},
		}))

		token, ok, err := NewCredentialStore(mt.DB, "access_token").Load(context.Background())
		if err != nil || !ok {
			mt.Fatalf("Load = %q, %v, %v", token, ok, err)
		}
		if token != "tok-1" {
			mt.Fatalf("unexpected token: %s", token)
		}
	})

	mt.Run("save and clear", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)
		store := NewCredentialStore(mt.DB, "access_token")

		if err := store.Save(context.Background(), "tok-2"); err != nil {
			mt.Fatalf("Save returned error: %v", err)
		}
		if err := store.Clear(context.Background()); err != nil {
			mt.Fatalf("Clear returned error: %v", err)
		}
	})

	mt.Run("save failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
			Name:    "BadValue",
		}))

		if err := NewCredentialStore(mt.DB, "access_token").Save(context.Background(), "tok"); err == nil {
			mt.Fatalf("expected save error")
		}
	})
}
