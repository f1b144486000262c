package directory

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoDirectory reads accounts from the "users" collection.
type MongoDirectory struct {
	coll *mongo.Collection
}

// NewMongoDirectory creates a MongoDB-backed directory.
func NewMongoDirectory(db *mongo.Database) *MongoDirectory {
	return &MongoDirectory{coll: db.Collection("users")}
}

type accountDoc struct {
	ID    string `bson:"_id"`
	Name  string `bson:"name"`
	Email string `bson:"email"`
	Role  string `bson:"role"`
}

func (d *MongoDirectory) ListAccounts(ctx context.Context, filter RoleFilter) ([]Account, error) {
	query := bson.M{}
	if filter.Role != "" {
		query["role"] = string(filter.Role)
	}
	return d.find(ctx, query)
}

func (d *MongoDirectory) FindAccounts(ctx context.Context, ids []string) ([]Account, error) {
	if len(ids) == 0 {
		return []Account{}, nil
	}
	return d.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (d *MongoDirectory) find(ctx context.Context, query bson.M) ([]Account, error) {
	cursor, err := d.coll.Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer cursor.Close(ctx)

	var accounts []Account
	for cursor.Next(ctx) {
		var doc accountDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode account: %w", err)
		}
		accounts = append(accounts, Account{
			ID:    doc.ID,
			Name:  doc.Name,
			Email: doc.Email,
			Role:  Role(doc.Role),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	return accounts, nil
}

var _ Directory = (*MongoDirectory)(nil)
