package notifications

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoInboxStore is the document-store implementation of InboxStore,
// backed by the "user_notifications" collection.
type MongoInboxStore struct {
	coll *mongo.Collection
}

// NewMongoInboxStore creates a MongoDB-backed inbox store.
func NewMongoInboxStore(db *mongo.Database) *MongoInboxStore {
	return &MongoInboxStore{coll: db.Collection("user_notifications")}
}

type inboxDoc struct {
	ID             string     `bson:"_id"`
	NotificationID string     `bson:"notification_id"`
	AccountID      string     `bson:"account_id"`
	Read           bool       `bson:"read"`
	ReadAt         *time.Time `bson:"read_at,omitempty"`
	CreatedAt      time.Time  `bson:"created_at"`
}

func (d inboxDoc) toEntry() InboxEntry {
	return InboxEntry{
		ID:             d.ID,
		NotificationID: d.NotificationID,
		AccountID:      d.AccountID,
		Read:           d.Read,
		ReadAt:         d.ReadAt,
		CreatedAt:      d.CreatedAt,
	}
}

func (s *MongoInboxStore) Add(ctx context.Context, entry InboxEntry) error {
	doc := inboxDoc{
		ID:             entry.ID,
		NotificationID: entry.NotificationID,
		AccountID:      entry.AccountID,
		Read:           entry.Read,
		ReadAt:         entry.ReadAt,
		CreatedAt:      entry.CreatedAt,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to store inbox entry: %w", err)
	}
	return nil
}

func (s *MongoInboxStore) ListByAccount(ctx context.Context, accountID string, unreadOnly bool) ([]InboxEntry, error) {
	query := bson.M{"account_id": accountID}
	if unreadOnly {
		query["read"] = false
	}

	cursor, err := s.coll.Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list inbox entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []InboxEntry{}
	for cursor.Next(ctx) {
		var doc inboxDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode inbox entry: %w", err)
		}
		entries = append(entries, doc.toEntry())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inbox entries: %w", err)
	}
	return entries, nil
}

func (s *MongoInboxStore) MarkRead(ctx context.Context, accountID, notificationID string, at time.Time) (bool, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"account_id": accountID, "notification_id": notificationID, "read": false},
		bson.M{"$set": bson.M{"read": true, "read_at": at}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark inbox entry read: %w", err)
	}
	if res.ModifiedCount > 0 {
		return true, nil
	}

	count, err := s.coll.CountDocuments(ctx,
		bson.M{"account_id": accountID, "notification_id": notificationID})
	if err != nil {
		return false, fmt.Errorf("failed to query inbox entry: %w", err)
	}
	if count == 0 {
		return false, ErrInboxEntryNotFound
	}
	return false, nil
}

func (s *MongoInboxStore) CountUnread(ctx context.Context, accountID string) (int, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"account_id": accountID, "read": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread entries: %w", err)
	}
	return int(count), nil
}

var _ InboxStore = (*MongoInboxStore)(nil)
