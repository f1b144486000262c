package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStorage is the document-store implementation of the Storage
// interface, for deployments that run the console against MongoDB instead
// of PostgreSQL. The status guard uses conditional updates so concurrent
// sends race on the database, not in memory.
type MongoStorage struct {
	coll *mongo.Collection
}

// NewMongoStorage creates a MongoDB-backed notification storage using the
// "notifications" collection of the given database.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{coll: db.Collection("notifications")}
}

// notificationDoc is the BSON shape; kept separate from the domain entity
// so wire concerns do not leak into it.
type notificationDoc struct {
	ID               string     `bson:"_id"`
	Title            string     `bson:"title"`
	Content          string     `bson:"content"`
	Type             string     `bson:"type"`
	Audience         string     `bson:"target_audience"`
	TargetAccountIDs []string   `bson:"target_account_ids,omitempty"`
	Status           string     `bson:"status"`
	SentCount        int        `bson:"sent_count"`
	ReadCount        int        `bson:"read_count"`
	ScheduledFor     *time.Time `bson:"scheduled_for,omitempty"`
	SentAt           *time.Time `bson:"sent_at,omitempty"`
	CreatedBy        string     `bson:"created_by,omitempty"`
	CreatedAt        time.Time  `bson:"created_at"`
}

func toDoc(n Notification) notificationDoc {
	return notificationDoc{
		ID:               n.ID,
		Title:            n.Title,
		Content:          n.Content,
		Type:             string(n.Type),
		Audience:         string(n.Audience),
		TargetAccountIDs: n.TargetAccountIDs,
		Status:           string(n.Status),
		SentCount:        n.SentCount,
		ReadCount:        n.ReadCount,
		ScheduledFor:     n.ScheduledFor,
		SentAt:           n.SentAt,
		CreatedBy:        n.CreatedBy,
		CreatedAt:        n.CreatedAt,
	}
}

func (d notificationDoc) toNotification() Notification {
	return Notification{
		ID:               d.ID,
		Title:            d.Title,
		Content:          d.Content,
		Type:             Type(d.Type),
		Audience:         Audience(d.Audience),
		TargetAccountIDs: d.TargetAccountIDs,
		Status:           Status(d.Status),
		SentCount:        d.SentCount,
		ReadCount:        d.ReadCount,
		ScheduledFor:     d.ScheduledFor,
		SentAt:           d.SentAt,
		CreatedBy:        d.CreatedBy,
		CreatedAt:        d.CreatedAt,
	}
}

// sendableStatuses is the Mongo filter fragment for non-terminal statuses.
func sendableStatuses() bson.M {
	return bson.M{"$in": []string{string(StatusDraft), string(StatusScheduled)}}
}

func (s *MongoStorage) Create(ctx context.Context, n Notification) error {
	if _, err := s.coll.InsertOne(ctx, toDoc(n)); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	return nil
}

func (s *MongoStorage) Get(ctx context.Context, id string) (*Notification, error) {
	var doc notificationDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to query notification: %w", err)
	}
	n := doc.toNotification()
	return &n, nil
}

func (s *MongoStorage) List(ctx context.Context, filter Filter, page, limit int) ([]Notification, int, error) {
	query := bson.M{}
	if filter.Type != nil {
		query["type"] = string(*filter.Type)
	}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}

	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer cursor.Close(ctx)

	items := []Notification{}
	for cursor.Next(ctx) {
		var doc notificationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("failed to decode notification: %w", err)
		}
		items = append(items, doc.toNotification())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read notifications: %w", err)
	}

	return items, int(total), nil
}

func (s *MongoStorage) ListDue(ctx context.Context, before time.Time) ([]Notification, error) {
	query := bson.M{
		"status":        string(StatusScheduled),
		"scheduled_for": bson.M{"$lte": before},
	}
	cursor, err := s.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "scheduled_for", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list due notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var due []Notification
	for cursor.Next(ctx) {
		var doc notificationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode notification: %w", err)
		}
		due = append(due, doc.toNotification())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read due notifications: %w", err)
	}
	return due, nil
}

func (s *MongoStorage) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// guardedUpdate performs a conditional FindOneAndUpdate restricted to
// non-terminal statuses, distinguishing missing documents from illegal
// transitions.
func (s *MongoStorage) guardedUpdate(ctx context.Context, id string, update bson.M) (*Notification, error) {
	var doc notificationDoc
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": sendableStatuses()},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == nil {
		n := doc.toNotification()
		return &n, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to update notification: %w", err)
	}

	count, err := s.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to query notification status: %w", err)
	}
	if count == 0 {
		return nil, ErrNotificationNotFound
	}
	return nil, ErrInvalidStatus
}

func (s *MongoStorage) MarkSent(ctx context.Context, id string, sentCount int, sentAt time.Time) (*Notification, error) {
	return s.guardedUpdate(ctx, id, bson.M{"$set": bson.M{
		"status":     string(StatusSent),
		"sent_count": sentCount,
		"sent_at":    sentAt,
	}})
}

func (s *MongoStorage) MarkCancelled(ctx context.Context, id string) (*Notification, error) {
	return s.guardedUpdate(ctx, id, bson.M{"$set": bson.M{
		"status": string(StatusCancelled),
	}})
}

func (s *MongoStorage) MarkScheduled(ctx context.Context, id string, at time.Time) (*Notification, error) {
	return s.guardedUpdate(ctx, id, bson.M{"$set": bson.M{
		"status":        string(StatusScheduled),
		"scheduled_for": at,
	}})
}

func (s *MongoStorage) IncrementReadCount(ctx context.Context, id string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"read_count": 1}},
	)
	if err != nil {
		return fmt.Errorf("failed to increment read count: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

var _ Storage = (*MongoStorage)(nil)
