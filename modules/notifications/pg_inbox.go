package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGInboxStore is the PostgreSQL implementation of InboxStore, backed by
// the user_notifications table.
type PGInboxStore struct {
	pool *pgxpool.Pool
}

// NewPGInboxStore creates a PostgreSQL-backed inbox store.
func NewPGInboxStore(pool *pgxpool.Pool) *PGInboxStore {
	return &PGInboxStore{pool: pool}
}

func (s *PGInboxStore) Add(ctx context.Context, entry InboxEntry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_notifications
			(id, notification_id, account_id, read, read_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.NotificationID, entry.AccountID,
		entry.Read, entry.ReadAt, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store inbox entry: %w", err)
	}
	return nil
}

func (s *PGInboxStore) ListByAccount(ctx context.Context, accountID string, unreadOnly bool) ([]InboxEntry, error) {
	query := `
		SELECT id, notification_id, account_id, read, read_at, created_at
		FROM user_notifications
		WHERE account_id = $1`
	if unreadOnly {
		query += ` AND read = FALSE`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inbox entries: %w", err)
	}
	defer rows.Close()

	entries := []InboxEntry{}
	for rows.Next() {
		var e InboxEntry
		if err := rows.Scan(&e.ID, &e.NotificationID, &e.AccountID, &e.Read, &e.ReadAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inbox entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inbox entries: %w", err)
	}
	return entries, nil
}

func (s *PGInboxStore) MarkRead(ctx context.Context, accountID, notificationID string, at time.Time) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE user_notifications
		SET read = TRUE, read_at = $3
		WHERE account_id = $1 AND notification_id = $2 AND read = FALSE`,
		accountID, notificationID, at,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark inbox entry read: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	// Nothing flipped; find out whether the entry exists at all.
	var exists bool
	err = s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_notifications
			WHERE account_id = $1 AND notification_id = $2
		)`, accountID, notificationID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query inbox entry: %w", err)
	}
	if !exists {
		return false, ErrInboxEntryNotFound
	}
	return false, nil
}

func (s *PGInboxStore) CountUnread(ctx context.Context, accountID string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM user_notifications
		WHERE account_id = $1 AND read = FALSE`, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread entries: %w", err)
	}
	return count, nil
}

var _ InboxStore = (*PGInboxStore)(nil)
