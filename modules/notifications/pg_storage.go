package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStorage is the PostgreSQL implementation of the Storage interface.
// The at-most-once guard is a compare-and-set on the status column, so it
// holds across processes, not just within one.
type PGStorage struct {
	pool *pgxpool.Pool
}

// NewPGStorage creates a PostgreSQL-backed notification storage.
func NewPGStorage(pool *pgxpool.Pool) *PGStorage {
	return &PGStorage{pool: pool}
}

const notificationColumns = `id, title, content, type, target_audience, target_account_ids,
	status, sent_count, read_count, scheduled_for, sent_at, created_by, created_at`

func scanNotification(row pgx.Row) (*Notification, error) {
	var n Notification
	err := row.Scan(
		&n.ID, &n.Title, &n.Content, &n.Type, &n.Audience, &n.TargetAccountIDs,
		&n.Status, &n.SentCount, &n.ReadCount, &n.ScheduledFor, &n.SentAt,
		&n.CreatedBy, &n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *PGStorage) Create(ctx context.Context, n Notification) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO notifications
			(id, title, content, type, target_audience, target_account_ids,
			 status, sent_count, read_count, scheduled_for, sent_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		n.ID, n.Title, n.Content, n.Type, n.Audience, n.TargetAccountIDs,
		n.Status, n.SentCount, n.ReadCount, n.ScheduledFor, n.SentAt,
		n.CreatedBy, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	return nil
}

func (s *PGStorage) Get(ctx context.Context, id string) (*Notification, error) {
	n, err := scanNotification(s.pool.QueryRow(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to query notification: %w", err)
	}
	return n, nil
}

func (s *PGStorage) List(ctx context.Context, filter Filter, page, limit int) ([]Notification, int, error) {
	where := ""
	args := []any{}
	appendCond := func(cond string, v any) {
		args = append(args, v)
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, len(args))
	}
	if filter.Type != nil {
		appendCond("type = $%d", *filter.Type)
	}
	if filter.Status != nil {
		appendCond("status = $%d", *filter.Status)
	}

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM notifications`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	listArgs := append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT %s FROM notifications%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		notificationColumns, where, len(args)+1, len(args)+2,
	)

	rows, err := s.pool.Query(ctx, query, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	items := []Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		items = append(items, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read notifications: %w", err)
	}

	return items, total, nil
}

func (s *PGStorage) ListDue(ctx context.Context, before time.Time) ([]Notification, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+notificationColumns+` FROM notifications
		 WHERE status = $1 AND scheduled_for <= $2
		 ORDER BY scheduled_for`,
		StatusScheduled, before,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list due notifications: %w", err)
	}
	defer rows.Close()

	var due []Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		due = append(due, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read due notifications: %w", err)
	}
	return due, nil
}

func (s *PGStorage) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// guardedUpdate runs an UPDATE restricted to non-terminal statuses and maps
// "no row updated" to not-found or invalid-status depending on existence.
func (s *PGStorage) guardedUpdate(ctx context.Context, id, query string, args ...any) (*Notification, error) {
	n, err := scanNotification(s.pool.QueryRow(ctx, query, args...))
	if err == nil {
		return n, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to update notification: %w", err)
	}

	var status Status
	err = s.pool.QueryRow(ctx, `SELECT status FROM notifications WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query notification status: %w", err)
	}
	return nil, ErrInvalidStatus
}

func (s *PGStorage) MarkSent(ctx context.Context, id string, sentCount int, sentAt time.Time) (*Notification, error) {
	return s.guardedUpdate(ctx, id, `
		UPDATE notifications
		SET status = $2, sent_count = $3, sent_at = $4
		WHERE id = $1 AND status IN ($5, $6)
		RETURNING `+notificationColumns,
		id, StatusSent, sentCount, sentAt, StatusDraft, StatusScheduled,
	)
}

func (s *PGStorage) MarkCancelled(ctx context.Context, id string) (*Notification, error) {
	return s.guardedUpdate(ctx, id, `
		UPDATE notifications
		SET status = $2
		WHERE id = $1 AND status IN ($3, $4)
		RETURNING `+notificationColumns,
		id, StatusCancelled, StatusDraft, StatusScheduled,
	)
}

func (s *PGStorage) MarkScheduled(ctx context.Context, id string, at time.Time) (*Notification, error) {
	return s.guardedUpdate(ctx, id, `
		UPDATE notifications
		SET status = $2, scheduled_for = $3
		WHERE id = $1 AND status IN ($4, $5)
		RETURNING `+notificationColumns,
		id, StatusScheduled, at, StatusDraft, StatusScheduled,
	)
}

func (s *PGStorage) IncrementReadCount(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE notifications SET read_count = read_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment read count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

var _ Storage = (*PGStorage)(nil)
