package notifications

import (
	"context"
	"fmt"

	"github.com/waqfpal/console/core"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

// ListParams are the caller-facing query parameters for listing
// notifications. Zero values fall back to sane defaults.
type ListParams struct {
	Type   string `query:"type"`
	Status string `query:"status"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

// Validate rejects unknown enum values so a typo in a filter never silently
// returns the full set.
func (p ListParams) Validate() error {
	verr := core.NewValidationError()

	if p.Type != "" && !Type(p.Type).Valid() {
		verr.Add("type", "must be one of: announcement, update, maintenance, alert")
	}
	if p.Status != "" && !Status(p.Status).Valid() {
		verr.Add("status", "must be one of: draft, scheduled, sent, cancelled")
	}
	if p.Page < 0 {
		verr.Add("page", "must be positive")
	}
	if p.Limit < 0 {
		verr.Add("limit", "must be positive")
	}

	if !verr.IsEmpty() {
		return verr
	}
	return nil
}

// Page is one page of a notification listing, newest first.
type Page struct {
	Items      []Notification `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// Query answers read-side listing requests over the notification store.
type Query struct {
	storage Storage
}

// NewQuery creates the notification query service.
func NewQuery(storage Storage) *Query {
	return &Query{storage: storage}
}

// List returns a page of notifications matching the filters, newest first.
// Filters combine with AND; a page beyond the last one is empty, not an
// error.
func (q *Query) List(ctx context.Context, params ListParams) (*Page, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	var filter Filter
	if params.Type != "" {
		t := Type(params.Type)
		filter.Type = &t
	}
	if params.Status != "" {
		s := Status(params.Status)
		filter.Status = &s
	}

	items, total, err := q.storage.List(ctx, filter, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	totalPages := total / limit
	if total%limit > 0 {
		totalPages++
	}

	return &Page{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
