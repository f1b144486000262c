package binder_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waqfpal/console/pkg/binder"
)

type createPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type listParams struct {
	Type   string `query:"type"`
	Status string `query:"status"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

func TestJSON(t *testing.T) {
	t.Parallel()

	bind := binder.JSON()

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"t","content":"c"}`))
		r.Header.Set("Content-Type", "application/json")

		var p createPayload
		require.NoError(t, bind(r, &p))
		assert.Equal(t, "t", p.Title)
		assert.Equal(t, "c", p.Content)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/", strings.NewReader(`{}`))
		var p createPayload
		assert.ErrorIs(t, bind(r, &p), binder.ErrMissingContentType)
	})

	t.Run("wrong media type", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/", strings.NewReader(`{}`))
		r.Header.Set("Content-Type", "text/plain")
		var p createPayload
		assert.ErrorIs(t, bind(r, &p), binder.ErrUnsupportedMediaType)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"t","bogus":1}`))
		r.Header.Set("Content-Type", "application/json")
		var p createPayload
		assert.ErrorIs(t, bind(r, &p), binder.ErrFailedToParseJSON)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/", strings.NewReader(""))
		r.Header.Set("Content-Type", "application/json")
		var p createPayload
		assert.ErrorIs(t, bind(r, &p), binder.ErrFailedToParseJSON)
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	bind := binder.Query()

	t.Run("populates tagged fields", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/?type=alert&status=draft&page=2&limit=10", nil)
		var p listParams
		require.NoError(t, bind(r, &p))
		assert.Equal(t, "alert", p.Type)
		assert.Equal(t, "draft", p.Status)
		assert.Equal(t, 2, p.Page)
		assert.Equal(t, 10, p.Limit)
	})

	t.Run("absent params leave zero values", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/?type=update", nil)
		var p listParams
		require.NoError(t, bind(r, &p))
		assert.Equal(t, "update", p.Type)
		assert.Zero(t, p.Page)
	})

	t.Run("invalid int", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/?page=abc", nil)
		var p listParams
		assert.ErrorIs(t, bind(r, &p), binder.ErrFailedToParseQuery)
	})

	t.Run("non-struct target", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		var s string
		assert.ErrorIs(t, bind(r, &s), binder.ErrFailedToParseQuery)
	})
}
