package core_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waqfpal/console/core"
)

func render(t *testing.T, resp core.Response) (*httptest.ResponseRecorder, core.JSONResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	require.NoError(t, resp.Render(rec, req))

	var body core.JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestJSON(t *testing.T) {
	t.Parallel()

	rec, body := render(t, core.JSON("ok", map[string]any{"id": "n1"}, map[string]any{"total": 1}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "ok", body.Code)
	assert.Nil(t, body.Error)
}

func TestJSONWithStatus(t *testing.T) {
	t.Parallel()

	rec, _ := render(t, core.JSONWithStatus(http.StatusCreated, "created", nil, nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	t.Run("http error", func(t *testing.T) {
		t.Parallel()

		rec, body := render(t, core.JSONError(core.ErrNotFound))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		require.NotNil(t, body.Error)
		assert.Equal(t, "not_found", body.Error.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		t.Parallel()

		verr := core.NewValidationError()
		verr.Add("title", "is required")

		rec, body := render(t, core.JSONError(verr))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.NotNil(t, body.Error)
		assert.Equal(t, "validation_error", body.Error.Code)
		assert.Equal(t, []string{"is required"}, body.Error.Details["title"])
	})

	t.Run("opaque error", func(t *testing.T) {
		t.Parallel()

		rec, body := render(t, core.JSONError(assert.AnError))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal_error", body.Error.Code)
	})
}
