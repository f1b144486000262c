package core

import (
	"encoding/json"
	"net/http"
)

// JSONResponse is the standard JSON response envelope.
type JSONResponse struct {
	Code    string         `json:"code,omitempty"`
	Message string         `json:"message,omitempty"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
	Error   *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// jsonResponse implements Response for JSON rendering.
type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON creates a 200 JSON response.
func JSON(code string, data any, meta map[string]any) Response {
	return JSONWithStatus(http.StatusOK, code, data, meta)
}

// JSONWithStatus creates a JSON response with an explicit status code.
func JSONWithStatus(status int, code string, data any, meta map[string]any) Response {
	return jsonResponse{
		status: status,
		body: JSONResponse{
			Code: code,
			Data: data,
			Meta: meta,
		},
	}
}

// JSONError creates a JSON error response from an error. HTTPError values
// carry their own status and translation key; ValidationError maps to 422
// with per-field details; anything else is an opaque 500.
func JSONError(err error) Response {
	status := http.StatusInternalServerError
	detail := &ErrorDetail{
		Code:    "internal_error",
		Message: err.Error(),
	}

	switch e := err.(type) {
	case ValidationError:
		status = http.StatusUnprocessableEntity
		detail.Code = "validation_error"
		if len(e) > 0 {
			detail.Details = make(map[string][]string, len(e))
			for field, msgs := range e {
				detail.Details[field] = msgs
			}
		}
	case HTTPError:
		status = e.Code
		detail.Code = e.Key
		detail.Message = http.StatusText(e.Code)
	}

	return jsonResponse{
		status: status,
		body: JSONResponse{
			Code:  detail.Code,
			Error: detail,
		},
	}
}
