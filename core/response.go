package core

import "net/http"

// Response renders itself to an http.ResponseWriter. Implementations set
// headers, status code and write the body; render errors are the caller's
// problem (typically logged and answered with a bare 500).
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Render writes resp to w, answering with a plain 500 when rendering fails.
// The render error is returned so callers can log it.
func Render(w http.ResponseWriter, r *http.Request, resp Response) error {
	if err := resp.Render(w, r); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}
	return nil
}
