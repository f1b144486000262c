package notifications

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	"github.com/waqfpal/console/core"
	"github.com/waqfpal/console/pkg/binder"
	"github.com/waqfpal/console/pkg/logger"
)

// Router is the HTTP surface of the notification subsystem.
type Router struct {
	service *Service
	engine  *Engine
	query   *Query
	inbox   *Inbox
	stream  *StreamDeliverer
	log     *slog.Logger

	bindJSON  func(*http.Request, any) error
	bindQuery func(*http.Request, any) error
}

// RouterOption customizes the notification router.
type RouterOption func(*Router)

// WithLiveStream enables the SSE endpoint that pushes notifications to
// connected accounts in real time.
func WithLiveStream(stream *StreamDeliverer) RouterOption {
	return func(rt *Router) { rt.stream = stream }
}

// NewRouter creates the HTTP router for notifications.
func NewRouter(service *Service, engine *Engine, query *Query, inbox *Inbox, log *slog.Logger, opts ...RouterOption) *Router {
	if log == nil {
		log = slog.Default()
	}
	rt := &Router{
		service:   service,
		engine:    engine,
		query:     query,
		inbox:     inbox,
		log:       log.With(logger.Component("notifications.router")),
		bindJSON:  binder.JSON(),
		bindQuery: binder.Query(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Handle returns the module's route tree, meant to be mounted under
// /notifications by the host router.
func (rt *Router) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/", rt.create)
	r.Get("/", rt.list)
	r.Get("/{id}", rt.get)
	r.Delete("/{id}", rt.delete)
	r.Post("/{id}/send", rt.send)
	r.Post("/{id}/schedule", rt.schedule)
	r.Post("/{id}/cancel", rt.cancel)

	r.Route("/inbox/{accountID}", func(r chi.Router) {
		r.Get("/", rt.inboxList)
		r.Get("/unread-count", rt.inboxUnreadCount)
		r.Post("/{notificationID}/read", rt.inboxMarkRead)
		if rt.stream != nil {
			r.Get("/stream", rt.inboxStream)
		}
	})

	return r
}

// notificationView is the API shape of a notification, enriched with
// localized labels for the closed enumerations.
type notificationView struct {
	Notification
	TypeLabel     string `json:"type_label"`
	AudienceLabel string `json:"target_audience_label"`
	StatusLabel   string `json:"status_label"`
}

func toView(n Notification, lang language.Tag) notificationView {
	return notificationView{
		Notification:  n,
		TypeLabel:     n.Type.Label(lang),
		AudienceLabel: n.Audience.Label(lang),
		StatusLabel:   n.Status.Label(lang),
	}
}

func requestLanguage(r *http.Request) language.Tag {
	return MatchLanguage(r.Header.Get("Accept-Language"))
}

func (rt *Router) create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := rt.bindJSON(r, &in); err != nil {
		rt.renderError(w, r, core.ErrBadRequest)
		return
	}
	in.CreatedBy = r.Header.Get("X-Account-ID")

	n, err := rt.service.Create(r.Context(), in)
	if err != nil {
		rt.renderError(w, r, err)
		return
	}
	rt.render(w, r, core.JSONWithStatus(http.StatusCreated, "notification_created", toView(*n, requestLanguage(r)), nil))
}

func (rt *Router) list(w http.ResponseWriter, r *http.Request) {
	var params ListParams
	if err := rt.bindQuery(r, &params); err != nil {
		rt.renderError(w, r, core.ErrBadRequest)
		return
	}

	page, err := rt.query.List(r.Context(), params)
	if err != nil {
		rt.renderError(w, r, err)
		return
	}

	lang := requestLanguage(r)
	views := make([]notificationView, len(page.Items))
	for i, n := range page.Items {
		views[i] = toView(n, lang)
	}

	rt.render(w, r, core.JSON("notifications", views, map[string]any{
		"total":       page.Total,
		"page":        page.Page,
		"limit":       page.Limit,
		"total_pages": page.TotalPages,
	}))
}

func (rt *Router) get(w http.ResponseWriter, r *http.Request) {
	n, err := rt.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		rt.renderError(w, r, err)
		return
	}
	rt.render(w, r, core.JSON("notification", toView(*n, requestLanguage(r)), nil))
}

func (rt *Router) delete(w http.ResponseWriter, r *http.Request) {
	if err := rt.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		rt.renderError(w, r, err)
		return
	}
	rt.render(w, r, core.JSON("notification_deleted", nil, nil))
}

type sendRequest struct {
	TargetAccountIDs []string `json:"target_account_ids,omitempty"`
}

func (rt *Router) send(w http.ResponseWriter, r *http.Request) {
	var opts []SendOption
	if r.ContentLength > 0 {
		var req sendRequest
		if err := rt.bindJSON(r, &req); err != nil {
			rt.renderError(w, r, core.ErrBadRequest)
			return
		}
		if len(req.TargetAccountIDs) > 0 {
			opts = append(opts, WithRecipients(req.TargetAccountIDs))
		}
	}

	res, err := rt.engine.Send(r.Context(), chi.URLParam(r, "id"), opts...)
	if err != nil {
		rt.renderError(w, r, err)
		return
	}

	lang := requestLanguage(r)
	rt.render(w, r, core.JSON("notification_sent", toView(*res.Notification, lang), map[string]any{
		"sent_count":   res.SentCount,
		"failed_count": res.FailedCount,
	}))
}

type scheduleRequest struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

func (rt *Router) schedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := rt.bindJSON(r, &req); err != nil {
		rt.renderError(w, r, core.ErrBadRequest)
		return
	}

	n, err := rt.engine.Schedule(r.Context(), chi.URLParam(r, "id"), req.ScheduledFor)
	if err != nil {
		rt.renderError(w, r, err)
		return
	}
	rt.render(w, r, core.JSON("notification_scheduled", toView(*n, requestLanguage(r)), nil))
}

func (rt *Router) cancel(w http.ResponseWriter, r *http.Request) {
	n, err := rt.engine.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		rt.renderError(w, r, err)
		return
	}
	rt.render(w, r, core.JSON("notification_cancelled", toView(*n, requestLanguage(r)), nil))
}

type inboxListParams struct {
	UnreadOnly bool `query:"unread_only"`
}

func (rt *Router) inboxList(w http.ResponseWriter, r *http.Request) {
	var params inboxListParams
	if err := rt.bindQuery(r, &params); err != nil {
		rt.renderError(w, r, core.ErrBadRequest)
		return
	}

	entries, err := rt.inbox.List(r.Context(), chi.URLParam(r, "accountID"), params.UnreadOnly)
	if err != nil {
		rt.renderError(w, r, err)
		return
	}
	rt.render(w, r, core.JSON("inbox", entries, nil))
}

func (rt *Router) inboxUnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := rt.inbox.CountUnread(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		rt.renderError(w, r, err)
		return
	}
	rt.render(w, r, core.JSON("inbox_unread_count", map[string]int{"unread": count}, nil))
}

func (rt *Router) inboxMarkRead(w http.ResponseWriter, r *http.Request) {
	err := rt.inbox.MarkRead(r.Context(), chi.URLParam(r, "accountID"), chi.URLParam(r, "notificationID"))
	if err != nil {
		rt.renderError(w, r, err)
		return
	}
	rt.render(w, r, core.JSON("inbox_entry_read", nil, nil))
}

// inboxStream pushes the account's notifications over SSE until the client
// disconnects.
func (rt *Router) inboxStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		rt.renderError(w, r, core.ErrInternalServerError)
		return
	}

	accountID := chi.URLParam(r, "accountID")
	sub := rt.stream.Subscribe(r.Context(), accountID)
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	lang := requestLanguage(r)
	for {
		select {
		case <-r.Context().Done():
			return
		case msg, open := <-sub.Receive(r.Context()):
			if !open {
				return
			}
			payload, err := json.Marshal(toView(msg.Data, lang))
			if err != nil {
				rt.log.ErrorContext(r.Context(), "failed to encode stream event", logger.Error(err))
				continue
			}
			if _, err := fmt.Fprintf(w, "event: notification\ndata: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (rt *Router) render(w http.ResponseWriter, r *http.Request, resp core.Response) {
	if err := core.Render(w, r, resp); err != nil {
		rt.log.ErrorContext(r.Context(), "failed to render response", logger.Error(err))
	}
}

// renderError maps domain errors onto the API error vocabulary before
// rendering.
func (rt *Router) renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotificationNotFound), errors.Is(err, ErrInboxEntryNotFound):
		err = core.ErrNotFound
	case errors.Is(err, ErrInvalidStatus):
		err = core.ErrConflict
	case errors.Is(err, ErrEmptyAudience):
		err = core.ErrPreconditionFailed
	}
	rt.render(w, r, core.JSONError(err))
}
