package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/checksum"
	"github.com/starford/folio/internal/contact"
	"github.com/starford/folio/internal/inbox"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/pages"
	"github.com/starford/folio/internal/portfolio"
)

const maxContactBytes = 64 << 10

// Handler holds API route handlers.
type Handler struct {
	site       *portfolio.Service
	pages      *pages.Builder
	contact    *contact.Service
	inbox      *inbox.DB
	resetAfter time.Duration
}

// NewHandler creates a new Handler. contact and inbox may be nil, in which
// case the matching routes answer 503.
func NewHandler(site *portfolio.Service, pb *pages.Builder, cs *contact.Service, ib *inbox.DB, resetAfter time.Duration) *Handler {
	return &Handler{site: site, pages: pb, contact: cs, inbox: ib, resetAfter: resetAfter}
}

// GetCollection handles GET /api/collections/{name}.
//
//	@Summary		Every record of a collection, in store order
//	@Tags			content
//	@Produce		json
//	@Param			name	path		string	true	"Collection name"	Enums(experience, projects)
//	@Param			If-None-Match	header	string	false	"ETag of a previous response"
//	@Success		200		{object}	CollectionResponse
//	@Success		304		"Not modified"
//	@Router			/collections/{name} [get]
func (h *Handler) GetCollection(w http.ResponseWriter, r *http.Request) {
	name := models.Collection(chi.URLParam(r, "name"))
	facade := h.site.Facade()

	etag := checksum.ETag(facade.Checksum(name))
	if etag != "" {
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	res, err := facade.GetAll(r.Context(), name)
	if err != nil {
		slog.Warn("get collection aborted", slog.String("collection", string(name)), slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, errorBody("request cancelled"))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetProject handles GET /api/projects/{id}.
//
//	@Summary		Get a single project by id
//	@Tags			content
//	@Produce		json
//	@Param			id	path		string	true	"Project id"
//	@Success		200	{object}	ProjectResponse
//	@Failure		404	{object}	errResponse
//	@Router			/projects/{id} [get]
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.site.Facade().Project(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get project failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusServiceUnavailable, errorBody("request cancelled"))
		}
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HomePage handles GET /api/pages/home.
//
//	@Summary		Home page view model
//	@Tags			pages
//	@Produce		json
//	@Success		200	{object}	pages.Home
//	@Router			/pages/home [get]
func (h *Handler) HomePage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.pages.Home(r.Context()))
}

// ResumePage handles GET /api/pages/resume.
//
//	@Summary		Resume page view model
//	@Tags			pages
//	@Produce		json
//	@Success		200	{object}	pages.Resume
//	@Router			/pages/resume [get]
func (h *Handler) ResumePage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.pages.Resume(r.Context()))
}

// ProjectsPage handles GET /api/pages/projects.
//
//	@Summary		Projects page view model
//	@Tags			pages
//	@Produce		json
//	@Param			selected	query		string	false	"Selected project id"
//	@Success		200			{object}	pages.Projects
//	@Router			/pages/projects [get]
func (h *Handler) ProjectsPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.pages.Projects(r.Context(), r.URL.Query().Get("selected")))
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across experience and projects
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.site.Search(r.Context(), q, limit)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalid) {
			writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
			return
		}
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// Contact handles POST /api/contact.
//
//	@Summary		Submit the contact form
//	@Tags			contact
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ContactRequest	true	"Submission"
//	@Success		202		{object}	ContactResponse
//	@Failure		400		{object}	errResponse
//	@Failure		502		{object}	ContactResponse
//	@Router			/contact [post]
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	if h.contact == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("contact form disabled"))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBytes)
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	receipt, err := h.contact.Submit(r.Context(), req)
	resp := ContactResponse{ID: receipt.ID, Status: receipt.Status, ResetAfterMS: h.resetAfter.Milliseconds()}
	switch {
	case err == nil:
		writeJSON(w, http.StatusAccepted, resp)
	case errors.Is(err, apperr.ErrInvalid):
		body := errorBody("validation failed")
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			body.Fields = verrs
		}
		writeJSON(w, http.StatusBadRequest, body)
	case errors.Is(err, apperr.ErrDelivery):
		resp.Error = "message could not be delivered"
		writeJSON(w, http.StatusBadGateway, resp)
	default:
		slog.Error("contact failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// ListMessages handles GET /api/admin/messages.
//
//	@Summary		List received contact messages, newest first
//	@Tags			admin
//	@Produce		json
//	@Param			limit	query		int	false	"Page size"
//	@Param			offset	query		int	false	"Page offset"
//	@Success		200		{object}	MessageListResponse
//	@Security		BearerAuth
//	@Router			/admin/messages [get]
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	if h.inbox == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("inbox disabled"))
		return
	}
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	msgs, total, err := h.inbox.List(r.Context(), limit, offset)
	if err != nil {
		slog.Error("list messages failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, MessageListResponse{Messages: msgs, Total: total})
}

// GetMessage handles GET /api/admin/messages/{id}.
//
//	@Summary		Get one contact message with its delivery status
//	@Tags			admin
//	@Produce		json
//	@Param			id	path		string	true	"Message id"
//	@Success		200	{object}	inbox.Message
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/admin/messages/{id} [get]
func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	if h.inbox == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("inbox disabled"))
		return
	}
	id := chi.URLParam(r, "id")
	msg, err := h.inbox.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
			return
		}
		slog.Error("get message failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// Reload handles POST /api/admin/reload.
//
//	@Summary		Re-read the content source
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	portfolio.ReloadResult
//	@Failure		422	{object}	errResponse
//	@Failure		500	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/admin/reload [post]
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	res, err := h.site.Reload(r.Context())
	if err != nil {
		slog.Warn("reload failed", slog.String("error", err.Error()))
		if errors.Is(err, apperr.ErrInvalid) {
			writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		} else {
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	if res.Changed == nil {
		res.Changed = []models.Collection{}
	}
	writeJSON(w, http.StatusOK, res)
}

// Ready handles GET /health/ready.
//
//	@Summary		Readiness with content version, record counts and indexed rows
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	ReadyResponse
//	@Failure		503	{object}	errResponse
//	@Router			/health/ready [get]
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	st, err := h.site.Status(r.Context())
	if err != nil {
		slog.Error("readiness check failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, errorBody("index unavailable"))
		return
	}
	writeJSON(w, http.StatusOK, ReadyResponse{Status: "ok", Content: st})
}
