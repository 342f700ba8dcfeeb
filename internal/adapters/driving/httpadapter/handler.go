package httpadapter

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"encoding/json/jsontext"
	jsonv2 "encoding/json/v2"

	"guestbook/internal/core/domain"
	"guestbook/internal/core/service/guestbook"
)

const (
	MaxRequestSize = 1024 * 1024 // 1MB max request size
)

type Handler struct {
	guestbookService guestbook.Service
}

func NewHandler(svc guestbook.Service) *Handler {
	return &Handler{
		guestbookService: svc,
	}
}

// errorBody is the structured error response: status code, status
// text, failure message and the request path that produced it.
type errorBody struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, statusCode int, err error) {
	body := errorBody{
		Status:  statusCode,
		Error:   http.StatusText(statusCode),
		Message: err.Error(),
		Path:    r.URL.Path,
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := jsonv2.MarshalWrite(w, body); err != nil {
		log.Printf("ERROR: Failed to encode error response for '%s': %v", r.URL.Path, err)
	}
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var httpStatusCode int
	switch {

	// Not Found Errors
	case errors.Is(err, guestbook.ErrNotFound):
		httpStatusCode = http.StatusNotFound

	// Bad Request Errors
	case errors.Is(err, guestbook.ErrInvalidEntry),
		errors.Is(err, guestbook.ErrMissingID),
		errors.Is(err, guestbook.ErrInvalidID),
		errors.Is(err, domain.ErrEmptyUser),
		errors.Is(err, domain.ErrEmptyComment):
		httpStatusCode = http.StatusBadRequest

	// Default to Server Error
	default:
		log.Printf("ERROR: Unhandled error from service: %v", err)
		httpStatusCode = http.StatusInternalServerError
	}

	h.renderError(w, r, httpStatusCode, err)
}

func (h *Handler) SetupRoutes(enableCORS bool) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(RequestID)

	if enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
	}

	router.Get("/healthz", h.HandleHealth)

	router.Get("/comments", h.HandleListAll)
	router.Get("/comment/{id}", h.HandleGetByID)
	router.Get("/user/{user}", h.HandleGetByUser)

	// write operations have size limits
	router.Group(func(r chi.Router) {
		r.Use(RequestSizeLimit(MaxRequestSize)) // enforce MaxRequestSize limit
		r.Post("/add", h.HandleCreate)
		r.Post("/update", h.HandleUpdate)
	})

	router.Delete("/comment/{id}", h.HandleDeleteByID)

	return router
}

// entryID pulls the {id} URL parameter and parses it as an entry id.
func entryID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, guestbook.ErrInvalidID
	}

	return id, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	opts := jsonv2.JoinOptions(jsontext.Multiline(true), jsontext.WithIndent("  "))
	if err := jsonv2.MarshalWrite(w, payload, opts); err != nil {
		log.Printf("ERROR: Failed to encode response for '%s': %v", r.URL.Path, err)
	}
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *Handler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	entries, err := h.guestbookService.ListAll(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if entries == nil {
		entries = []domain.Entry{}
	}

	h.writeJSON(w, r, http.StatusOK, entries)
}

func (h *Handler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	entry, err := h.guestbookService.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, entry)
}

func (h *Handler) HandleGetByUser(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")

	entries, err := h.guestbookService.GetByUser(r.Context(), user)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if entries == nil {
		entries = []domain.Entry{}
	}

	h.writeJSON(w, r, http.StatusOK, entries)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close() // needs to happen even if UnmarshalRead below fails and returns early

	var entry domain.Entry
	if err := jsonv2.UnmarshalRead(r.Body, &entry); err != nil {
		log.Printf("ERROR: Failed to decode request for '%s': %v", r.URL.Path, err)
		h.renderError(w, r, http.StatusBadRequest, err)
		return
	}

	if _, err := h.guestbookService.Create(r.Context(), entry); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var entry domain.Entry
	if err := jsonv2.UnmarshalRead(r.Body, &entry); err != nil {
		log.Printf("ERROR: Failed to decode request for '%s': %v", r.URL.Path, err)
		h.renderError(w, r, http.StatusBadRequest, err)
		return
	}

	if _, err := h.guestbookService.Update(r.Context(), entry); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) HandleDeleteByID(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.guestbookService.DeleteByID(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
