package city

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"curio/internal/platform/middleware"
	id "curio/pkg/domain"
	dErrors "curio/pkg/domain-errors"
	"curio/pkg/platform/httputil"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/cities", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/current", h.handleCurrent)
		r.Get("/{cityID}", h.handleGet)
		r.Put("/{cityID}", h.handleUpdate)
		r.Delete("/{cityID}", h.handleDelete)
		r.Post("/{cityID}/activate", h.handleActivate)
	})
}

type cityRequest struct {
	Name string `json:"name"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req cityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	created, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		h.writeError(w, r, "create city", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, "list cities", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"cities": list})
}

func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Current(r.Context())
	if err != nil {
		h.writeError(w, r, "get current city", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	cityID, err := id.ParseCityID(chi.URLParam(r, "cityID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	c, err := h.service.Get(r.Context(), cityID)
	if err != nil {
		h.writeError(w, r, "get city", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	cityID, err := id.ParseCityID(chi.URLParam(r, "cityID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req cityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	updated, err := h.service.Update(r.Context(), cityID, req.Name)
	if err != nil {
		h.writeError(w, r, "update city", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	cityID, err := id.ParseCityID(chi.URLParam(r, "cityID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), cityID); err != nil {
		h.writeError(w, r, "delete city", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleActivate(w http.ResponseWriter, r *http.Request) {
	cityID, err := id.ParseCityID(chi.URLParam(r, "cityID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	c, err := h.service.Activate(r.Context(), cityID)
	if err != nil {
		h.writeError(w, r, "activate city", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if dErrors.Is(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(r.Context(), "failed to "+op,
			"error", err.Error(),
			"request_id", middleware.GetRequestID(r.Context()),
		)
	}
	httputil.WriteError(w, err)
}
