// Package handler exposes the verification endpoints. Creating a
// verification requires a bearer token; the read endpoints are public.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"curio/internal/platform/middleware"
	"curio/internal/verification/service"
	id "curio/pkg/domain"
	dErrors "curio/pkg/domain-errors"
	"curio/pkg/platform/httputil"
)

const defaultLimit = 50

// Service defines the verification operations the handler depends on.
type Service interface {
	VerifyItem(ctx context.Context, userID id.UserID, itemID id.ItemID, note string) (*service.VerifyResult, error)
	GetVerification(ctx context.Context, verificationID id.VerificationID) (*service.Detail, error)
	GetItemVerifications(ctx context.Context, itemID id.ItemID, limit int) (*service.ItemListing, error)
	GetUserVerifications(ctx context.Context, userID id.UserID, limit int) (*service.UserListing, error)
}

type Handler struct {
	logger        *slog.Logger
	verifications Service
	jwtValidator  middleware.JWTValidator
	revocations   middleware.TokenRevocationChecker
}

func New(verifications Service, jwtValidator middleware.JWTValidator, revocations middleware.TokenRevocationChecker, logger *slog.Logger) *Handler {
	return &Handler{
		logger:        logger,
		verifications: verifications,
		jwtValidator:  jwtValidator,
		revocations:   revocations,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/verification", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(h.jwtValidator, h.revocations, h.logger))
			r.Post("/items/{itemID}/verify", h.handleVerify)
		})
		r.Get("/{verificationID}", h.handleGet)
		r.Get("/items/{itemID}", h.handleListByItem)
		r.Get("/users/{userID}", h.handleListByUser)
	})
}

type verifyRequest struct {
	Note string `json:"note"`
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	itemID, err := id.ParseItemID(chi.URLParam(r, "itemID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req verifyRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
			return
		}
	}

	result, err := h.verifications.VerifyItem(r.Context(), middleware.GetUserID(r.Context()), itemID, req.Note)
	if err != nil {
		h.writeError(w, r, "verify item", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	verificationID, err := id.ParseVerificationID(chi.URLParam(r, "verificationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	detail, err := h.verifications.GetVerification(r.Context(), verificationID)
	if err != nil {
		h.writeError(w, r, "get verification", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) handleListByItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := id.ParseItemID(chi.URLParam(r, "itemID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	listing, err := h.verifications.GetItemVerifications(r.Context(), itemID, parseLimit(r))
	if err != nil {
		h.writeError(w, r, "list item verifications", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listing)
}

func (h *Handler) handleListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	listing, err := h.verifications.GetUserVerifications(r.Context(), userID, parseLimit(r))
	if err != nil {
		h.writeError(w, r, "list user verifications", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listing)
}

// parseLimit reads the limit query parameter. Absent or unparsable values
// fall back to the default; range clamping happens in the service.
func parseLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return defaultLimit
	}
	return limit
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
