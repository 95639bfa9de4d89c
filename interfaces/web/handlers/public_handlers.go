package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"inmohub/application"
	"inmohub/domain/contracts"
	"inmohub/interfaces/web/presenters"
	"inmohub/logging"
)

// PublicHandlers handles the storefront and chatbot HTTP endpoints.
// Orchestrates between business services and presentation logic.
type PublicHandlers struct {
	catalogService *application.CatalogService
	chatService    *application.ChatService
	presenter      *presenters.PropertyPresenter
	logger         *logging.Logger
}

// NewPublicHandlers creates a new public handlers instance with required dependencies.
func NewPublicHandlers(
	catalogService *application.CatalogService,
	chatService *application.ChatService,
	presenter *presenters.PropertyPresenter,
	logger *logging.Logger,
) *PublicHandlers {
	return &PublicHandlers{
		catalogService: catalogService,
		chatService:    chatService,
		presenter:      presenter,
		logger:         logger,
	}
}

// Storefront serves the filtered, sorted public listing grid plus the
// featured strip, both computed from one snapshot.
func (h *PublicHandlers) Storefront(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	criteria := CriteriaFromQuery(r.URL.Query())
	sortKey := SortKeyFromQuery(r.URL.Query())

	data, err := h.catalogService.Storefront(ctx, criteria, sortKey)
	if err != nil {
		h.logger.Catalog("storefront query failed", "error", err.Error())
		RespondError(w, http.StatusInternalServerError, "could not load properties")
		return
	}

	RespondJSON(w, http.StatusOK, h.presenter.ToStorefrontVM(data))
}

// Featured serves only the featured strip.
func (h *PublicHandlers) Featured(w http.ResponseWriter, r *http.Request) {
	props, err := h.catalogService.Featured(r.Context())
	if err != nil {
		h.logger.Catalog("featured query failed", "error", err.Error())
		RespondError(w, http.StatusInternalServerError, "could not load properties")
		return
	}

	RespondJSON(w, http.StatusOK, map[string]any{
		"featured": h.presenter.ToCards(props),
	})
}

// Detail serves the permalink view for one published property. Missing,
// draft, paused and deleted records all get the same not-available payload
// so the URL leaks nothing about back office state.
func (h *PublicHandlers) Detail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		RespondNotAvailable(w)
		return
	}

	prop, err := h.catalogService.GetPublished(r.Context(), id)
	if err != nil {
		if errors.Is(err, contracts.ErrNotFound) {
			RespondNotAvailable(w)
			return
		}
		h.logger.Catalog("detail query failed", "id", id, "error", err.Error())
		RespondError(w, http.StatusInternalServerError, "could not load property")
		return
	}

	RespondJSON(w, http.StatusOK, h.presenter.ToDetailVM(prop))
}

// chatRequest is the chatbot request body.
type chatRequest struct {
	Message string `json:"message"`
}

// chatResponse is the chatbot reply payload.
type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat answers one visitor message from the knowledge base.
func (h *PublicHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		RespondJSON(w, http.StatusOK, chatResponse{Reply: h.chatService.Greeting()})
		return
	}

	RespondJSON(w, http.StatusOK, chatResponse{Reply: h.chatService.Reply(req.Message)})
}

// Health reports process liveness for load balancer probes.
func (h *PublicHandlers) Health(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
