package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/gateway/application"
	"github.com/skillswap/gdpr-system/shared/events"
	"github.com/skillswap/gdpr-system/shared/models"
	"github.com/skillswap/gdpr-system/shared/saga"
)

// Identity headers injected by the authenticating reverse proxy after
// JWT validation. Requests reaching these handlers are already
// authenticated; the handlers only consume the resolved identity.
const (
	HeaderUserID         = "X-User-Id"
	HeaderUserExternalID = "X-User-External-Id"
)

// RateLimiter gates requests per authenticated subject.
type RateLimiter interface {
	Allow(subject string) bool
}

// GDPRHandlers contains the gateway's GDPR HTTP handlers
type GDPRHandlers struct {
	requestDeletion *application.RequestDeletion
	getDeletion     *application.GetDeletion
	requestExport   *application.RequestExport
	limiter         RateLimiter
}

// NewGDPRHandlers creates new GDPR handlers
func NewGDPRHandlers(
	requestDeletion *application.RequestDeletion,
	getDeletion *application.GetDeletion,
	requestExport *application.RequestExport,
	limiter RateLimiter,
) *GDPRHandlers {
	return &GDPRHandlers{
		requestDeletion: requestDeletion,
		getDeletion:     getDeletion,
		requestExport:   requestExport,
		limiter:         limiter,
	}
}

type identity struct {
	userID         models.ID
	userExternalID string
}

func resolveIdentity(r *http.Request) (identity, error) {
	id := identity{
		userID:         models.ID(r.Header.Get(HeaderUserID)),
		userExternalID: r.Header.Get(HeaderUserExternalID),
	}
	if id.userID.IsZero() || id.userExternalID == "" {
		return identity{}, errors.New("missing resolved user identity")
	}
	return id, nil
}

// RequestDeletion starts a deletion saga for the calling user
func (h *GDPRHandlers) RequestDeletion(w http.ResponseWriter, r *http.Request) {
	id, err := resolveIdentity(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	if !h.limiter.Allow(id.userID.String()) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
		return
	}

	deletionType := events.DeletionTypeFull
	if raw := r.URL.Query().Get("type"); raw != "" {
		deletionType = events.DeletionType(strings.ToUpper(raw))
	}

	cmd := &application.RequestDeletionCommand{
		UserID:         id.userID,
		UserExternalID: id.userExternalID,
		DeletionType:   deletionType,
	}

	sagaID, err := h.requestDeletion.Execute(r.Context(), cmd)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{
		"saga_id": sagaID.String(),
		"status":  string(saga.StatusInProgress),
	})
}

// GetDeletion returns the state of a deletion saga
func (h *GDPRHandlers) GetDeletion(w http.ResponseWriter, r *http.Request) {
	sagaID := chi.URLParam(r, "sagaID")
	if sagaID == "" {
		http.Error(w, "saga ID is required", http.StatusBadRequest)
		return
	}

	s, err := h.getDeletion.Execute(r.Context(), models.ID(sagaID))
	if err != nil {
		if errors.Is(err, saga.ErrNotFound) {
			http.Error(w, "deletion not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// RequestExport collects the user's data from every service
func (h *GDPRHandlers) RequestExport(w http.ResponseWriter, r *http.Request) {
	id, err := resolveIdentity(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	if !h.limiter.Allow(id.userID.String()) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
		return
	}

	export, err := h.requestExport.Execute(r.Context(), id.userID, id.userExternalID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="gdpr-export.json"`)
	json.NewEncoder(w).Encode(export)
}

// GDPRInfo describes the user's rights and what each operation does
func (h *GDPRHandlers) GDPRInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"rights": []string{"access", "erasure", "portability"},
		"operations": map[string]string{
			"export":    "GET /api/gdpr/export returns all personal data held across services",
			"delete":    "DELETE /api/gdpr/delete removes the account and personal data from every service",
			"anonymize": "DELETE /api/gdpr/delete?type=ANONYMIZE replaces personal data with irreversible placeholders",
		},
		"deletion_types": []string{
			string(events.DeletionTypeFull),
			string(events.DeletionTypeAnonymize),
		},
	})
}

// RegisterRoutes registers GDPR routes
func (h *GDPRHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/api/gdpr", func(r chi.Router) {
		r.Delete("/delete", h.RequestDeletion)
		r.Get("/deletions/{sagaID}", h.GetDeletion)
		r.Get("/export", h.RequestExport)
		r.Get("/info", h.GDPRInfo)
	})
}
