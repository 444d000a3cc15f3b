package get_business

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/NikoCousin/book-am/internal/api/handlers"
	businessRepo "github.com/NikoCousin/book-am/internal/infra/storage/business"
)

const (
	msgMissingSlug      = "идентификатор бизнеса обязателен"
	msgBusinessNotFound = "бизнес не найден"
)

type Handler struct {
	businessRepo BusinessRepository
	logger       Logger
}

func NewHandler(businessRepo BusinessRepository, logger Logger) *Handler {
	return &Handler{
		businessRepo: businessRepo,
		logger:       logger,
	}
}

// Handle GET /api/v1/businesses/{slug}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if slug == "" {
		handlers.RespondBadRequest(w, msgMissingSlug)
		return
	}

	business, err := h.businessRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			h.logger.Warn("GET /businesses/{slug} - Business not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgBusinessNotFound)
			return
		}
		h.logger.Error("GET /businesses/{slug} - Failed to get business: slug=%s, error=%v", slug, err)
		handlers.RespondInternalError(w)
		return
	}

	services, err := h.businessRepo.ListServices(r.Context(), business.ID, true)
	if err != nil {
		h.logger.Error("GET /businesses/{slug} - Failed to list services: business_id=%d, error=%v", business.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(business, services))
}
