package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/domain"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/repository"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/service"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/pkg/middleware"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/pkg/validator"
)

// Pagination defaults for the catalog endpoint. maxLimit caps the page size
// as a hardening measure.
const (
	defaultPage  = 1
	defaultLimit = 5
	maxLimit     = 100
)

// PropertyHandler handles HTTP requests for property endpoints.
type PropertyHandler struct {
	service *service.PropertyService
	logger  *slog.Logger
}

// NewPropertyHandler creates a new property HTTP handler.
func NewPropertyHandler(svc *service.PropertyService, logger *slog.Logger) *PropertyHandler {
	return &PropertyHandler{service: svc, logger: logger}
}

// CreatePropertyRequest is the JSON request body for creating a property.
type CreatePropertyRequest struct {
	Title        string   `json:"title" validate:"required,min=1,max=500"`
	Description  string   `json:"description"`
	Price        float64  `json:"price" validate:"gte=0"`
	Location     string   `json:"location" validate:"max=255"`
	Bedrooms     int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms    int      `json:"bathrooms" validate:"gte=0"`
	Area         float64  `json:"area" validate:"gte=0"`
	PropertyType string   `json:"property_type" validate:"max=100"`
	ListingType  string   `json:"listing_type" validate:"max=100"`
	Images       []string `json:"images"`
}

// UpdatePropertyRequest is the JSON request body for updating a property.
type UpdatePropertyRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=500"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// ListResponse is the paginated catalog envelope.
type ListResponse struct {
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
	Total   int               `json:"total"`
	Results []domain.Property `json:"results"`
}

// DeleteResponse confirms a successful deletion.
type DeleteResponse struct {
	Message string `json:"message"`
}

// List handles GET /api/properties
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.PropertyFilter{
		Page:  defaultPage,
		Limit: defaultLimit,
	}

	q := r.URL.Query()

	if v := q.Get("location"); v != "" {
		filter.Location = &v
	}
	if v := q.Get("minPrice"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "minPrice must be a valid number"})
			return
		}
		filter.MinPrice = &price
	}
	if v := q.Get("maxPrice"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "maxPrice must be a valid number"})
			return
		}
		filter.MaxPrice = &price
	}
	if v := q.Get("type"); v != "" {
		filter.PropertyType = &v
	}

	// Unknown sort values fall through to the newest-first default; the
	// repository only honors the fixed menu.
	filter.SortBy = q.Get("sortBy")

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "page must be a positive integer"})
			return
		}
		filter.Page = page
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "limit must be a positive integer"})
			return
		}
		if limit > maxLimit {
			limit = maxLimit
		}
		filter.Limit = limit
	}

	properties, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, ListResponse{
		Page:    filter.Page,
		Limit:   filter.Limit,
		Total:   total,
		Results: properties,
	})
}

// Get handles GET /api/properties/{id}
func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	// A guest (no or invalid token) sees the listing without owner identity.
	role := domain.RoleGuest
	if claims := middleware.ClaimsFromContext(r.Context()); claims != nil {
		role = claims.Role
	}

	detail, err := h.service.GetDetail(r.Context(), id, role)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// Create handles POST /api/properties
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	property, err := h.service.Create(r.Context(), claims.UserID, claims.Role, service.CreateInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Location:     req.Location,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Area:         req.Area,
		PropertyType: req.PropertyType,
		ListingType:  req.ListingType,
		Images:       req.Images,
	})
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, property)
}

// Update handles PUT /api/properties/{id}
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
		return
	}

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req UpdatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	property, err := h.service.Update(r.Context(), id, claims.UserID, service.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, property)
}

// Delete handles DELETE /api/properties/{id}
func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
		return
	}

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, claims.UserID); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, DeleteResponse{Message: "Property deleted successfully"})
}

// parseID reads the {id} route parameter. On failure it writes a 400 and
// returns false, signaling the caller to return early.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "id must be a positive integer"})
		return 0, false
	}
	return id, true
}
