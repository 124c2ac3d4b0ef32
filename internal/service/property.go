package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/domain"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/event"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/repository"
	apperrors "github.com/saivamshimuriki/realtor-platform-saivamshim-backend/pkg/errors"
)

// PropertyService implements the catalog and per-owner write authorization.
type PropertyService struct {
	propertyRepo repository.PropertyRepository
	producer     *event.Producer
	logger       *slog.Logger
}

// NewPropertyService creates a new property service.
func NewPropertyService(
	propertyRepo repository.PropertyRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		producer:     producer,
		logger:       logger,
	}
}

// CreateInput holds the parameters for creating a property.
type CreateInput struct {
	Title        string
	Description  string
	Price        float64
	Location     string
	Bedrooms     int
	Bathrooms    int
	Area         float64
	PropertyType string
	ListingType  string
	Images       []string
}

// UpdateInput holds the mutable fields of a property.
type UpdateInput struct {
	Title       string
	Description string
	Price       float64
}

// Create adds a listing owned by the acting identity. Only identities with
// role owner may create listings.
func (s *PropertyService) Create(ctx context.Context, actorID int64, actorRole string, input CreateInput) (*domain.Property, error) {
	if actorRole != domain.RoleOwner {
		return nil, apperrors.Forbidden("only owners can add properties")
	}
	if input.Title == "" {
		return nil, apperrors.InvalidInput("title is required")
	}

	property := &domain.Property{
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Location:     input.Location,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		Area:         input.Area,
		PropertyType: input.PropertyType,
		ListingType:  input.ListingType,
		Images:       input.Images,
		OwnerID:      actorID,
	}

	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}

	if err := s.producer.PublishPropertyCreated(ctx, property); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish property.created event",
			slog.Int64("property_id", property.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "property created",
		slog.Int64("property_id", property.ID),
		slog.Int64("owner_id", actorID),
	)

	return property, nil
}

// List returns the filtered, paginated catalog with the total match count.
func (s *PropertyService) List(ctx context.Context, filter repository.PropertyFilter) ([]domain.Property, int, error) {
	properties, total, err := s.propertyRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}
	return properties, total, nil
}

// GetDetail returns a single property shaped by the requester's role: the
// owner's username is visible only to customers. The projection happens here,
// after the fetch, not in the query.
func (s *PropertyService) GetDetail(ctx context.Context, id int64, requesterRole string) (*domain.PropertyDetail, error) {
	detail, err := s.propertyRepo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("property", id)
		}
		return nil, fmt.Errorf("get property detail: %w", err)
	}

	if requesterRole != domain.RoleCustomer {
		detail.OwnerUsername = nil
	}

	return detail, nil
}

// Update modifies a listing after confirming the actor owns it. A missing
// listing is NotFound; an owner mismatch is Forbidden regardless of role.
func (s *PropertyService) Update(ctx context.Context, id, actorID int64, input UpdateInput) (*domain.Property, error) {
	existing, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("property", id)
		}
		return nil, fmt.Errorf("get property: %w", err)
	}

	if existing.OwnerID != actorID {
		return nil, apperrors.Forbidden("you can only update your own property")
	}

	updated, err := s.propertyRepo.Update(ctx, id, repository.PropertyUpdate{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("update property: %w", err)
	}

	if err := s.producer.PublishPropertyUpdated(ctx, updated); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish property.updated event",
			slog.Int64("property_id", updated.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "property updated",
		slog.Int64("property_id", updated.ID),
		slog.Int64("owner_id", actorID),
	)

	return updated, nil
}

// Delete removes a listing after confirming the actor owns it.
func (s *PropertyService) Delete(ctx context.Context, id, actorID int64) error {
	existing, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("property", id)
		}
		return fmt.Errorf("get property: %w", err)
	}

	if existing.OwnerID != actorID {
		return apperrors.Forbidden("you can only delete your own property")
	}

	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete property: %w", err)
	}

	if err := s.producer.PublishPropertyDeleted(ctx, id, actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish property.deleted event",
			slog.Int64("property_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "property deleted",
		slog.Int64("property_id", id),
		slog.Int64("owner_id", actorID),
	)

	return nil
}
