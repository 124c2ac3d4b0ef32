package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/domain"
	pkgkafka "github.com/saivamshimuriki/realtor-platform-saivamshim-backend/pkg/kafka"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/pkg/logger"
)

// Kafka topics for realty domain events.
const (
	TopicUserRegistered  = "realty.user.registered"
	TopicPropertyCreated = "realty.property.created"
	TopicPropertyUpdated = "realty.property.updated"
	TopicPropertyDeleted = "realty.property.deleted"
)

// Aggregate type constants.
const (
	AggregateTypeUser     = "user"
	AggregateTypeProperty = "property"
)

// SourceRealtyAPI identifies events originating from this service.
const SourceRealtyAPI = "realty-api"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// PropertyEventData is the payload for property lifecycle events.
type PropertyEventData struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Location     string  `json:"location"`
	PropertyType string  `json:"property_type"`
	ListingType  string  `json:"listing_type"`
	OwnerID      int64   `json:"owner_id"`
}

// PropertyDeletedData is the payload for a property.deleted event.
type PropertyDeletedData struct {
	ID      int64 `json:"id"`
	OwnerID int64 `json:"owner_id"`
}

// Producer publishes realty domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates an event producer for the realty service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}

	return p.publish(ctx, TopicUserRegistered, strconv.FormatInt(user.ID, 10), AggregateTypeUser, data)
}

// PublishPropertyCreated publishes a property.created event.
func (p *Producer) PublishPropertyCreated(ctx context.Context, property *domain.Property) error {
	return p.publish(ctx, TopicPropertyCreated, strconv.FormatInt(property.ID, 10), AggregateTypeProperty, propertyData(property))
}

// PublishPropertyUpdated publishes a property.updated event.
func (p *Producer) PublishPropertyUpdated(ctx context.Context, property *domain.Property) error {
	return p.publish(ctx, TopicPropertyUpdated, strconv.FormatInt(property.ID, 10), AggregateTypeProperty, propertyData(property))
}

// PublishPropertyDeleted publishes a property.deleted event.
func (p *Producer) PublishPropertyDeleted(ctx context.Context, id, ownerID int64) error {
	data := PropertyDeletedData{ID: id, OwnerID: ownerID}
	return p.publish(ctx, TopicPropertyDeleted, strconv.FormatInt(id, 10), AggregateTypeProperty, data)
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceRealtyAPI, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	// Carry the request's correlation ID so consumers can tie the event back
	// to the originating HTTP request.
	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		event.WithCorrelationID(cid)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published domain event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)

	return nil
}

func propertyData(property *domain.Property) PropertyEventData {
	return PropertyEventData{
		ID:           property.ID,
		Title:        property.Title,
		Price:        property.Price,
		Location:     property.Location,
		PropertyType: property.PropertyType,
		ListingType:  property.ListingType,
		OwnerID:      property.OwnerID,
	}
}
