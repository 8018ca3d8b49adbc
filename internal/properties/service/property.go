package service

import (
	"context"
	"errors"
	"sync"

	propertieserrors "dwellio/internal/properties/errors"
	"dwellio/internal/properties/query"
	"dwellio/internal/properties/repository"
	"dwellio/internal/properties/validator"
	"dwellio/pkg/config"
	apperrors "dwellio/pkg/errors"
	"dwellio/pkg/kafka"
	"dwellio/pkg/middleware"
	"dwellio/pkg/model"
	"dwellio/pkg/sanitizer"
)

// EventPublisher is the slice of the Kafka producer the service needs.
// A nil publisher disables events entirely.
type EventPublisher interface {
	Publish(ctx context.Context, msg *kafka.Message) error
}

type PropertyService interface {
	List(ctx context.Context, filters map[string]string, page, limit int) ([]*model.Property, int64, error)
	GetByID(ctx context.Context, id string) (*model.Property, error)
	GetFeatured(ctx context.Context) ([]*model.Property, error)
	GetSimilar(ctx context.Context, id string) ([]*model.Property, error)
	Create(ctx context.Context, property *model.Property) error
	Update(ctx context.Context, id string, updates *model.PropertyUpdate) (*model.Property, error)
	Delete(ctx context.Context, id string) error
	SearchLocations(ctx context.Context, term string) ([]string, error)
}

type propertyService struct {
	repo      repository.PropertyRepository
	validator *validator.PropertyValidator
	publisher EventPublisher
	cfg       *config.Config
}

func NewPropertyService(
	repo repository.PropertyRepository,
	validator *validator.PropertyValidator,
	publisher EventPublisher,
	cfg *config.Config,
) PropertyService {
	return &propertyService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *propertyService) List(ctx context.Context, filters map[string]string, page, limit int) ([]*model.Property, int64, error) {
	plan, err := query.Compile(filters, page, limit)
	if err != nil {
		var invalid *query.InvalidFilterError
		if errors.As(err, &invalid) {
			return nil, 0, apperrors.InvalidInput(invalid.Error())
		}
		return nil, 0, apperrors.Internal("Failed to compile listing filters", err)
	}

	var count int64
	var properties []*model.Property
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		count, err = s.repo.Count(ctx, plan.Predicate)
		if err != nil {
			s.cfg.Log.Error("Failed to count properties", "error", err)
			errCount = apperrors.Internal("Failed to count properties", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		properties, err = s.repo.Find(ctx, plan)
		if err != nil {
			s.cfg.Log.Error("Failed to query properties",
				"page", plan.Page,
				"limit", plan.Limit,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve properties", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return properties, count, nil
}

func (s *propertyService) GetByID(ctx context.Context, id string) (*model.Property, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Property ID cannot be empty")
	}

	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Property", id)
		}
		if errors.Is(err, propertieserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid property ID format")
		}
		s.cfg.Log.Error("Failed to get property by ID", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve property", err)
	}

	return property, nil
}

func (s *propertyService) GetFeatured(ctx context.Context) ([]*model.Property, error) {
	properties, err := s.repo.FindFeatured(ctx, config.DefaultFeaturedLimit)
	if err != nil {
		s.cfg.Log.Error("Failed to get featured properties", "error", err)
		return nil, apperrors.Internal("Failed to retrieve featured properties", err)
	}
	return properties, nil
}

func (s *propertyService) GetSimilar(ctx context.Context, id string) ([]*model.Property, error) {
	property, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	similar, err := s.repo.FindSimilar(ctx, property, config.DefaultSimilarLimit)
	if err != nil {
		s.cfg.Log.Error("Failed to get similar properties", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve similar properties", err)
	}
	return similar, nil
}

func (s *propertyService) Create(ctx context.Context, property *model.Property) error {
	s.sanitize(property)
	if property.Availability == "" {
		property.Availability = config.Available
	}

	if err := s.validator.Validate(property); err != nil {
		s.cfg.Log.Warn("Property validation failed",
			"title", property.Title,
			"error", err,
		)
		return apperrors.Validation("Property validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, property); err != nil {
		s.cfg.Log.Error("Failed to create property",
			"title", property.Title,
			"error", err,
		)
		return apperrors.Internal("Failed to create property", err)
	}

	s.cfg.Log.Info("Property created successfully",
		"id", property.ID,
		"title", property.Title,
		"city", property.Location.City,
	)

	s.publishEvent(ctx, kafka.EventPropertyCreated, property)

	return nil
}

func (s *propertyService) Update(ctx context.Context, id string, updates *model.PropertyUpdate) (*model.Property, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Property ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := s.mergePropertyUpdates(existing, updates)
	s.sanitize(merged)

	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Property validation failed",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Validation("Property validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, propertieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Property", id)
		}
		s.cfg.Log.Error("Failed to update property", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update property", err)
	}

	s.cfg.Log.Info("Property updated successfully", "id", id, "title", merged.Title)

	s.publishEvent(ctx, kafka.EventPropertyUpdated, merged)

	return merged, nil
}

func (s *propertyService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Property ID cannot be empty")
	}

	property, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, propertieserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Property", id)
		}
		if errors.Is(err, propertieserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid property ID format")
		}
		s.cfg.Log.Error("Failed to delete property", "id", id, "error", err)
		return apperrors.Internal("Failed to delete property", err)
	}

	s.cfg.Log.Info("Property deleted successfully", "id", id)

	s.publishEvent(ctx, kafka.EventPropertyDeleted, property)

	return nil
}

func (s *propertyService) SearchLocations(ctx context.Context, term string) ([]string, error) {
	term = sanitizer.TrimAndNormalize(term)

	cities, err := s.repo.DistinctCities(ctx, term)
	if err != nil {
		s.cfg.Log.Error("Failed to search locations", "term", term, "error", err)
		return nil, apperrors.Internal("Failed to search locations", err)
	}
	return cities, nil
}

// publishEvent emits a property lifecycle event. Publish failures are
// logged, never surfaced: the write already succeeded.
func (s *propertyService) publishEvent(ctx context.Context, eventType string, property *model.Property) {
	if s.publisher == nil {
		return
	}

	msg, err := kafka.NewMessage(eventType, "dwellio-api").
		WithKey(property.ID).
		WithCorrelationID(middleware.RequestID(ctx)).
		WithJSON(property).
		Build()
	if err != nil {
		s.cfg.Log.Error("Failed to build property event",
			"event_type", eventType,
			"id", property.ID,
			"error", err,
		)
		return
	}

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish property event",
			"event_type", eventType,
			"id", property.ID,
			"error", err,
		)
	}
}

func (s *propertyService) sanitize(property *model.Property) {
	property.Title = sanitizer.NormalizeTitle(property.Title)
	property.Description = sanitizer.TrimAndNormalize(property.Description)
	property.Location.Address = sanitizer.TrimAndNormalize(property.Location.Address)
	property.Location.City = sanitizer.NormalizeCity(property.Location.City)
	property.Location.State = sanitizer.TrimAndNormalize(property.Location.State)
	property.Location.ZipCode = sanitizer.TrimAndNormalize(property.Location.ZipCode)
	property.Amenities = sanitizer.NormalizeTags(property.Amenities)
	property.Features = sanitizer.NormalizeTags(property.Features)
	if property.Agent != nil {
		property.Agent.Name = sanitizer.TrimAndNormalize(property.Agent.Name)
		property.Agent.Email = sanitizer.NormalizeEmail(property.Agent.Email)
		property.Agent.Phone = sanitizer.NormalizePhone(property.Agent.Phone)
	}
}

func (s *propertyService) mergePropertyUpdates(existing *model.Property, updates *model.PropertyUpdate) *model.Property {
	merged := *existing

	if updates.Title != "" {
		merged.Title = updates.Title
	}
	if updates.Description != "" {
		merged.Description = updates.Description
	}
	if updates.Price != nil {
		merged.Price = *updates.Price
	}
	if updates.Location != nil {
		merged.Location = *updates.Location
	}
	if updates.PropertyType != "" {
		merged.PropertyType = updates.PropertyType
	}
	if updates.Bedrooms != nil {
		merged.Bedrooms = *updates.Bedrooms
	}
	if updates.Bathrooms != nil {
		merged.Bathrooms = *updates.Bathrooms
	}
	if updates.Area != nil {
		merged.Area = *updates.Area
	}
	if updates.Images != nil {
		merged.Images = *updates.Images
	}
	if updates.Amenities != nil {
		merged.Amenities = *updates.Amenities
	}
	if updates.Features != nil {
		merged.Features = *updates.Features
	}
	if updates.Availability != "" {
		merged.Availability = updates.Availability
	}
	if updates.IsFeatured != nil {
		merged.IsFeatured = *updates.IsFeatured
	}
	if updates.Agent != nil {
		merged.Agent = updates.Agent
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt

	return &merged
}
