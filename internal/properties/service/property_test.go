package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	propertieserrors "dwellio/internal/properties/errors"
	"dwellio/internal/properties/query"
	"dwellio/internal/properties/validator"
	"dwellio/pkg/config"
	mongotx "dwellio/pkg/db/mongo"
	apperrors "dwellio/pkg/errors"
	"dwellio/pkg/kafka"
	"dwellio/pkg/logger"
	"dwellio/pkg/model"
)

// ────────────────────────────────────────────────
// Mock repository for testing
// ────────────────────────────────────────────────

type mockPropertyRepository struct {
	createFunc       func(ctx context.Context, p *model.Property) error
	findByIDFunc     func(ctx context.Context, id string) (*model.Property, error)
	findFunc         func(ctx context.Context, plan *query.Plan) ([]*model.Property, error)
	countFunc        func(ctx context.Context, predicate query.Predicate) (int64, error)
	deleteFunc       func(ctx context.Context, id string) error
	findFeaturedFunc func(ctx context.Context, limit int) ([]*model.Property, error)
	findSimilarFunc  func(ctx context.Context, p *model.Property, limit int) ([]*model.Property, error)
}

func (m *mockPropertyRepository) Create(ctx context.Context, p *model.Property) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, p)
	}
	p.ID = "656f1e9b2f8b9a0012345678"
	return nil
}

func (m *mockPropertyRepository) FindByID(ctx context.Context, id string) (*model.Property, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("%w: %s", propertieserrors.ErrNotFound, id)
}

func (m *mockPropertyRepository) Find(ctx context.Context, plan *query.Plan) ([]*model.Property, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, plan)
	}
	return []*model.Property{}, nil
}

func (m *mockPropertyRepository) Count(ctx context.Context, predicate query.Predicate) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, predicate)
	}
	return 0, nil
}

func (m *mockPropertyRepository) Update(ctx context.Context, id string, p *model.Property) error {
	return nil
}

func (m *mockPropertyRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockPropertyRepository) FindFeatured(ctx context.Context, limit int) ([]*model.Property, error) {
	if m.findFeaturedFunc != nil {
		return m.findFeaturedFunc(ctx, limit)
	}
	return []*model.Property{}, nil
}

func (m *mockPropertyRepository) FindSimilar(ctx context.Context, p *model.Property, limit int) ([]*model.Property, error) {
	if m.findSimilarFunc != nil {
		return m.findSimilarFunc(ctx, p, limit)
	}
	return []*model.Property{}, nil
}

func (m *mockPropertyRepository) DistinctCities(ctx context.Context, term string) ([]string, error) {
	return []string{}, nil
}

func (m *mockPropertyRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return nil
}

type mockPublisher struct {
	published []*kafka.Message
}

func (m *mockPublisher) Publish(ctx context.Context, msg *kafka.Message) error {
	m.published = append(m.published, msg)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func validProperty() *model.Property {
	return &model.Property{
		Title:        "Sunny Craftsman Bungalow",
		Description:  "Restored three-bedroom near the park",
		Price:        620_000,
		PropertyType: "house",
		Bedrooms:     3,
		Bathrooms:    2,
		Area:         1800,
		Availability: "available",
		OwnerID:      "owner-1",
		Location: model.Location{
			Address: "44 Elm St",
			City:    "Portland",
			State:   "OR",
			ZipCode: "97201",
		},
	}
}

// ────────────────────────────────────────────────
// Tests for List()
// ────────────────────────────────────────────────

func TestList_ConcurrentCountAndFind(t *testing.T) {
	mockRepo := &mockPropertyRepository{
		countFunc: func(ctx context.Context, predicate query.Predicate) (int64, error) {
			time.Sleep(10 * time.Millisecond)
			return 42, nil
		},
		findFunc: func(ctx context.Context, plan *query.Plan) ([]*model.Property, error) {
			time.Sleep(10 * time.Millisecond)
			return []*model.Property{validProperty(), validProperty()}, nil
		},
	}

	svc := NewPropertyService(mockRepo, nil, nil, testConfig())

	for i := 0; i < 10; i++ {
		properties, count, err := svc.List(context.Background(), nil, 1, 10)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if count != 42 {
			t.Errorf("iteration %d: expected count 42, got %d", i, count)
		}
		if len(properties) != 2 {
			t.Errorf("iteration %d: expected 2 properties, got %d", i, len(properties))
		}
	}
}

func TestList_CompilesFiltersIntoPlan(t *testing.T) {
	var gotPlan *query.Plan
	mockRepo := &mockPropertyRepository{
		findFunc: func(ctx context.Context, plan *query.Plan) ([]*model.Property, error) {
			gotPlan = plan
			return []*model.Property{}, nil
		},
	}

	svc := NewPropertyService(mockRepo, nil, nil, testConfig())

	_, _, err := svc.List(context.Background(), map[string]string{
		"propertyType": "house",
		"bedrooms":     "2",
		"sortBy":       "price-asc",
	}, 2, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPlan == nil {
		t.Fatal("expected Find to receive a plan")
	}
	if gotPlan.Predicate.PropertyType != "house" {
		t.Errorf("expected propertyType house, got %q", gotPlan.Predicate.PropertyType)
	}
	if gotPlan.Predicate.MinBedrooms == nil || *gotPlan.Predicate.MinBedrooms != 2 {
		t.Errorf("expected min bedrooms 2, got %v", gotPlan.Predicate.MinBedrooms)
	}
	if gotPlan.Sort.Field != query.SortFieldPrice || gotPlan.Sort.Desc {
		t.Errorf("expected ascending price sort, got %+v", gotPlan.Sort)
	}
	if gotPlan.Page != 2 || gotPlan.Limit != 8 {
		t.Errorf("expected page 2 limit 8, got page %d limit %d", gotPlan.Page, gotPlan.Limit)
	}
}

func TestList_InvalidBedroomsFilter(t *testing.T) {
	svc := NewPropertyService(&mockPropertyRepository{}, nil, nil, testConfig())

	_, _, err := svc.List(context.Background(), map[string]string{"bedrooms": "lots"}, 1, 10)

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
}

// ────────────────────────────────────────────────
// Tests for GetByID()
// ────────────────────────────────────────────────

func TestGetByID_NotFound(t *testing.T) {
	svc := NewPropertyService(&mockPropertyRepository{}, nil, nil, testConfig())

	_, err := svc.GetByID(context.Background(), "656f1e9b2f8b9a0012345678")

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", appErr.Code)
	}
}

func TestGetByID_InvalidID(t *testing.T) {
	mockRepo := &mockPropertyRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Property, error) {
			return nil, fmt.Errorf("%w: %s", propertieserrors.ErrInvalidID, id)
		},
	}
	svc := NewPropertyService(mockRepo, nil, nil, testConfig())

	_, err := svc.GetByID(context.Background(), "nonsense")

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
}

// ────────────────────────────────────────────────
// Tests for Create() and Delete()
// ────────────────────────────────────────────────

func TestCreate_ValidationFailure(t *testing.T) {
	svc := NewPropertyService(&mockPropertyRepository{}, validator.NewPropertyValidator(), nil, testConfig())

	p := validProperty()
	p.Title = "" // required

	err := svc.Create(context.Background(), p)

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected VALIDATION_ERROR, got %s", appErr.Code)
	}
}

func TestCreate_PublishesEvent(t *testing.T) {
	publisher := &mockPublisher{}
	svc := NewPropertyService(&mockPropertyRepository{}, validator.NewPropertyValidator(), publisher, testConfig())

	p := validProperty()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(publisher.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(publisher.published))
	}
	msg := publisher.published[0]
	if msg.Header(kafka.HeaderEventType) != kafka.EventPropertyCreated {
		t.Errorf("expected %s event, got %s", kafka.EventPropertyCreated, msg.Header(kafka.HeaderEventType))
	}
	if string(msg.Key) != p.ID {
		t.Errorf("expected message keyed by property ID %s, got %s", p.ID, string(msg.Key))
	}
}

func TestDelete_PublishesEvent(t *testing.T) {
	existing := validProperty()
	existing.ID = "656f1e9b2f8b9a0012345678"

	publisher := &mockPublisher{}
	mockRepo := &mockPropertyRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Property, error) {
			return existing, nil
		},
	}
	svc := NewPropertyService(mockRepo, nil, publisher, testConfig())

	if err := svc.Delete(context.Background(), existing.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(publisher.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(publisher.published))
	}
	if got := publisher.published[0].Header(kafka.HeaderEventType); got != kafka.EventPropertyDeleted {
		t.Errorf("expected %s event, got %s", kafka.EventPropertyDeleted, got)
	}
}

// ────────────────────────────────────────────────
// Tests for GetSimilar()
// ────────────────────────────────────────────────

func TestGetSimilar_PassesSourceProperty(t *testing.T) {
	source := validProperty()
	source.ID = "656f1e9b2f8b9a0012345678"

	var gotType string
	var gotLimit int
	mockRepo := &mockPropertyRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Property, error) {
			return source, nil
		},
		findSimilarFunc: func(ctx context.Context, p *model.Property, limit int) ([]*model.Property, error) {
			gotType = p.PropertyType
			gotLimit = limit
			return []*model.Property{validProperty()}, nil
		},
	}
	svc := NewPropertyService(mockRepo, nil, nil, testConfig())

	similar, err := svc.GetSimilar(context.Background(), source.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(similar) != 1 {
		t.Errorf("expected 1 similar property, got %d", len(similar))
	}
	if gotType != "house" {
		t.Errorf("expected similarity keyed on property type house, got %q", gotType)
	}
	if gotLimit != config.DefaultSimilarLimit {
		t.Errorf("expected limit %d, got %d", config.DefaultSimilarLimit, gotLimit)
	}
}
