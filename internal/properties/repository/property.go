package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	propertieserrors "dwellio/internal/properties/errors"
	"dwellio/internal/properties/query"
	"dwellio/pkg/config"
	mongotx "dwellio/pkg/db/mongo"
	"dwellio/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Properties"
)

type mongoPropertyRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type PropertyRepository interface {
	Create(ctx context.Context, property *model.Property) error
	FindByID(ctx context.Context, id string) (*model.Property, error)
	Find(ctx context.Context, plan *query.Plan) ([]*model.Property, error)
	Count(ctx context.Context, predicate query.Predicate) (int64, error)
	Update(ctx context.Context, id string, property *model.Property) error
	Delete(ctx context.Context, id string) error

	FindFeatured(ctx context.Context, limit int) ([]*model.Property, error)
	FindSimilar(ctx context.Context, property *model.Property, limit int) ([]*model.Property, error)
	DistinctCities(ctx context.Context, term string) ([]string, error)

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoPropertyRepository(cfg *config.Config) PropertyRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPropertyRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// SessionContext cannot be wrapped without breaking transaction semantics.
func (r *mongoPropertyRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

// predicateFilter translates the compiled predicate into a MongoDB
// filter document. Semantics mirror query.Predicate.Matches.
func predicateFilter(p query.Predicate) bson.M {
	filter := bson.M{}

	if p.PropertyType != "" {
		filter["property_type"] = p.PropertyType
	}
	if p.City != "" {
		filter["location.city"] = primitive.Regex{Pattern: regexp.QuoteMeta(p.City), Options: "i"}
	}
	if p.MinBedrooms != nil {
		filter["bedrooms"] = bson.M{"$gte": *p.MinBedrooms}
	}

	price := bson.M{}
	if p.PriceGT != nil {
		price["$gt"] = *p.PriceGT
	}
	if p.PriceLTE != nil {
		price["$lte"] = *p.PriceLTE
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if p.SearchTerm != "" {
		term := primitive.Regex{Pattern: regexp.QuoteMeta(p.SearchTerm), Options: "i"}
		filter["$or"] = []bson.M{
			{"title": term},
			{"description": term},
			{"location.city": term},
			{"location.state": term},
		}
	}

	return filter
}

func sortDoc(s query.SortSpec) bson.D {
	order := 1
	if s.Desc {
		order = -1
	}
	return bson.D{{Key: s.Field, Value: order}}
}

func (r *mongoPropertyRepository) Create(ctx context.Context, property *model.Property) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	property.CreatedAt = now
	property.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, property)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		property.ID = oid.Hex()
	}

	return nil
}

func (r *mongoPropertyRepository) FindByID(ctx context.Context, id string) (*model.Property, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", propertieserrors.ErrInvalidID, id)
	}

	var property model.Property
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", propertieserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return &property, nil
}

func (r *mongoPropertyRepository) Find(ctx context.Context, plan *query.Plan) ([]*model.Property, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(plan.Limit)).
		SetSkip(int64(plan.Page-1) * int64(plan.Limit)).
		SetSort(sortDoc(plan.Sort))

	cursor, err := r.collection.Find(ctx, predicateFilter(plan.Predicate), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []*model.Property
	if err = cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}

	return properties, nil
}

func (r *mongoPropertyRepository) Count(ctx context.Context, predicate query.Predicate) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, predicateFilter(predicate))
	if err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return count, nil
}

func (r *mongoPropertyRepository) Update(ctx context.Context, id string, property *model.Property) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", propertieserrors.ErrInvalidID, id)
	}

	property.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	update := bson.M{
		"$set": bson.M{
			"title":         property.Title,
			"description":   property.Description,
			"price":         property.Price,
			"location":      property.Location,
			"property_type": property.PropertyType,
			"bedrooms":      property.Bedrooms,
			"bathrooms":     property.Bathrooms,
			"area":          property.Area,
			"images":        property.Images,
			"amenities":     property.Amenities,
			"features":      property.Features,
			"availability":  property.Availability,
			"is_featured":   property.IsFeatured,
			"agent":         property.Agent,
			"updated_at":    property.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", propertieserrors.ErrNotFound, id)
	}

	return nil
}

func (r *mongoPropertyRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", propertieserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", propertieserrors.ErrNotFound, id)
	}

	return nil
}

func (r *mongoPropertyRepository) FindFeatured(ctx context.Context, limit int) ([]*model.Property, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"is_featured": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query featured properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []*model.Property
	if err = cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode featured properties: %w", err)
	}

	return properties, nil
}

func (r *mongoPropertyRepository) FindSimilar(ctx context.Context, property *model.Property, limit int) ([]*model.Property, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(property.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", propertieserrors.ErrInvalidID, property.ID)
	}

	filter := bson.M{
		"_id": bson.M{"$ne": objectID},
		"$or": []bson.M{
			{"property_type": property.PropertyType},
			{"location.city": property.Location.City},
			{"location.state": property.Location.State},
		},
	}

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query similar properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []*model.Property
	if err = cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode similar properties: %w", err)
	}

	return properties, nil
}

func (r *mongoPropertyRepository) DistinctCities(ctx context.Context, term string) ([]string, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if term != "" {
		filter["location.city"] = primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	}

	values, err := r.collection.Distinct(ctx, "location.city", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct cities: %w", err)
	}

	cities := make([]string, 0, len(values))
	for _, v := range values {
		if city, ok := v.(string); ok {
			cities = append(cities, city)
		}
	}

	return cities, nil
}

func (r *mongoPropertyRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
