package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	newslettererrors "dwellio/internal/newsletter/errors"
	"dwellio/pkg/config"
	"dwellio/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Newsletter_subscriptions"
)

type mongoNewsletterRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

// SubscriberFilter narrows the admin subscriber listing. Status is
// "active", "inactive" or empty for all; Search matches the email as a
// case-insensitive substring.
type SubscriberFilter struct {
	Status string
	Search string
}

type NewsletterRepository interface {
	Create(ctx context.Context, sub *model.NewsletterSubscription) error
	FindByEmail(ctx context.Context, email string) (*model.NewsletterSubscription, error)
	Reactivate(ctx context.Context, email string, prefs model.Preferences) error
	Deactivate(ctx context.Context, email string) error
	FindActive(ctx context.Context) ([]*model.NewsletterSubscription, error)
	Find(ctx context.Context, filter SubscriberFilter, limit, offset int64) ([]*model.NewsletterSubscription, error)
	Count(ctx context.Context, filter SubscriberFilter) (int64, error)
	UpdateByID(ctx context.Context, id string, prefs *model.Preferences, isActive *bool) (*model.NewsletterSubscription, error)
	DeleteByID(ctx context.Context, id string) error
}

func NewMongoNewsletterRepository(cfg *config.Config) NewsletterRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoNewsletterRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoNewsletterRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// Create relies on the unique index on email; a concurrent duplicate
// surfaces as ErrAlreadySubscribed.
func (r *mongoNewsletterRepository) Create(ctx context.Context, sub *model.NewsletterSubscription) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	sub.SubscribedAt = time.Now().UTC().Truncate(time.Millisecond)
	sub.IsActive = true
	sub.UnsubscribedAt = nil

	result, err := r.collection.InsertOne(ctx, sub)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", newslettererrors.ErrAlreadySubscribed, sub.Email)
		}
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		sub.ID = oid.Hex()
	}

	return nil
}

func (r *mongoNewsletterRepository) FindByEmail(ctx context.Context, email string) (*model.NewsletterSubscription, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var sub model.NewsletterSubscription
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", newslettererrors.ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}
	return &sub, nil
}

func (r *mongoNewsletterRepository) Reactivate(ctx context.Context, email string, prefs model.Preferences) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"is_active":     true,
			"preferences":   prefs,
			"subscribed_at": time.Now().UTC().Truncate(time.Millisecond),
		},
		"$unset": bson.M{
			"unsubscribed_at": "",
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("failed to reactivate subscription: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", newslettererrors.ErrNotFound, email)
	}
	return nil
}

func (r *mongoNewsletterRepository) Deactivate(ctx context.Context, email string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{
		"$set": bson.M{
			"is_active":       false,
			"unsubscribed_at": now,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("failed to deactivate subscription: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", newslettererrors.ErrNotFound, email)
	}
	return nil
}

func subscriberFilterToBson(filter SubscriberFilter) bson.M {
	query := bson.M{}
	switch filter.Status {
	case "active":
		query["is_active"] = true
	case "inactive":
		query["is_active"] = false
	}
	if filter.Search != "" {
		query["email"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
	}
	return query
}

func (r *mongoNewsletterRepository) Find(ctx context.Context, filter SubscriberFilter, limit, offset int64) ([]*model.NewsletterSubscription, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(limit).
		SetSkip(offset).
		SetSort(bson.D{{Key: "subscribed_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, subscriberFilterToBson(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscribers: %w", err)
	}
	defer cursor.Close(ctx)

	var subs []*model.NewsletterSubscription
	if err = cursor.All(ctx, &subs); err != nil {
		return nil, fmt.Errorf("failed to decode subscribers: %w", err)
	}

	return subs, nil
}

func (r *mongoNewsletterRepository) Count(ctx context.Context, filter SubscriberFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, subscriberFilterToBson(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}

func (r *mongoNewsletterRepository) UpdateByID(ctx context.Context, id string, prefs *model.Preferences, isActive *bool) (*model.NewsletterSubscription, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", newslettererrors.ErrInvalidID, id)
	}

	set := bson.M{}
	if prefs != nil {
		set["preferences"] = *prefs
	}
	if isActive != nil {
		set["is_active"] = *isActive
		if !*isActive {
			set["unsubscribed_at"] = time.Now().UTC().Truncate(time.Millisecond)
		}
	}
	if len(set) == 0 {
		return r.findByID(ctx, objectID)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var sub model.NewsletterSubscription
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", newslettererrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to update subscriber: %w", err)
	}
	return &sub, nil
}

func (r *mongoNewsletterRepository) findByID(ctx context.Context, objectID primitive.ObjectID) (*model.NewsletterSubscription, error) {
	var sub model.NewsletterSubscription
	err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", newslettererrors.ErrNotFound, objectID.Hex())
		}
		return nil, fmt.Errorf("failed to find subscriber: %w", err)
	}
	return &sub, nil
}

func (r *mongoNewsletterRepository) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", newslettererrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete subscriber: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", newslettererrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoNewsletterRepository) FindActive(ctx context.Context) ([]*model.NewsletterSubscription, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to query active subscriptions: %w", err)
	}
	defer cursor.Close(ctx)

	var subs []*model.NewsletterSubscription
	if err = cursor.All(ctx, &subs); err != nil {
		return nil, fmt.Errorf("failed to decode subscriptions: %w", err)
	}

	return subs, nil
}
