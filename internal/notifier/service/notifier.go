package service

import (
	"context"
	"encoding/json"
	"fmt"

	"dwellio/internal/properties/query"
	"dwellio/pkg/config"
	"dwellio/pkg/kafka"
	"dwellio/pkg/model"
)

// SubscriptionSource lists the subscriptions eligible for notification.
// Satisfied by the newsletter repository.
type SubscriptionSource interface {
	FindActive(ctx context.Context) ([]*model.NewsletterSubscription, error)
}

// Sender delivers one listing alert to one subscriber.
type Sender interface {
	Send(ctx context.Context, sub *model.NewsletterSubscription, property *model.Property) error
}

// LogSender records the alert instead of delivering it. Used until a
// real mail provider is wired in.
type LogSender struct {
	Log interface {
		Info(msg string, args ...any)
	}
}

func (s *LogSender) Send(ctx context.Context, sub *model.NewsletterSubscription, property *model.Property) error {
	s.Log.Info("New listing alert",
		"email", sub.Email,
		"property_id", property.ID,
		"title", property.Title,
		"city", property.Location.City,
		"price", property.Price,
	)
	return nil
}

// NotifierService fans a new listing out to every active subscriber
// whose preferences match it.
type NotifierService struct {
	subs   SubscriptionSource
	sender Sender
	cfg    *config.Config
}

func NewNotifierService(subs SubscriptionSource, sender Sender, cfg *config.Config) *NotifierService {
	return &NotifierService{
		subs:   subs,
		sender: sender,
		cfg:    cfg,
	}
}

// HandleMessage is the consumer entry point for property events. Only
// creations trigger alerts; update and delete events are acknowledged
// without action.
func (s *NotifierService) HandleMessage(ctx context.Context, msg *kafka.Message) error {
	if msg.Header(kafka.HeaderEventType) != kafka.EventPropertyCreated {
		return nil
	}

	var property model.Property
	if err := json.Unmarshal(msg.Value, &property); err != nil {
		return kafka.Permanent(fmt.Errorf("malformed property payload: %w", err))
	}

	return s.Notify(ctx, &property)
}

// Notify sends the alert to every matching subscriber. Individual send
// failures are logged and skipped so one bad address cannot block the
// rest of the batch.
func (s *NotifierService) Notify(ctx context.Context, property *model.Property) error {
	subs, err := s.subs.FindActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active subscriptions: %w", err)
	}

	matched := 0
	for _, sub := range subs {
		if !preferencesMatch(sub.Preferences, property) {
			continue
		}
		matched++
		if err := s.sender.Send(ctx, sub, property); err != nil {
			s.cfg.Log.Error("Failed to notify subscriber",
				"email", sub.Email,
				"property_id", property.ID,
				"error", err.Error(),
			)
		}
	}

	s.cfg.Log.Info("Listing alerts dispatched",
		"property_id", property.ID,
		"subscribers", len(subs),
		"matched", matched,
	)
	return nil
}

// preferencesMatch applies the subscriber's filters with the same
// semantics the listing search uses. Empty preference fields match
// everything.
func preferencesMatch(prefs model.Preferences, property *model.Property) bool {
	if len(prefs.PropertyTypes) > 0 && !anyPredicateMatch(prefs.PropertyTypes, property, func(t string) query.Predicate {
		return query.Predicate{PropertyType: t}
	}) {
		return false
	}

	if len(prefs.Locations) > 0 && !anyPredicateMatch(prefs.Locations, property, func(city string) query.Predicate {
		return query.Predicate{City: city}
	}) {
		return false
	}

	if prefs.PriceRange.Min > 0 && property.Price < prefs.PriceRange.Min {
		return false
	}
	if prefs.PriceRange.Max > 0 {
		pred := query.Predicate{PriceLTE: &prefs.PriceRange.Max}
		if !pred.Matches(property) {
			return false
		}
	}

	return true
}

func anyPredicateMatch(values []string, property *model.Property, build func(string) query.Predicate) bool {
	for _, v := range values {
		if build(v).Matches(property) {
			return true
		}
	}
	return false
}
