package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"dwellio/pkg/config"
	"dwellio/pkg/kafka"
	"dwellio/pkg/logger"
	"dwellio/pkg/model"
)

type mockSubscriptionSource struct {
	subs []*model.NewsletterSubscription
	err  error
}

func (m *mockSubscriptionSource) FindActive(ctx context.Context) ([]*model.NewsletterSubscription, error) {
	return m.subs, m.err
}

type captureSender struct {
	sent    []string
	failFor map[string]error
}

func (s *captureSender) Send(ctx context.Context, sub *model.NewsletterSubscription, property *model.Property) error {
	if err, ok := s.failFor[sub.Email]; ok {
		return err
	}
	s.sent = append(s.sent, sub.Email)
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
	}
}

func subscriber(email string, prefs model.Preferences) *model.NewsletterSubscription {
	return &model.NewsletterSubscription{
		ID:           "66b1c2d3e4f5a60123456789",
		Email:        email,
		IsActive:     true,
		Preferences:  prefs,
		SubscribedAt: time.Now(),
	}
}

func listing() *model.Property {
	return &model.Property{
		ID:           "656f1e9b2f8b9a0012345678",
		Title:        "Sunny loft downtown",
		Description:  "Corner unit with a lot of light",
		Price:        750000,
		PropertyType: "loft",
		Bedrooms:     2,
		Location: model.Location{
			Address: "100 Main St",
			City:    "Austin",
			State:   "TX",
			ZipCode: "78701",
		},
		Availability: "available",
	}
}

func TestNotify_MatchesPreferences(t *testing.T) {
	source := &mockSubscriptionSource{subs: []*model.NewsletterSubscription{
		subscriber("loft-fan@example.com", model.Preferences{PropertyTypes: []string{"loft"}}),
		subscriber("house-only@example.com", model.Preferences{PropertyTypes: []string{"house"}}),
		subscriber("austin@example.com", model.Preferences{Locations: []string{"austin"}}),
		subscriber("dallas@example.com", model.Preferences{Locations: []string{"Dallas"}}),
		subscriber("budget@example.com", model.Preferences{PriceRange: model.PriceRange{Max: 500000}}),
		subscriber("high-end@example.com", model.Preferences{PriceRange: model.PriceRange{Min: 1000000}}),
		subscriber("everything@example.com", model.Preferences{}),
	}}
	sender := &captureSender{}
	svc := NewNotifierService(source, sender, testConfig())

	if err := svc.Notify(context.Background(), listing()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]bool{
		"loft-fan@example.com":   true,
		"austin@example.com":     true,
		"everything@example.com": true,
	}
	if len(sender.sent) != len(want) {
		t.Fatalf("expected %d alerts, got %v", len(want), sender.sent)
	}
	for _, email := range sender.sent {
		if !want[email] {
			t.Errorf("unexpected alert for %s", email)
		}
	}
}

func TestNotify_PriceRangeBounds(t *testing.T) {
	tests := []struct {
		name  string
		prefs model.Preferences
		match bool
	}{
		{"within range", model.Preferences{PriceRange: model.PriceRange{Min: 500000, Max: 1000000}}, true},
		{"at max", model.Preferences{PriceRange: model.PriceRange{Max: 750000}}, true},
		{"at min", model.Preferences{PriceRange: model.PriceRange{Min: 750000}}, true},
		{"below min", model.Preferences{PriceRange: model.PriceRange{Min: 800000}}, false},
		{"above max", model.Preferences{PriceRange: model.PriceRange{Max: 700000}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preferencesMatch(tt.prefs, listing()); got != tt.match {
				t.Errorf("expected match=%v, got %v", tt.match, got)
			}
		})
	}
}

func TestNotify_SendFailureDoesNotBlockOthers(t *testing.T) {
	source := &mockSubscriptionSource{subs: []*model.NewsletterSubscription{
		subscriber("broken@example.com", model.Preferences{}),
		subscriber("fine@example.com", model.Preferences{}),
	}}
	sender := &captureSender{failFor: map[string]error{
		"broken@example.com": errors.New("mailbox unavailable"),
	}}
	svc := NewNotifierService(source, sender, testConfig())

	if err := svc.Notify(context.Background(), listing()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0] != "fine@example.com" {
		t.Errorf("expected the remaining subscriber to be notified, got %v", sender.sent)
	}
}

func TestHandleMessage_IgnoresOtherEventTypes(t *testing.T) {
	sender := &captureSender{}
	svc := NewNotifierService(&mockSubscriptionSource{subs: []*model.NewsletterSubscription{
		subscriber("everything@example.com", model.Preferences{}),
	}}, sender, testConfig())

	payload, _ := json.Marshal(listing())
	msg, err := kafka.NewMessage(kafka.EventPropertyUpdated, "test").Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg.Value = payload

	if err := svc.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Errorf("expected no alerts for an update event, got %v", sender.sent)
	}
}

func TestHandleMessage_MalformedPayloadIsPermanent(t *testing.T) {
	svc := NewNotifierService(&mockSubscriptionSource{}, &captureSender{}, testConfig())

	msg, err := kafka.NewMessage(kafka.EventPropertyCreated, "test").Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg.Value = []byte("{not json")

	handleErr := svc.HandleMessage(context.Background(), msg)
	if handleErr == nil {
		t.Fatal("expected an error for a malformed payload")
	}
	if kafka.ShouldRetry(handleErr) {
		t.Error("expected a malformed payload to be unretryable")
	}
}

func TestHandleMessage_DeliversCreatedEvent(t *testing.T) {
	sender := &captureSender{}
	svc := NewNotifierService(&mockSubscriptionSource{subs: []*model.NewsletterSubscription{
		subscriber("everything@example.com", model.Preferences{}),
	}}, sender, testConfig())

	msg, err := kafka.NewMessage(kafka.EventPropertyCreated, "test").WithJSON(listing()).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Errorf("expected one alert, got %v", sender.sent)
	}
}
