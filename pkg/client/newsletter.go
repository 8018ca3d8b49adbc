package client

import (
	"context"
	"fmt"
	"net/http"

	"dwellio/pkg/model"
)

// NewsletterClient is a typed client for the newsletter endpoints.
type NewsletterClient struct {
	http *HttpClient
}

func NewNewsletterClient(baseURL string) *NewsletterClient {
	return &NewsletterClient{http: NewHttpClient(baseURL)}
}

type subscribeRequest struct {
	Email       string             `json:"email"`
	Preferences *model.Preferences `json:"preferences,omitempty"`
}

type unsubscribeRequest struct {
	Email string `json:"email"`
}

func (c *NewsletterClient) Subscribe(ctx context.Context, email string, prefs *model.Preferences) (*model.NewsletterSubscription, error) {
	resp, err := c.http.POST(ctx, "/api/newsletter/subscribe", subscribeRequest{
		Email:       email,
		Preferences: prefs,
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var envelope dataEnvelope[model.NewsletterSubscription]
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode subscription: %w", err)
	}
	return &envelope.Data, nil
}

func (c *NewsletterClient) Unsubscribe(ctx context.Context, email string) error {
	resp, err := c.http.POST(ctx, "/api/newsletter/unsubscribe", unsubscribeRequest{Email: email})
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return nil
}
