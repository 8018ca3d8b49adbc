package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"dwellio/pkg/model"
)

// BookingClient is a typed client for the booking endpoints.
type BookingClient struct {
	http *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{http: NewHttpClient(baseURL)}
}

func (c *BookingClient) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	resp, err := c.http.POST(ctx, "/api/bookings", booking)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp)
	}

	var envelope dataEnvelope[model.Booking]
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode created booking: %w", err)
	}
	return &envelope.Data, nil
}

func (c *BookingClient) Get(ctx context.Context, id string) (*model.Booking, error) {
	resp, err := c.http.GET(ctx, "/api/bookings/"+id)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var envelope dataEnvelope[model.Booking]
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode booking: %w", err)
	}
	return &envelope.Data, nil
}

// List fetches bookings filtered by property and/or user. Empty
// arguments are omitted from the query.
func (c *BookingClient) List(ctx context.Context, propertyID, userID string) ([]model.Booking, error) {
	query := url.Values{}
	if propertyID != "" {
		query.Set("propertyId", propertyID)
	}
	if userID != "" {
		query.Set("userId", userID)
	}

	path := "/api/bookings"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	resp, err := c.http.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var envelope dataEnvelope[[]model.Booking]
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return envelope.Data, nil
}

func (c *BookingClient) UpdateStatus(ctx context.Context, id string, update *model.BookingStatusUpdate) (*model.Booking, error) {
	resp, err := c.http.PUT(ctx, "/api/bookings/"+id+"/status", update)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var envelope dataEnvelope[model.Booking]
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode updated booking: %w", err)
	}
	return &envelope.Data, nil
}

func (c *BookingClient) Delete(ctx context.Context, id string) error {
	resp, err := c.http.DELETE(ctx, "/api/bookings/"+id)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusNoContent {
		return decodeError(resp)
	}
	return nil
}
