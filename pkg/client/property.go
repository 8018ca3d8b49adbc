package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"dwellio/pkg/model"
)

// PropertyClient is a typed client for the property endpoints.
type PropertyClient struct {
	http *HttpClient
}

func NewPropertyClient(baseURL string) *PropertyClient {
	return &PropertyClient{http: NewHttpClient(baseURL)}
}

// PropertyPage mirrors the listing response envelope.
type PropertyPage struct {
	Properties  []model.Property `json:"properties"`
	TotalCount  int64            `json:"totalCount"`
	CurrentPage int              `json:"currentPage"`
	TotalPages  int              `json:"totalPages"`
}

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func decodeError(resp *Response) error {
	var envelope errorEnvelope
	if err := resp.DecodeJSON(&envelope); err != nil || envelope.Error == "" {
		return fmt.Errorf("unexpected response: %s", resp.ToString())
	}
	return fmt.Errorf("%s (status %d)", envelope.Error, resp.StatusCode)
}

// List fetches one page of listings matching the given filters.
func (c *PropertyClient) List(ctx context.Context, filters map[string]string, page, limit int) (*PropertyPage, error) {
	query := url.Values{}
	for key, value := range filters {
		query.Set(key, value)
	}
	query.Set("page", strconv.Itoa(page))
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	resp, err := c.http.GET(ctx, "/api/properties?"+query.Encode())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var result PropertyPage
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, fmt.Errorf("failed to decode property page: %w", err)
	}
	return &result, nil
}

func (c *PropertyClient) Get(ctx context.Context, id string) (*model.Property, error) {
	resp, err := c.http.GET(ctx, "/api/properties/"+id)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var envelope dataEnvelope[model.Property]
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode property: %w", err)
	}
	return &envelope.Data, nil
}

func (c *PropertyClient) Featured(ctx context.Context) ([]model.Property, error) {
	resp, err := c.http.GET(ctx, "/api/properties/featured")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var envelope dataEnvelope[[]model.Property]
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode featured properties: %w", err)
	}
	return envelope.Data, nil
}

func (c *PropertyClient) Similar(ctx context.Context, id string) ([]model.Property, error) {
	resp, err := c.http.GET(ctx, "/api/properties/"+id+"/similar")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var envelope dataEnvelope[[]model.Property]
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode similar properties: %w", err)
	}
	return envelope.Data, nil
}

func (c *PropertyClient) Create(ctx context.Context, property *model.Property) (*model.Property, error) {
	resp, err := c.http.POST(ctx, "/api/properties", property)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp)
	}

	var envelope dataEnvelope[model.Property]
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode created property: %w", err)
	}
	return &envelope.Data, nil
}

func (c *PropertyClient) Update(ctx context.Context, id string, update *model.PropertyUpdate) (*model.Property, error) {
	resp, err := c.http.PUT(ctx, "/api/properties/"+id, update)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var envelope dataEnvelope[model.Property]
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode updated property: %w", err)
	}
	return &envelope.Data, nil
}

func (c *PropertyClient) Delete(ctx context.Context, id string) error {
	resp, err := c.http.DELETE(ctx, "/api/properties/"+id)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusNoContent {
		return decodeError(resp)
	}
	return nil
}

// SearchLocations returns distinct cities matching the query prefix.
func (c *PropertyClient) SearchLocations(ctx context.Context, q string) ([]string, error) {
	query := url.Values{}
	query.Set("q", q)

	resp, err := c.http.GET(ctx, "/api/properties/locations/search?"+query.Encode())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var envelope dataEnvelope[[]string]
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode locations: %w", err)
	}
	return envelope.Data, nil
}
