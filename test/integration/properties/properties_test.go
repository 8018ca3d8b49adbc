package integrationtests

import (
	"context"
	"strings"
	"testing"

	"dwellio/pkg/client"
	"dwellio/pkg/model"
	"dwellio/test/integration/testutil"
)

func validProperty(title, city, propertyType string, price float64) *model.Property {
	return &model.Property{
		Title:       title,
		Description: "A well lit unit close to transit and shops.",
		Price:       price,
		Location: model.Location{
			Address: "100 Main St",
			City:    city,
			State:   "TX",
			ZipCode: "78701",
		},
		PropertyType: propertyType,
		Bedrooms:     2,
		Bathrooms:    1,
		Area:         900,
		Availability: "available",
		OwnerID:      "66b0a1b2c3d4e5f601234567",
	}
}

func TestProperties(t *testing.T) {
	env := testutil.NewTestEnv(t)
	mongo := env.Setup(t)
	defer env.Cleanup(t, mongo)

	if err := client.NewHttpClient(env.ServerURL).WaitForHealthy(testutil.DefaultHealthCheckTimeout); err != nil {
		t.Fatalf("server never became healthy: %v", err)
	}

	ctx := context.Background()
	api := client.NewPropertyClient(env.ServerURL)

	var createdID string

	t.Run("create and get", func(t *testing.T) {
		created, err := api.Create(ctx, validProperty("Sunny loft downtown", "Austin", "loft", 750000))
		if err != nil {
			t.Fatalf("failed to create property: %v", err)
		}
		if created.ID == "" {
			t.Fatal("expected the created property to have an id")
		}
		createdID = created.ID

		fetched, err := api.Get(ctx, createdID)
		if err != nil {
			t.Fatalf("failed to fetch property: %v", err)
		}
		if fetched.Title != "Sunny loft downtown" {
			t.Errorf("unexpected title %q", fetched.Title)
		}
		if fetched.Availability != "available" {
			t.Errorf("expected availability defaulted to available, got %q", fetched.Availability)
		}
	})

	t.Run("list with filters", func(t *testing.T) {
		if _, err := api.Create(ctx, validProperty("Family house", "Dallas", "house", 450000)); err != nil {
			t.Fatalf("failed to create property: %v", err)
		}

		page, err := api.List(ctx, map[string]string{"propertyType": "house"}, 1, 10)
		if err != nil {
			t.Fatalf("failed to list properties: %v", err)
		}
		if page.TotalCount != 1 {
			t.Fatalf("expected one house, got %d", page.TotalCount)
		}
		if page.Properties[0].PropertyType != "house" {
			t.Errorf("unexpected property type %q", page.Properties[0].PropertyType)
		}

		page, err = api.List(ctx, map[string]string{"priceRange": "500k-1m"}, 1, 10)
		if err != nil {
			t.Fatalf("failed to list properties: %v", err)
		}
		if page.TotalCount != 1 {
			t.Fatalf("expected one listing in the 500k-1m bucket, got %d", page.TotalCount)
		}

		page, err = api.List(ctx, map[string]string{"city": "aust"}, 1, 10)
		if err != nil {
			t.Fatalf("failed to list properties: %v", err)
		}
		if page.TotalCount != 1 {
			t.Fatalf("expected the city filter to match a substring, got %d", page.TotalCount)
		}
	})

	t.Run("invalid filter is rejected", func(t *testing.T) {
		_, err := api.List(ctx, map[string]string{"bedrooms": "three"}, 1, 10)
		if err == nil {
			t.Fatal("expected an error for a non-numeric bedrooms filter")
		}
		if !strings.Contains(err.Error(), "400") {
			t.Errorf("expected a 400 response, got: %v", err)
		}
	})

	t.Run("update", func(t *testing.T) {
		newPrice := 800000.0
		updated, err := api.Update(ctx, createdID, &model.PropertyUpdate{Price: &newPrice})
		if err != nil {
			t.Fatalf("failed to update property: %v", err)
		}
		if updated.Price != newPrice {
			t.Errorf("expected price %v, got %v", newPrice, updated.Price)
		}
		if updated.Title != "Sunny loft downtown" {
			t.Errorf("expected untouched fields to survive, got title %q", updated.Title)
		}
	})

	t.Run("featured", func(t *testing.T) {
		featured := validProperty("Penthouse with terrace", "Austin", "condo", 2500000)
		featured.IsFeatured = true
		if _, err := api.Create(ctx, featured); err != nil {
			t.Fatalf("failed to create property: %v", err)
		}

		listings, err := api.Featured(ctx)
		if err != nil {
			t.Fatalf("failed to fetch featured listings: %v", err)
		}
		if len(listings) != 1 {
			t.Fatalf("expected one featured listing, got %d", len(listings))
		}
		if listings[0].Title != "Penthouse with terrace" {
			t.Errorf("unexpected featured listing %q", listings[0].Title)
		}
	})

	t.Run("similar", func(t *testing.T) {
		unrelated := validProperty("Mountain chalet", "Denver", "house", 900000)
		unrelated.Location.State = "CO"
		if _, err := api.Create(ctx, unrelated); err != nil {
			t.Fatalf("failed to create property: %v", err)
		}
		if _, err := api.Create(ctx, validProperty("Another loft", "Austin", "loft", 600000)); err != nil {
			t.Fatalf("failed to create property: %v", err)
		}

		similar, err := api.Similar(ctx, createdID)
		if err != nil {
			t.Fatalf("failed to fetch similar listings: %v", err)
		}
		for _, p := range similar {
			if p.ID == createdID {
				t.Error("expected the source listing to be excluded")
			}
			if p.Title == "Mountain chalet" {
				t.Error("expected listings sharing no type, city or state to be excluded")
			}
		}
		if len(similar) == 0 {
			t.Fatal("expected listings sharing type, city or state")
		}
	})

	t.Run("location search", func(t *testing.T) {
		cities, err := api.SearchLocations(ctx, "aus")
		if err != nil {
			t.Fatalf("failed to search locations: %v", err)
		}
		if len(cities) != 1 || cities[0] != "Austin" {
			t.Errorf("expected [Austin], got %v", cities)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := api.Delete(ctx, createdID); err != nil {
			t.Fatalf("failed to delete property: %v", err)
		}

		_, err := api.Get(ctx, createdID)
		if err == nil {
			t.Fatal("expected fetching a deleted property to fail")
		}
		if !strings.Contains(err.Error(), "404") {
			t.Errorf("expected a 404 response, got: %v", err)
		}
	})
}
