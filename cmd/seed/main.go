package main

import (
	"context"
	"fmt"
	"time"

	newsletterrepository "dwellio/internal/newsletter/repository"
	propertyrepository "dwellio/internal/properties/repository"
	"dwellio/pkg/config"
	"dwellio/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

const JobName = "mongo-seed"

const seedOwnerID = "66b0a1b2c3d4e5f601234567"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Mongo seed job")

	if err := clearCollections(ctx, cfg); err != nil {
		cfg.Log.Fatal("Failed to clear collections", "error", err)
	}

	propertyRepo := propertyrepository.NewMongoPropertyRepository(cfg)
	for _, property := range seedProperties() {
		if err := propertyRepo.Create(ctx, property); err != nil {
			cfg.Log.Fatal("Failed to seed property", "title", property.Title, "error", err)
		}
	}
	cfg.Log.Info("Seeded properties", "count", len(seedProperties()))

	newsletterRepo := newsletterrepository.NewMongoNewsletterRepository(cfg)
	for _, sub := range seedSubscriptions() {
		if err := newsletterRepo.Create(ctx, sub); err != nil {
			cfg.Log.Fatal("Failed to seed subscription", "email", sub.Email, "error", err)
		}
	}
	cfg.Log.Info("Seeded newsletter subscriptions", "count", len(seedSubscriptions()))

	fmt.Println("Database seeded successfully.")
}

func clearCollections(ctx context.Context, cfg *config.Config) error {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	for _, name := range []string{"Properties", "Bookings", "Newsletter_subscriptions", "Booking_locks"} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			return fmt.Errorf("failed to clear %s: %w", name, err)
		}
	}
	cfg.Log.Info("Cleared existing data")
	return nil
}

func seedProperties() []*model.Property {
	return []*model.Property{
		{
			Title:       "Modern Apartment in Downtown",
			Description: "Beautiful modern apartment with stunning city views. Located in the heart of downtown with easy access to restaurants, shopping, and public transportation.",
			Price:       2500,
			Location: model.Location{
				Address:     "123 Main Street",
				City:        "New York",
				State:       "NY",
				ZipCode:     "10001",
				Coordinates: &model.Coordinates{Lat: 40.7589, Lng: -73.9851},
			},
			PropertyType: "apartment",
			Bedrooms:     2,
			Bathrooms:    2,
			Area:         1200,
			Images: []model.Image{
				{URL: "https://images.unsplash.com/photo-1545324418-cc1a3fa10c00?w=800", Alt: "Modern apartment living room"},
				{URL: "https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=800", Alt: "Modern apartment kitchen"},
			},
			Amenities:    []string{"Balcony", "Parking", "Gym", "Pool", "Concierge"},
			Features:     []string{"Hardwood Floors", "Central AC", "Dishwasher", "In-Unit Laundry"},
			Availability: "available",
			IsFeatured:   true,
			OwnerID:      seedOwnerID,
			Agent: &model.Agent{
				Name:  "Sarah Wilson",
				Email: "sarah@dwellio.com",
				Phone: "+1-555-0101",
			},
		},
		{
			Title:       "Cozy House with Garden",
			Description: "Charming house with a beautiful garden and modern amenities. Perfect for families looking for a quiet neighborhood with excellent schools nearby.",
			Price:       450000,
			Location: model.Location{
				Address:     "456 Oak Avenue",
				City:        "San Francisco",
				State:       "CA",
				ZipCode:     "94102",
				Coordinates: &model.Coordinates{Lat: 37.7749, Lng: -122.4194},
			},
			PropertyType: "house",
			Bedrooms:     3,
			Bathrooms:    2,
			Area:         1800,
			Images: []model.Image{
				{URL: "https://images.unsplash.com/photo-1570129477492-45c003edd2be?w=800", Alt: "Cozy house exterior"},
				{URL: "https://images.unsplash.com/photo-1564013799919-ab600027ffc6?w=800", Alt: "House garden"},
			},
			Amenities:    []string{"Garden", "Garage", "Fireplace", "Patio"},
			Features:     []string{"Hardwood Floors", "Updated Kitchen", "Master Suite", "Storage"},
			Availability: "available",
			OwnerID:      seedOwnerID,
			Agent: &model.Agent{
				Name:  "David Brown",
				Email: "david@dwellio.com",
				Phone: "+1-555-0102",
			},
		},
		{
			Title:       "Luxury Condo with Ocean View",
			Description: "Stunning oceanfront condo with panoramic views. High-end finishes and amenities make this the perfect luxury living experience.",
			Price:       3200,
			Location: model.Location{
				Address:     "789 Ocean Drive",
				City:        "Miami",
				State:       "FL",
				ZipCode:     "33101",
				Coordinates: &model.Coordinates{Lat: 25.7617, Lng: -80.1918},
			},
			PropertyType: "condo",
			Bedrooms:     2,
			Bathrooms:    2,
			Area:         1500,
			Images: []model.Image{
				{URL: "https://images.unsplash.com/photo-1512917774080-9991f1c4c750?w=800", Alt: "Luxury condo ocean view"},
				{URL: "https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=800", Alt: "Luxury condo interior"},
			},
			Amenities:    []string{"Ocean View", "Balcony", "Concierge", "Pool", "Spa"},
			Features:     []string{"Marble Floors", "Gourmet Kitchen", "Walk-in Closets", "Smart Home"},
			Availability: "available",
			IsFeatured:   true,
			OwnerID:      seedOwnerID,
			Agent: &model.Agent{
				Name:  "Lisa Garcia",
				Email: "lisa@dwellio.com",
				Phone: "+1-555-0103",
			},
		},
		{
			Title:       "Charming Studio in Arts District",
			Description: "Perfect for young professionals, this studio offers modern amenities in a vibrant arts district with plenty of entertainment options.",
			Price:       1800,
			Location: model.Location{
				Address:     "321 Art Street",
				City:        "Los Angeles",
				State:       "CA",
				ZipCode:     "90013",
				Coordinates: &model.Coordinates{Lat: 34.0522, Lng: -118.2437},
			},
			PropertyType: "studio",
			Bedrooms:     0,
			Bathrooms:    1,
			Area:         600,
			Images: []model.Image{
				{URL: "https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=800", Alt: "Studio apartment"},
				{URL: "https://images.unsplash.com/photo-1484154218962-a197022b5858?w=800", Alt: "Studio kitchen"},
			},
			Amenities:    []string{"Rooftop Deck", "Fitness Center", "Laundry Room"},
			Features:     []string{"Open Floor Plan", "High Ceilings", "Large Windows", "Modern Appliances"},
			Availability: "available",
			OwnerID:      seedOwnerID,
			Agent: &model.Agent{
				Name:  "Tom Wilson",
				Email: "tom@dwellio.com",
				Phone: "+1-555-0104",
			},
		},
		{
			Title:       "Spacious Townhouse with Rooftop",
			Description: "Multi-level townhouse with private rooftop terrace. Great for entertaining with open concept living and modern finishes throughout.",
			Price:       2800,
			Location: model.Location{
				Address:     "654 Pine Street",
				City:        "Seattle",
				State:       "WA",
				ZipCode:     "98101",
				Coordinates: &model.Coordinates{Lat: 47.6062, Lng: -122.3321},
			},
			PropertyType: "townhouse",
			Bedrooms:     3,
			Bathrooms:    2.5,
			Area:         2000,
			Images: []model.Image{
				{URL: "https://images.unsplash.com/photo-1564013799919-ab600027ffc6?w=800", Alt: "Townhouse exterior"},
				{URL: "https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=800", Alt: "Townhouse living room"},
			},
			Amenities:    []string{"Rooftop Terrace", "Garage", "Private Entrance"},
			Features:     []string{"Open Floor Plan", "Hardwood Floors", "Updated Kitchen", "Master Suite"},
			Availability: "available",
			IsFeatured:   true,
			OwnerID:      seedOwnerID,
			Agent: &model.Agent{
				Name:  "Emma Davis",
				Email: "emma@dwellio.com",
				Phone: "+1-555-0105",
			},
		},
		{
			Title:       "Industrial Loft in Historic Building",
			Description: "Converted industrial loft with exposed brick and high ceilings. Located in a historic building with character and modern amenities.",
			Price:       2200,
			Location: model.Location{
				Address:     "987 Industrial Blvd",
				City:        "Chicago",
				State:       "IL",
				ZipCode:     "60601",
				Coordinates: &model.Coordinates{Lat: 41.8781, Lng: -87.6298},
			},
			PropertyType: "loft",
			Bedrooms:     1,
			Bathrooms:    1,
			Area:         1100,
			Images: []model.Image{
				{URL: "https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=800", Alt: "Industrial loft interior"},
				{URL: "https://images.unsplash.com/photo-1484154218962-a197022b5858?w=800", Alt: "Loft kitchen"},
			},
			Amenities:    []string{"Exposed Brick", "High Ceilings", "Large Windows"},
			Features:     []string{"Open Floor Plan", "Concrete Floors", "Modern Kitchen", "City Views"},
			Availability: "available",
			OwnerID:      seedOwnerID,
			Agent: &model.Agent{
				Name:  "Alex Rodriguez",
				Email: "alex@dwellio.com",
				Phone: "+1-555-0106",
			},
		},
	}
}

func seedSubscriptions() []*model.NewsletterSubscription {
	return []*model.NewsletterSubscription{
		{
			Email: "subscriber1@example.com",
			Preferences: model.Preferences{
				PropertyTypes: []string{"apartment", "condo"},
				PriceRange:    model.PriceRange{Min: 2000, Max: 3000},
				Locations:     []string{"New York", "Miami"},
			},
		},
		{
			Email: "subscriber2@example.com",
			Preferences: model.Preferences{
				PropertyTypes: []string{"house", "townhouse"},
				PriceRange:    model.PriceRange{Min: 300000, Max: 600000},
				Locations:     []string{"San Francisco", "Seattle"},
			},
		},
		{
			Email: "subscriber3@example.com",
			Preferences: model.Preferences{
				PropertyTypes: []string{"studio", "loft"},
				PriceRange:    model.PriceRange{Min: 1500, Max: 2500},
				Locations:     []string{"Los Angeles", "Chicago"},
			},
		},
	}
}
