package model

import (
	"time"
)

type PriceRange struct {
	Min float64 `json:"min" bson:"min" validate:"min=0"`
	Max float64 `json:"max" bson:"max" validate:"min=0"`
}

type Preferences struct {
	PropertyTypes []string   `json:"propertyTypes" bson:"property_types" validate:"dive,oneof=apartment house condo townhouse studio loft"`
	Locations     []string   `json:"locations" bson:"locations"`
	PriceRange    PriceRange `json:"priceRange" bson:"price_range"`
}

type NewsletterSubscription struct {
	ID             string      `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Email          string      `json:"email" bson:"email" validate:"required,email"`
	IsActive       bool        `json:"isActive" bson:"is_active"`
	Preferences    Preferences `json:"preferences" bson:"preferences"`
	SubscribedAt   time.Time   `json:"subscribedAt" bson:"subscribed_at" validate:"omitempty"`
	UnsubscribedAt *time.Time  `json:"unsubscribedAt,omitempty" bson:"unsubscribed_at,omitempty"`
}
