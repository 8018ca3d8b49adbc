package model

import (
	"time"
)

// PropertyTypes enumerates the recognized listing categories, in the
// order the filter dropdowns present them.
var PropertyTypes = []string{"apartment", "house", "condo", "townhouse", "studio", "loft"}

type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

type Location struct {
	Address     string       `json:"address" bson:"address" validate:"required"`
	City        string       `json:"city" bson:"city" validate:"required"`
	State       string       `json:"state" bson:"state" validate:"required"`
	ZipCode     string       `json:"zipCode" bson:"zip_code" validate:"required"`
	Coordinates *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
}

type Image struct {
	URL string `json:"url" bson:"url" validate:"required,url"`
	Alt string `json:"alt" bson:"alt"`
}

type Agent struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Email string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
}

type Property struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title        string    `json:"title" bson:"title" validate:"required,min=2,max=100"`
	Description  string    `json:"description" bson:"description" validate:"required,max=1000"`
	Price        float64   `json:"price" bson:"price" validate:"min=0"`
	Location     Location  `json:"location" bson:"location" validate:"required"`
	PropertyType string    `json:"propertyType" bson:"property_type" validate:"required,oneof=apartment house condo townhouse studio loft"`
	Bedrooms     int       `json:"bedrooms" bson:"bedrooms" validate:"min=0"`
	Bathrooms    float64   `json:"bathrooms" bson:"bathrooms" validate:"min=0"`
	Area         float64   `json:"area" bson:"area" validate:"min=0"`
	Images       []Image   `json:"images" bson:"images" validate:"omitempty,dive"`
	Amenities    []string  `json:"amenities" bson:"amenities"`
	Features     []string  `json:"features" bson:"features"`
	Availability string    `json:"availability" bson:"availability" validate:"required,oneof=available rented sold maintenance"`
	IsFeatured   bool      `json:"isFeatured" bson:"is_featured"`
	OwnerID      string    `json:"ownerId" bson:"owner_id" validate:"required"`
	Agent        *Agent    `json:"agent,omitempty" bson:"agent,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at" validate:"omitempty"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at" validate:"omitempty"`
}

// PropertyUpdate carries partial updates; nil/zero fields are left as-is.
type PropertyUpdate struct {
	Title        string    `json:"title,omitempty" validate:"omitempty,min=2,max=100"`
	Description  string    `json:"description,omitempty" validate:"omitempty,max=1000"`
	Price        *float64  `json:"price,omitempty" validate:"omitempty,min=0"`
	Location     *Location `json:"location,omitempty"`
	PropertyType string    `json:"propertyType,omitempty" validate:"omitempty,oneof=apartment house condo townhouse studio loft"`
	Bedrooms     *int      `json:"bedrooms,omitempty" validate:"omitempty,min=0"`
	Bathrooms    *float64  `json:"bathrooms,omitempty" validate:"omitempty,min=0"`
	Area         *float64  `json:"area,omitempty" validate:"omitempty,min=0"`
	Images       *[]Image  `json:"images,omitempty" validate:"omitempty,dive"`
	Amenities    *[]string `json:"amenities,omitempty"`
	Features     *[]string `json:"features,omitempty"`
	Availability string    `json:"availability,omitempty" validate:"omitempty,oneof=available rented sold maintenance"`
	IsFeatured   *bool     `json:"isFeatured,omitempty"`
	Agent        *Agent    `json:"agent,omitempty"`
}
