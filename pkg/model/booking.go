package model

import (
	"time"
)

type ContactInfo struct {
	Name  string `json:"name" bson:"name" validate:"required"`
	Email string `json:"email" bson:"email" validate:"required,email"`
	Phone string `json:"phone" bson:"phone" validate:"required"`
}

type Booking struct {
	ID              string      `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	PropertyID      string      `json:"propertyId" bson:"property_id" validate:"required,mongodb"`
	UserID          string      `json:"userId" bson:"user_id" validate:"required"`
	StartDate       time.Time   `json:"startDate" bson:"start_date" validate:"required"`
	EndDate         time.Time   `json:"endDate" bson:"end_date" validate:"required,gtfield=StartDate"`
	TotalAmount     float64     `json:"totalAmount" bson:"total_amount" validate:"min=0"`
	Status          string      `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	PaymentStatus   string      `json:"paymentStatus" bson:"payment_status" validate:"required,oneof=pending paid refunded failed"`
	SpecialRequests string      `json:"specialRequests,omitempty" bson:"special_requests,omitempty" validate:"max=500"`
	ContactInfo     ContactInfo `json:"contactInfo" bson:"contact_info" validate:"required"`
	Notes           string      `json:"notes,omitempty" bson:"notes,omitempty" validate:"max=1000"`
	CreatedAt       time.Time   `json:"createdAt" bson:"created_at" validate:"omitempty"`
	UpdatedAt       time.Time   `json:"updatedAt" bson:"updated_at" validate:"omitempty"`
}

// BookingStatusUpdate is the payload of the status transition endpoint.
type BookingStatusUpdate struct {
	Status        string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	PaymentStatus string `json:"paymentStatus,omitempty" validate:"omitempty,oneof=pending paid refunded failed"`
	Notes         string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}
