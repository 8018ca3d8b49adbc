package model

import "time"

// BookingLock is an advisory lock preventing concurrent booking
// creation for the same property and date. Expiry is enforced by a TTL
// index on expires_at.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expiresAt"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
