package integrationtests

import (
	"context"
	"strings"
	"testing"
	"time"

	"dwellio/pkg/client"
	"dwellio/pkg/model"
	"dwellio/test/integration/testutil"
)

func validBooking(propertyID, userID string, start, end time.Time) *model.Booking {
	return &model.Booking{
		PropertyID:  propertyID,
		UserID:      userID,
		StartDate:   start,
		EndDate:     end,
		TotalAmount: 1200,
		ContactInfo: model.ContactInfo{
			Name:  "Alice Example",
			Email: "alice@example.com",
			Phone: "+12025550123",
		},
	}
}

func TestBookings(t *testing.T) {
	env := testutil.NewTestEnv(t)
	mongo := env.Setup(t)
	defer env.Cleanup(t, mongo)

	if err := client.NewHttpClient(env.ServerURL).WaitForHealthy(testutil.DefaultHealthCheckTimeout); err != nil {
		t.Fatalf("server never became healthy: %v", err)
	}

	ctx := context.Background()
	properties := client.NewPropertyClient(env.ServerURL)
	bookings := client.NewBookingClient(env.ServerURL)

	property, err := properties.Create(ctx, &model.Property{
		Title:       "Lake cabin",
		Description: "Two bedroom cabin right on the water.",
		Price:       300,
		Location: model.Location{
			Address: "7 Shore Rd",
			City:    "Austin",
			State:   "TX",
			ZipCode: "78701",
		},
		PropertyType: "house",
		Bedrooms:     2,
		Bathrooms:    1,
		Area:         800,
		Availability: "available",
		OwnerID:      "66b0a1b2c3d4e5f601234567",
	})
	if err != nil {
		t.Fatalf("failed to create property: %v", err)
	}

	start := time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, 4)

	var createdID string

	t.Run("create", func(t *testing.T) {
		created, err := bookings.Create(ctx, validBooking(property.ID, "user-1", start, end))
		if err != nil {
			t.Fatalf("failed to create booking: %v", err)
		}
		if created.Status != "pending" {
			t.Errorf("expected status defaulted to pending, got %q", created.Status)
		}
		if created.PaymentStatus != "pending" {
			t.Errorf("expected payment status defaulted to pending, got %q", created.PaymentStatus)
		}
		createdID = created.ID
	})

	t.Run("overlapping dates are rejected", func(t *testing.T) {
		_, err := bookings.Create(ctx, validBooking(property.ID, "user-2", start.AddDate(0, 0, 2), end.AddDate(0, 0, 2)))
		if err == nil {
			t.Fatal("expected an overlapping booking to be rejected")
		}
		if !strings.Contains(err.Error(), "409") {
			t.Errorf("expected a 409 response, got: %v", err)
		}
	})

	t.Run("duplicate active booking is rejected", func(t *testing.T) {
		_, err := bookings.Create(ctx, validBooking(property.ID, "user-1", end.AddDate(0, 0, 10), end.AddDate(0, 0, 14)))
		if err == nil {
			t.Fatal("expected a second active booking for the same user to be rejected")
		}
		if !strings.Contains(err.Error(), "409") {
			t.Errorf("expected a 409 response, got: %v", err)
		}
	})

	t.Run("list by property", func(t *testing.T) {
		results, err := bookings.List(ctx, property.ID, "")
		if err != nil {
			t.Fatalf("failed to list bookings: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("expected one booking, got %d", len(results))
		}
		if results[0].ID != createdID {
			t.Errorf("unexpected booking %q", results[0].ID)
		}
	})

	t.Run("status update", func(t *testing.T) {
		updated, err := bookings.UpdateStatus(ctx, createdID, &model.BookingStatusUpdate{
			Status:        "confirmed",
			PaymentStatus: "paid",
		})
		if err != nil {
			t.Fatalf("failed to update booking status: %v", err)
		}
		if updated.Status != "confirmed" {
			t.Errorf("expected status confirmed, got %q", updated.Status)
		}
		if updated.PaymentStatus != "paid" {
			t.Errorf("expected payment status paid, got %q", updated.PaymentStatus)
		}
	})

	t.Run("cancelled bookings free the dates", func(t *testing.T) {
		if _, err := bookings.UpdateStatus(ctx, createdID, &model.BookingStatusUpdate{Status: "cancelled"}); err != nil {
			t.Fatalf("failed to cancel booking: %v", err)
		}

		created, err := bookings.Create(ctx, validBooking(property.ID, "user-3", start, end))
		if err != nil {
			t.Fatalf("expected the freed dates to be bookable: %v", err)
		}
		if err := bookings.Delete(ctx, created.ID); err != nil {
			t.Fatalf("failed to delete booking: %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := bookings.Delete(ctx, createdID); err != nil {
			t.Fatalf("failed to delete booking: %v", err)
		}

		_, err := bookings.Get(ctx, createdID)
		if err == nil {
			t.Fatal("expected fetching a deleted booking to fail")
		}
		if !strings.Contains(err.Error(), "404") {
			t.Errorf("expected a 404 response, got: %v", err)
		}
	})
}
