package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingserrors "dwellio/internal/bookings/errors"
	"dwellio/internal/bookings/repository"
	"dwellio/internal/bookings/validator"
	"dwellio/pkg/config"
	apperrors "dwellio/pkg/errors"
	"dwellio/pkg/model"
	"dwellio/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

// PropertyChecker resolves the listing a booking targets. Satisfied by
// the property service.
type PropertyChecker interface {
	GetByID(ctx context.Context, id string) (*model.Property, error)
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, propertyID, userID string, limit int, offset int64) ([]*model.Booking, int64, error)
	UpdateStatus(ctx context.Context, id string, update *model.BookingStatusUpdate) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
}

type bookingService struct {
	repo       repository.BookingRepository
	lockRepo   repository.BookingLockRepository
	properties PropertyChecker
	validator  *validator.BookingValidator
	cfg        *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	properties PropertyChecker,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:       repo,
		lockRepo:   lockRepo,
		properties: properties,
		validator:  validator,
		cfg:        cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.applyDefaults(booking)
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	property, err := s.properties.GetByID(ctx, booking.PropertyID)
	if err != nil {
		return err
	}
	if property.Availability != config.Available {
		return apperrors.Conflict(fmt.Sprintf(
			"Property is not available for booking (availability: %s)",
			property.Availability,
		))
	}

	// Advisory lock keyed on the property; creations for the same
	// listing serialize so two overlapping ranges cannot both pass
	// the overlap check.
	lockID, err := s.acquirePropertyLock(ctx, booking.PropertyID)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releasePropertyLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoDuplicate(sessCtx, booking); err != nil {
			return err
		}
		if err := s.verifyNoOverlap(sessCtx, booking); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"property_id", booking.PropertyID,
		"user_id", booking.UserID,
		"start_date", booking.StartDate,
	)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, propertyID, userID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, propertyID, userID)
		if errCount != nil {
			if errors.Is(errCount, bookingserrors.ErrInvalidID) {
				errCount = apperrors.InvalidInput("Invalid property ID format")
				return
			}
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.Find(ctx, propertyID, userID, limit, offset)
		if errFind != nil {
			if errors.Is(errFind, bookingserrors.ErrInvalidID) {
				errFind = apperrors.InvalidInput("Invalid property ID format")
				return
			}
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, id string, update *model.BookingStatusUpdate) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.validator.ValidateStatusUpdate(update); err != nil {
		s.cfg.Log.Warn("Booking status update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid status update", map[string]any{"error": err.Error()})
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, update); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to update booking status", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update booking status", err)
	}

	s.cfg.Log.Info("Booking status updated",
		"id", id,
		"status", update.Status,
		"payment_status", update.PaymentStatus,
	)

	return s.GetByID(ctx, id)
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to delete booking", "id", id, "error", err)
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	return nil
}

// --- Helpers ---

func (s *bookingService) sanitize(b *model.Booking) {
	b.ContactInfo.Name = sanitizer.TrimAndNormalize(b.ContactInfo.Name)
	b.ContactInfo.Email = sanitizer.NormalizeEmail(b.ContactInfo.Email)
	b.ContactInfo.Phone = sanitizer.NormalizePhone(b.ContactInfo.Phone)
	b.SpecialRequests = sanitizer.TrimAndNormalize(b.SpecialRequests)
	b.Notes = sanitizer.TrimAndNormalize(b.Notes)
}

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.Status == "" {
		b.Status = config.BookingPending
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = config.PaymentPending
	}
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// verifyNoDuplicate rejects a second active booking by the same user
// for the same property.
func (s *bookingService) verifyNoDuplicate(ctx context.Context, booking *model.Booking) error {
	existing, err := s.repo.FindActiveByPropertyAndUser(ctx, booking.PropertyID, booking.UserID)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}

	for _, b := range existing {
		if b.ID != booking.ID {
			return apperrors.Conflict(fmt.Sprintf(
				"You already have an active booking for this property (id: %s)",
				b.ID,
			))
		}
	}
	return nil
}

func (s *bookingService) verifyNoOverlap(ctx context.Context, booking *model.Booking) error {
	existing, err := s.repo.FindOverlapping(ctx, booking.PropertyID, booking.StartDate, booking.EndDate)
	if err != nil {
		return apperrors.Internal("Failed to check overlapping bookings", err)
	}

	for _, b := range existing {
		if b.ID == booking.ID {
			continue
		}
		return apperrors.Conflict(fmt.Sprintf(
			"Booking dates overlap with an existing booking (%s - %s)",
			b.StartDate.Format(time.RFC3339),
			b.EndDate.Format(time.RFC3339),
		))
	}
	return nil
}

// acquirePropertyLock creates an advisory lock covering all booking
// creations for one listing. Keying on the property rather than the
// slot means overlapping ranges with different start dates still
// contend on the same lock.
func (s *bookingService) acquirePropertyLock(ctx context.Context, propertyID string) (string, error) {
	lockID := "booking_lock_" + propertyID

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(10 * time.Second),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This property is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releasePropertyLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
