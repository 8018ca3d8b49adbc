package service

import (
	"context"
	"errors"
	"net/mail"

	newslettererrors "dwellio/internal/newsletter/errors"
	"dwellio/internal/newsletter/repository"
	"dwellio/pkg/config"
	apperrors "dwellio/pkg/errors"
	"dwellio/pkg/model"
	"dwellio/pkg/sanitizer"
)

// SubscriberStats summarizes the subscriber base for the admin listing.
type SubscriberStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

// SubscriberPage is one page of the admin subscriber listing.
type SubscriberPage struct {
	Subscribers []*model.NewsletterSubscription `json:"subscribers"`
	Stats       SubscriberStats                 `json:"stats"`
	TotalCount  int64                           `json:"totalCount"`
	CurrentPage int                             `json:"currentPage"`
	TotalPages  int                             `json:"totalPages"`
}

// SubscriberUpdate carries a partial admin update; nil fields are left
// as-is.
type SubscriberUpdate struct {
	Preferences *model.Preferences `json:"preferences,omitempty"`
	IsActive    *bool              `json:"isActive,omitempty"`
}

type NewsletterService interface {
	// Subscribe returns the subscription and whether it was newly
	// created (false means an inactive subscription was reactivated).
	Subscribe(ctx context.Context, email string, prefs *model.Preferences) (*model.NewsletterSubscription, bool, error)
	Unsubscribe(ctx context.Context, email string) error
	ListSubscribers(ctx context.Context, status, search string, page, limit int) (*SubscriberPage, error)
	UpdateSubscriber(ctx context.Context, id string, update *SubscriberUpdate) (*model.NewsletterSubscription, error)
	DeleteSubscriber(ctx context.Context, id string) error
}

type newsletterService struct {
	repo repository.NewsletterRepository
	cfg  *config.Config
}

func NewNewsletterService(repo repository.NewsletterRepository, cfg *config.Config) NewsletterService {
	return &newsletterService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *newsletterService) Subscribe(ctx context.Context, email string, prefs *model.Preferences) (*model.NewsletterSubscription, bool, error) {
	email, err := s.normalizeEmail(email)
	if err != nil {
		return nil, false, err
	}

	preferences := model.Preferences{}
	if prefs != nil {
		preferences = *prefs
		preferences.PropertyTypes = sanitizer.NormalizeTags(preferences.PropertyTypes)
		preferences.Locations = sanitizer.NormalizeSet(preferences.Locations, sanitizer.NormalizeCity)
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.IsActive:
		return nil, false, apperrors.Conflict("This email is already subscribed to the newsletter")

	case err == nil:
		// Lapsed subscriber coming back.
		if err := s.repo.Reactivate(ctx, email, preferences); err != nil {
			s.cfg.Log.Error("Failed to reactivate subscription", "email", email, "error", err)
			return nil, false, apperrors.Internal("Failed to reactivate subscription", err)
		}
		sub, err := s.repo.FindByEmail(ctx, email)
		if err != nil {
			return nil, false, apperrors.Internal("Failed to load subscription", err)
		}
		s.cfg.Log.Info("Newsletter subscription reactivated", "email", email)
		return sub, false, nil

	case errors.Is(err, newslettererrors.ErrNotFound):
		sub := &model.NewsletterSubscription{
			Email:       email,
			Preferences: preferences,
		}
		if err := s.repo.Create(ctx, sub); err != nil {
			if errors.Is(err, newslettererrors.ErrAlreadySubscribed) {
				return nil, false, apperrors.Conflict("This email is already subscribed to the newsletter")
			}
			s.cfg.Log.Error("Failed to create subscription", "email", email, "error", err)
			return nil, false, apperrors.Internal("Failed to create subscription", err)
		}
		s.cfg.Log.Info("Newsletter subscription created", "email", email, "id", sub.ID)
		return sub, true, nil

	default:
		s.cfg.Log.Error("Failed to look up subscription", "email", email, "error", err)
		return nil, false, apperrors.Internal("Failed to look up subscription", err)
	}
}

func (s *newsletterService) Unsubscribe(ctx context.Context, email string) error {
	email, err := s.normalizeEmail(email)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, newslettererrors.ErrNotFound) {
			return apperrors.NotFound("Subscription")
		}
		s.cfg.Log.Error("Failed to look up subscription", "email", email, "error", err)
		return apperrors.Internal("Failed to look up subscription", err)
	}
	if !existing.IsActive {
		return apperrors.Conflict("This email is already unsubscribed")
	}

	if err := s.repo.Deactivate(ctx, email); err != nil {
		if errors.Is(err, newslettererrors.ErrNotFound) {
			return apperrors.NotFound("Subscription")
		}
		s.cfg.Log.Error("Failed to unsubscribe", "email", email, "error", err)
		return apperrors.Internal("Failed to unsubscribe", err)
	}

	s.cfg.Log.Info("Newsletter subscription deactivated", "email", email)
	return nil
}

func (s *newsletterService) ListSubscribers(ctx context.Context, status, search string, page, limit int) (*SubscriberPage, error) {
	if status != "" && status != "active" && status != "inactive" {
		return nil, apperrors.InvalidInput("status must be 'active' or 'inactive'")
	}
	page = config.NormalizePage(page)
	limit = config.NormalizePageLimit(limit)

	filter := repository.SubscriberFilter{Status: status, Search: search}
	offset := int64(page-1) * int64(limit)

	subs, err := s.repo.Find(ctx, filter, int64(limit), offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list subscribers", "error", err)
		return nil, apperrors.Internal("Failed to list subscribers", err)
	}
	if subs == nil {
		subs = []*model.NewsletterSubscription{}
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		s.cfg.Log.Error("Failed to count subscribers", "error", err)
		return nil, apperrors.Internal("Failed to count subscribers", err)
	}
	active, err := s.repo.Count(ctx, repository.SubscriberFilter{Status: "active"})
	if err != nil {
		return nil, apperrors.Internal("Failed to count subscribers", err)
	}
	inactive, err := s.repo.Count(ctx, repository.SubscriberFilter{Status: "inactive"})
	if err != nil {
		return nil, apperrors.Internal("Failed to count subscribers", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &SubscriberPage{
		Subscribers: subs,
		Stats: SubscriberStats{
			Total:    active + inactive,
			Active:   active,
			Inactive: inactive,
		},
		TotalCount:  total,
		CurrentPage: page,
		TotalPages:  totalPages,
	}, nil
}

func (s *newsletterService) UpdateSubscriber(ctx context.Context, id string, update *SubscriberUpdate) (*model.NewsletterSubscription, error) {
	prefs := update.Preferences
	if prefs != nil {
		normalized := *prefs
		normalized.PropertyTypes = sanitizer.NormalizeTags(normalized.PropertyTypes)
		normalized.Locations = sanitizer.NormalizeSet(normalized.Locations, sanitizer.NormalizeCity)
		prefs = &normalized
	}

	sub, err := s.repo.UpdateByID(ctx, id, prefs, update.IsActive)
	if err != nil {
		switch {
		case errors.Is(err, newslettererrors.ErrInvalidID):
			return nil, apperrors.InvalidInput("Invalid subscriber ID format")
		case errors.Is(err, newslettererrors.ErrNotFound):
			return nil, apperrors.NotFound("Subscriber")
		}
		s.cfg.Log.Error("Failed to update subscriber", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update subscriber", err)
	}

	s.cfg.Log.Info("Subscriber updated", "id", id)
	return sub, nil
}

func (s *newsletterService) DeleteSubscriber(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		switch {
		case errors.Is(err, newslettererrors.ErrInvalidID):
			return apperrors.InvalidInput("Invalid subscriber ID format")
		case errors.Is(err, newslettererrors.ErrNotFound):
			return apperrors.NotFound("Subscriber")
		}
		s.cfg.Log.Error("Failed to delete subscriber", "id", id, "error", err)
		return apperrors.Internal("Failed to delete subscriber", err)
	}

	s.cfg.Log.Info("Subscriber deleted", "id", id)
	return nil
}

func (s *newsletterService) normalizeEmail(email string) (string, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return "", apperrors.InvalidInput("Email cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", apperrors.InvalidInput("Invalid email address")
	}
	return email, nil
}
