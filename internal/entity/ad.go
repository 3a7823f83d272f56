package entity

import (
	"fmt"
	"strings"
	"time"
)

// AdStatus represents the lifecycle status of an ad.
type AdStatus string

const (
	StatusDraft     AdStatus = "draft"
	StatusPublished AdStatus = "published"
	StatusReserved  AdStatus = "reserved"
	StatusCompleted AdStatus = "completed"
	StatusCancelled AdStatus = "cancelled"
)

// IsValid checks if the AdStatus is one of the defined constants.
func (s AdStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusReserved, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// statusTransitions is the allowed next-states table. Completed is terminal.
var statusTransitions = map[AdStatus][]AdStatus{
	StatusDraft:     {StatusPublished, StatusCancelled},
	StatusPublished: {StatusReserved, StatusCancelled},
	StatusReserved:  {StatusCompleted, StatusPublished},
	StatusCompleted: {},
	StatusCancelled: {StatusDraft, StatusPublished},
}

// CanTransitionTo reports whether the lifecycle table allows moving from s
// to next.
func (s AdStatus) CanTransitionTo(next AdStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Ad is a marketplace listing posted by a user.
type Ad struct {
	ID          string
	UserID      string
	CategoryID  string
	Title       string
	Description string
	Price       float64

	Seller          string
	Location        string
	CEP             string
	Bedrooms        *int
	Bathrooms       *int
	Rules           []string
	Amenities       []string
	CustomRules     string
	CustomAmenities string
	Images          []string

	Status      AdStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt *time.Time
}

// NewAd builds a validated ad. Status defaults to published, and published
// ads must carry seller and location.
func NewAd(userID, categoryID, title, description string, price float64, status AdStatus) (*Ad, error) {
	if status == "" {
		status = StatusPublished
	}
	now := time.Now().UTC()
	ad := &Ad{
		UserID:      userID,
		CategoryID:  categoryID,
		Title:       title,
		Description: description,
		Price:       price,
		Status:      status,
		Rules:       []string{},
		Amenities:   []string{},
		Images:      []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if status == StatusPublished {
		ad.PublishedAt = &now
	}
	if err := ad.Validate(); err != nil {
		return nil, err
	}
	return ad, nil
}

// Validate checks the ad invariants. It runs at construction and again after
// every mutation, so an ad value in circulation is always valid.
func (a *Ad) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return newValidationError("title", "cannot be empty")
	}
	if a.Price < 0 {
		return newValidationError("price", "cannot be negative")
	}
	if a.UserID == "" {
		return newValidationError("user_id", "cannot be empty")
	}
	if a.CategoryID == "" {
		return newValidationError("category_id", "cannot be empty")
	}
	if a.Bedrooms != nil && *a.Bedrooms < 0 {
		return newValidationError("bedrooms", "cannot be negative")
	}
	if a.Bathrooms != nil && *a.Bathrooms < 0 {
		return newValidationError("bathrooms", "cannot be negative")
	}
	if !a.Status.IsValid() {
		return newValidationError("status", fmt.Sprintf("unknown status %q", a.Status))
	}
	return nil
}

// RequirePublishable enforces the fields a published ad must carry. Draft
// ads can be created without them; the check is repeated at every transition
// into published.
func (a *Ad) RequirePublishable() error {
	if strings.TrimSpace(a.Seller) == "" {
		return fmt.Errorf("%w: seller is required for published ads", ErrMissingRequiredField)
	}
	if strings.TrimSpace(a.Location) == "" {
		return fmt.Errorf("%w: location is required for published ads", ErrMissingRequiredField)
	}
	return nil
}

// OwnerID implements the Owned interface.
func (a *Ad) OwnerID() string { return a.UserID }

// ChangeStatus moves the ad to next per the lifecycle table. Entering
// published re-stamps PublishedAt: each (re)publication is a fresh
// availability event, distinct from CreatedAt.
func (a *Ad) ChangeStatus(next AdStatus) error {
	if !next.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, next)
	}
	if !a.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, next)
	}
	if next == StatusPublished {
		if err := a.RequirePublishable(); err != nil {
			return err
		}
	}
	now := time.Now().UTC()
	a.Status = next
	a.UpdatedAt = now
	if next == StatusPublished {
		a.PublishedAt = &now
	}
	return nil
}
