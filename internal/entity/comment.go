package entity

import (
	"strings"
	"time"
)

// Comment is a rated remark attached to one ad, authored by one user.
type Comment struct {
	ID        string
	AdID      string
	UserID    string
	Content   string
	Rating    *int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewComment builds a validated comment. Rating is optional; when present it
// must be between 1 and 5.
func NewComment(adID, userID, content string, rating *int) (*Comment, error) {
	now := time.Now().UTC()
	c := &Comment{
		AdID:      adID,
		UserID:    userID,
		Content:   content,
		Rating:    rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the comment invariants.
func (c *Comment) Validate() error {
	if strings.TrimSpace(c.Content) == "" {
		return newValidationError("content", "cannot be empty")
	}
	if c.AdID == "" {
		return newValidationError("ad_id", "cannot be empty")
	}
	if c.UserID == "" {
		return newValidationError("user_id", "cannot be empty")
	}
	if c.Rating != nil && (*c.Rating < 1 || *c.Rating > 5) {
		return newValidationError("rating", "must be between 1 and 5")
	}
	return nil
}

// OwnerID implements the Owned interface.
func (c *Comment) OwnerID() string { return c.UserID }
