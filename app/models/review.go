package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	RATING_POSITIVE = 1
	RATING_NEGATIVE = -1
)

// Review is a +1/-1 rating one user leaves for another after a transaction.
// The aggregate of these drives the bidder reputation gate.
type Review struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ReviewerID     uint      `gorm:"uniqueIndex:idx_reviews_reviewer_product;not null" json:"reviewer_id"`
	ReviewedUserID uint      `gorm:"index;not null" json:"reviewed_user_id"`
	ProductID      uint      `gorm:"uniqueIndex:idx_reviews_reviewer_product;not null" json:"product_id"`
	Rating         int       `gorm:"not null" json:"rating" validate:"oneof=-1 1"`
	Comment        string    `gorm:"type:text" json:"comment"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Review) Validate() error {
	v := validator.New()

	return v.Struct(r)
}

// RatingPoint is the aggregate reputation of a user: the share of positive
// reviews over all reviews, in [0, 1]. Zero reviews yields a zero score with
// ReviewCount 0 so callers can distinguish "unrated" from "badly rated".
type RatingPoint struct {
	Score       float64
	ReviewCount int
}
