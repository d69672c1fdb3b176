package model

import "time"

// Comment is a single user review on a product.
type Comment struct {
	// ID is the unique identifier of the comment.
	ID string `json:"id" db:"id"`

	// ProductID is the product the comment belongs to.
	ProductID int `json:"product_id" db:"product_id"`

	// User is the display name of the author.
	User string `json:"user" db:"author"`

	// Comment is the review text.
	Comment string `json:"comment" db:"comment"`

	// Rate is the star rating from 0 to 5.
	Rate float64 `json:"rate" db:"rate"`

	// CreatedAt is when the comment was posted.
	CreatedAt time.Time `json:"create_at" db:"created_at"`
}

// Rating bounds accepted by the add-comment form.
const (
	MinRate = 1.0
	MaxRate = 5.0
)
