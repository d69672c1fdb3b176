package shopapi

import (
	"encoding/json"
	"time"

	"github.com/pankaj1920/shop/internal/model"
)

// Alert is the user-facing message attached to every response.
type Alert struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// envelope is the generic response wrapper used by every endpoint.
type envelope struct {
	Result json.RawMessage `json:"result"`
	Status bool            `json:"status"`
	Alert  *Alert          `json:"alert,omitempty"`
}

type commentUser struct {
	FetchName string `json:"fetchName"`
}

// commentDTO is a comment as returned by GET /comment.
type commentDTO struct {
	ID        string      `json:"id"`
	ProductID int         `json:"product_id"`
	User      commentUser `json:"user"`
	Comment   string      `json:"comment"`
	Rate      float64     `json:"rate"`
	CreateAt  string      `json:"create_at"`
}

func (d commentDTO) toModel() model.Comment {
	c := model.Comment{
		ID:        d.ID,
		ProductID: d.ProductID,
		User:      d.User.FetchName,
		Comment:   d.Comment,
		Rate:      d.Rate,
	}
	if t, err := time.Parse(time.RFC3339, d.CreateAt); err == nil {
		c.CreatedAt = t
	}
	return c
}

type addCommentRequest struct {
	ProductID int     `json:"product_id"`
	Rate      float64 `json:"rate"`
	Comment   string  `json:"comment"`
}

// basketDTO is a basket line as returned by GET /basket.
type basketDTO struct {
	ID        string  `json:"id"`
	ProductID int     `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Count     int     `json:"count"`
}

func (d basketDTO) toModel() model.BasketItem {
	return model.BasketItem{
		ID:        d.ID,
		ProductID: d.ProductID,
		Title:     d.Title,
		Price:     d.Price,
		Count:     d.Count,
	}
}

type addToBasketRequest struct {
	ProductID int `json:"product_id"`
	Count     int `json:"count"`
}

type buyRequest struct {
	ShippingType int `json:"shipping_type"`
}
