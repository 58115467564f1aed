package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID         int64             `json:"id"`
	CustomerID uuid.UUID         `json:"customer_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes,omitempty"`
	CreatedOn  time.Time         `json:"created_on"`
}
