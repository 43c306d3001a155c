package domain

import (
	"time"

	"github.com/google/uuid"
)

const DefaultLinkCategory = "General"

type Link struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string    `json:"title" gorm:"not null;size:120"`
	URL         string    `json:"url" gorm:"not null"`
	Icon        string    `json:"icon"`
	Description string    `json:"description" gorm:"size:500"`
	Category    string    `json:"category" gorm:"index:idx_links_category_order,priority:1;default:'General'"`
	Order       int       `json:"order" gorm:"column:sort_order;index:idx_links_category_order,priority:2;default:0"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
