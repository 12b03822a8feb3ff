package model

import "time"

// Work categories. CategoryName carries the display label so the category
// code stays stable while the label can be edited freely.
const (
	CategoryDesign   = "design"
	CategoryArticle  = "article"
	CategoryCreative = "creative"
)

// WorkLink is a related link attached to a work (source, article, live demo).
// The set of links is persisted as a JSON array in a single text column.
type WorkLink struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Work is an entry in the works gallery.
type Work struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	CategoryName string     `json:"category_name"`
	Thumbnail    string     `json:"thumbnail"`
	Image        string     `json:"image"`
	Description  string     `json:"description"`
	Background   string     `json:"background"`
	Links        []WorkLink `json:"links"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
