// Package model defines the data structures used throughout the application.
package model

import "time"

// Project statuses.
const (
	StatusCompleted  = "completed"
	StatusInProgress = "progress"
)

// Project is a portfolio project shown on the projects page.
//
// Tech and Screenshots are stored in the database as comma-joined text and
// converted to slices by the codec package. An empty stored value always
// decodes to an empty slice, never nil, so JSON responses render [] and not
// null.
type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Tech        []string  `json:"tech"`
	Progress    string    `json:"progress"` // display string, e.g. "70%"
	Screenshots []string  `json:"screenshots"`
	DemoLink    string    `json:"demo_link"`
	GithubLink  string    `json:"github_link"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
