package models

import "time"

// Classification labels produced by the ingestion pipeline.
const (
	ClassificationHealthy   = "Healthy"
	ClassificationUnhealthy = "Unhealthy"
)

// Classification is a stored plant observation: an image reference plus the
// health label assigned by the external ingestion pipeline. This backend only
// ever reads these rows.
type Classification struct {
	ID             string    `json:"id"`
	ImageURL       string    `json:"image_url"`
	Classification string    `json:"classification"`
	Location       *string   `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
}

// Summary aggregates classification counts for the dashboard.
type Summary struct {
	Total     int `json:"total"`
	Healthy   int `json:"healthy"`
	Unhealthy int `json:"unhealthy"`
}

// RecentUpload is the projection returned by the recent-uploads endpoint.
type RecentUpload struct {
	ImageURL       string    `json:"image_url"`
	Classification string    `json:"classification"`
	CreatedAt      time.Time `json:"created_at"`
}
