package study

import "time"

// Dataset is a registered inflammation data file and the shape it had when added.
type Dataset struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Patients    int       `json:"patients"`
	Days        int       `json:"days"`
	AddedAt     time.Time `json:"added_at"`
	Reports     []string  `json:"reports,omitempty"`
}
