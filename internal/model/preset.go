package model

import "time"

// Preset is a named set of chat parameters saved locally.
type Preset struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Values    map[string]any `json:"values"`
	UpdatedAt time.Time      `json:"updated_at"`
}
