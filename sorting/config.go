package sorting

import (
	"encoding/json"
	"log"
)

// AppContentReader defines the interface for reading content from the
// embedded file system.
type AppContentReader interface {
	ReadFile(name string) ([]byte, error)
}

// UI constants
const (
	PanelMinWidth  float32 = 1100
	PanelMinHeight float32 = 520
	BarGap         float32 = 1
	LegendMargin   float32 = 12
	ControlsGap    float32 = 8
)

// Defaults holds the startup parameters for the visualizer: array size,
// the bounded value range and the speed slider bounds.
type Defaults struct {
	ArraySize      int `json:"array_size"`
	MinValue       int `json:"min_value"`
	MaxValue       int `json:"max_value"`
	MinDelayMs     int `json:"min_delay_ms"`
	MaxDelayMs     int `json:"max_delay_ms"`
	DefaultDelayMs int `json:"default_delay_ms"`
}

// LoadDefaults loads the startup defaults from the embedded JSON file.
func LoadDefaults(reader AppContentReader) Defaults {
	data, err := reader.ReadFile("assets/defaults.json")
	if err != nil {
		log.Fatalf("Failed to read defaults: %v", err)
	}

	var d Defaults
	if err := json.Unmarshal(data, &d); err != nil {
		log.Fatalf("Failed to unmarshal defaults: %v", err)
	}
	return d
}
