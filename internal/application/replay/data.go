// Package replay records the raw input stream frame by frame and plays it
// back as an input.Source.
package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/pongkit/internal/application/input"
)

// FormatVersion is written into every recording.
const FormatVersion = "2.0"

// FrameEvents holds the events polled during one frame. Frames without
// events are not stored.
type FrameEvents struct {
	F      int           `json:"f"` // Frame number
	Events []input.Event `json:"events"`
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string        `json:"version"`
	Seed      int64         `json:"seed"`
	StartTime string        `json:"startTime"`
	FixedStep float64       `json:"fixedStep"` // seconds per frame
	Length    int           `json:"length"`    // total recorded frames
	Frames    []FrameEvents `json:"frames"`
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// Save writes data to filename as indented JSON.
func (d *ReplayData) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(d); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return file.Close()
}
