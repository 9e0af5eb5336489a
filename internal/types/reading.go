package types

import (
	"time"

	"github.com/google/uuid"
)

// Status is the binary health flag attached to every reading.
type Status string

const (
	StatusOK       Status = "OK"
	StatusCritical Status = "CRITICAL"
)

// Reading is a single timestamped pump/compressor sensor record, containing
// human-readable values for the commonly-reported process metrics plus the
// derived efficiency, status, and explanation fields.  New sensor sources
// should populate the raw fields and leave derivation to the classifier.
type Reading struct {
	Timestamp      time.Time `json:"timestamp"`
	InletPressure  float64   `json:"inlet_pressure"`
	OutletPressure float64   `json:"outlet_pressure"`
	InletTemp      float64   `json:"inlet_temp"`
	OutletTemp     float64   `json:"outlet_temp"`
	FlowRate       float64   `json:"flow_rate"`
	Power          float64   `json:"power"`
	Efficiency     float64   `json:"efficiency"`
	Status         Status    `json:"status"`
	Explanation    string    `json:"explanation"`
}

// Dataset is an ordered sequence of readings, most-recent-first, matching
// generation order.  A dataset is immutable once generated; refreshing the
// data means generating a whole new Dataset and swapping the pointer.
type Dataset struct {
	ID          uuid.UUID `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Readings    []Reading `json:"readings"`
}

// Latest returns the most recent reading (the first row) and false when the
// dataset is empty.
func (d *Dataset) Latest() (Reading, bool) {
	if len(d.Readings) == 0 {
		return Reading{}, false
	}
	return d.Readings[0], true
}

// Head returns up to n readings from the top of the dataset.
func (d *Dataset) Head(n int) []Reading {
	if n > len(d.Readings) {
		n = len(d.Readings)
	}
	if n < 0 {
		n = 0
	}
	return d.Readings[:n]
}

// Tail returns up to n readings from the bottom of the dataset.
func (d *Dataset) Tail(n int) []Reading {
	if n > len(d.Readings) {
		n = len(d.Readings)
	}
	if n < 0 {
		n = 0
	}
	return d.Readings[len(d.Readings)-n:]
}

// CriticalCount returns the number of readings flagged CRITICAL.
func (d *Dataset) CriticalCount() int {
	count := 0
	for _, r := range d.Readings {
		if r.Status == StatusCritical {
			count++
		}
	}
	return count
}

// LowEfficiencyCount returns the number of readings with efficiency below 0.5.
func (d *Dataset) LowEfficiencyCount() int {
	count := 0
	for _, r := range d.Readings {
		if r.Efficiency < 0.5 {
			count++
		}
	}
	return count
}

// HighEfficiencyCount returns the number of readings with efficiency above 2.0.
func (d *Dataset) HighEfficiencyCount() int {
	count := 0
	for _, r := range d.Readings {
		if r.Efficiency > 2.0 {
			count++
		}
	}
	return count
}
