package models

// DataPoint is a single simulated sensor reading.
type DataPoint struct {
	Timestamp int64 `json:"timestamp"` // Unix timestamp in milliseconds
	Value     int   `json:"value"`
	Metric2   int   `json:"metric2"`
	Metric3   int   `json:"metric3"`
}
