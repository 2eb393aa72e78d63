package domain

import (
	"errors"
	"time"
)

var ErrMalformedChart = errors.New("malformed chart payload")

// ChartView carries one series. There is no sample-data state: a chart is ready, empty or error.
type ChartView struct {
	Chart          string     `json:"chart"`
	Title          string     `json:"title"`
	Labels         []string   `json:"labels"`
	Data           []float64  `json:"data"`
	TotalRevenue   *float64   `json:"totalRevenue,omitempty"`
	AverageRevenue *float64   `json:"averageRevenue,omitempty"`
	State          PanelState `json:"state"`
	Notice         *Notice    `json:"notice,omitempty"`
	RenderedAt     time.Time  `json:"renderedAt"`
}

// ChartPayload is the {labels, data} shape the analytics endpoints return.
type ChartPayload struct {
	Labels         []string  `json:"labels"`
	Data           []float64 `json:"data"`
	TotalRevenue   *float64  `json:"totalRevenue"`
	AverageRevenue *float64  `json:"averageRevenue"`
}

// Check rejects payloads whose series cannot be drawn.
func (p ChartPayload) Check() error {
	if p.Labels == nil || p.Data == nil {
		return ErrMalformedChart
	}
	if len(p.Labels) != len(p.Data) {
		return ErrMalformedChart
	}
	return nil
}
