package domain

import (
	"strconv"
	"time"
)

// NotAvailable is shown for any statistic the backend did not deliver.
const NotAvailable = "N/A"

type StatCard struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type StatsView struct {
	Panel      string     `json:"panel"`
	Cards      []StatCard `json:"cards"`
	State      PanelState `json:"state"`
	Notice     *Notice    `json:"notice,omitempty"`
	RenderedAt time.Time  `json:"renderedAt"`
}

// StatField names one backend field and how to print it.
type StatField struct {
	Key    string
	Label  string
	Format StatFormat
}

type StatFormat int

const (
	FormatCount StatFormat = iota
	FormatPercent
	FormatCurrency
)

// FormatStat prints v per format. Currency uses the resort's LKR prefix.
func FormatStat(v float64, format StatFormat) string {
	switch format {
	case FormatPercent:
		return strconv.FormatFloat(v, 'f', 1, 64) + "%"
	case FormatCurrency:
		return "LKR " + strconv.FormatFloat(v, 'f', 2, 64)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}
