package domain

import "time"

// PanelState tells the page which of the three displays a panel is in.
type PanelState string

const (
	PanelReady PanelState = "ready"
	PanelEmpty PanelState = "empty"
	PanelError PanelState = "error"
)

// Cell is one rendered table cell. Badge, when set, renders the text as a coloured badge.
type Cell struct {
	Text  string `json:"text"`
	Badge string `json:"badge,omitempty"`
	Span  int    `json:"span,omitempty"`
}

// ActionControl is a button offered on a row.
type ActionControl struct {
	Action          string `json:"action"`
	Label           string `json:"label"`
	Target          string `json:"target"`
	Style           string `json:"style"`
	RequiresConfirm bool   `json:"requiresConfirm,omitempty"`
	ConfirmPrompt   string `json:"confirmPrompt,omitempty"`
	// Params are sent back as body fields when the button is pressed.
	Params map[string]string `json:"params,omitempty"`
}

type Row struct {
	Key     string          `json:"key"`
	Cells   []Cell          `json:"cells"`
	Actions []ActionControl `json:"actions,omitempty"`
	Empty   bool            `json:"empty,omitempty"`
}

// TableView is everything the page needs to draw one panel. It replaces the previous view whole.
type TableView struct {
	Panel      string     `json:"panel"`
	Title      string     `json:"title"`
	Columns    []string   `json:"columns"`
	Rows       []Row      `json:"rows"`
	State      PanelState `json:"state"`
	Notice     *Notice    `json:"notice,omitempty"`
	RenderedAt time.Time  `json:"renderedAt"`
}

// PlaceholderRow is the single full-width row shown for empty and error states.
func PlaceholderRow(text string, columns int) Row {
	if columns < 1 {
		columns = 1
	}
	return Row{
		Key:   "placeholder",
		Cells: []Cell{{Text: text, Span: columns}},
		Empty: true,
	}
}
