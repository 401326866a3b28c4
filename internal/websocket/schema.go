package websocket

import "github.com/stemsi/unicatalog/internal/view"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionToggle Action = "toggle"
	ActionClear  Action = "clear"
	ActionPing   Action = "ping"
)

// Request is every client message; ID is only read for toggle.
type Request struct {
	Action Action `json:"action"`
	ID     int    `json:"id,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventComparePanel Event = "compare_panel"
	EventError        Event = "error"
	EventPong         Event = "pong"
)

// ComparePanelResponse carries the re-rendered comparison panel.
type ComparePanelResponse struct {
	Event Event                 `json:"event"`
	Panel view.ComparePanelView `json:"panel"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
