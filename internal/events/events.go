package events

import (
	"encoding/json"
	"time"

	"hiresignal-engine/internal/domain"
)

type Event struct {
	Type string          `json:"type"`
	At   time.Time       `json:"at"`
	Data json.RawMessage `json:"data,omitempty"`
}

func New(typ string, data any) Event {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	return Event{
		Type: typ,
		At:   time.Now().UTC(),
		Data: raw,
	}
}

// JSON renders the event as a single SSE-safe line.
func (e Event) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// SignalFound is emitted for every company whose signal tier qualifies, so
// downstream alerting can react without polling.
type SignalFound struct {
	Company string                `json:"company"`
	Domain  domain.ResolvedDomain `json:"domain"`
	Signal  domain.HiringSignal   `json:"signal"`
}
