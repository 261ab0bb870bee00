package events

import (
	"encoding/json"
	"time"
)

// Action describes what happened to a ledger account.
type Action string

const (
	ActionAppended Action = "appended"
	ActionCleared  Action = "cleared"
	ActionDeleted  Action = "deleted"
)

// EntryEvent is the audit message published after a ledger mutation.
// For cleared/deleted events Label and Amount are zero values.
type EntryEvent struct {
	Account    string    `json:"account"`
	Action     Action    `json:"action"`
	Label      string    `json:"label,omitempty"`
	Amount     int64     `json:"amount,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewAppended(account, label string, amount int64) EntryEvent {
	return EntryEvent{
		Account:    account,
		Action:     ActionAppended,
		Label:      label,
		Amount:     amount,
		OccurredAt: time.Now().UTC(),
	}
}

func NewCleared(account string) EntryEvent {
	return EntryEvent{Account: account, Action: ActionCleared, OccurredAt: time.Now().UTC()}
}

func NewDeleted(account string) EntryEvent {
	return EntryEvent{Account: account, Action: ActionDeleted, OccurredAt: time.Now().UTC()}
}

func (e EntryEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func EntryEventFromJSON(data []byte) (EntryEvent, error) {
	var ev EntryEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return EntryEvent{}, err
	}
	return ev, nil
}
