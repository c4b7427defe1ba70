package domain

import "time"

// HistoryEntry holds one normalized response. Entries are never edited or removed.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	Text      string    `json:"text"`
	Redo      bool      `json:"redo"`
	CreatedAt time.Time `json:"created_at"`
}
