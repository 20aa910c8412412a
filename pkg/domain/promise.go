package domain

import "time"

// PromiseStatus is the tracked state of a political promise
type PromiseStatus string

// enum of promise statuses
const (
	PromiseBroken  PromiseStatus = "broken"
	PromiseUTurn   PromiseStatus = "u-turn"
	PromisePending PromiseStatus = "pending"
	PromiseKept    PromiseStatus = "kept"
)

// Valid reports whether s is a known promise status
func (s PromiseStatus) Valid() bool {
	switch s {
	case PromiseBroken, PromiseUTurn, PromisePending, PromiseKept:
		return true
	}
	return false
}

// Promise is a read-only record of a promise and its status
type Promise struct {
	ID         int64         `json:"id" db:"id"`
	Text       string        `json:"promise_text" db:"text"`
	Status     PromiseStatus `json:"status" db:"status"`
	PromisedAt *time.Time    `json:"date_promised,omitempty" db:"date_promised"`
	SourceURL  string        `json:"source_url,omitempty" db:"source_url"`
	Comment    string        `json:"mocking_comment,omitempty" db:"comment"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" db:"updated_at"`
}

// PromiseStats holds promise counts per status
type PromiseStats struct {
	Total   int `json:"total"`
	Broken  int `json:"broken_count"`
	UTurn   int `json:"uturn_count"`
	Pending int `json:"pending_count"`
	Kept    int `json:"kept_count"`
}
