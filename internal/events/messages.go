package events

import (
	"encoding/json"
	"time"
)

// Operation names for record change events.
const (
	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
)

// List names matching the document's three record lists.
const (
	ListRevenues       = "revenues"
	ListExpenses       = "expenses"
	ListFutureExpenses = "futureExpenses"
)

// RecordChange is a lightweight change-feed message. It carries ids
// only; consumers fetch whatever state they need from the store.
type RecordChange struct {
	Op        string    `json:"op"`
	List      string    `json:"list"`
	RecordID  string    `json:"recordId"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordChange builds a message stamped with the current time.
func NewRecordChange(op, list, recordID, userID string) *RecordChange {
	return &RecordChange{
		Op:        op,
		List:      list,
		RecordID:  recordID,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *RecordChange) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordChangeFromJSON parses a message from JSON bytes.
func RecordChangeFromJSON(data []byte) (*RecordChange, error) {
	var msg RecordChange
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
