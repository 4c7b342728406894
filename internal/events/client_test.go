package events

import (
	"context"
	"testing"
	"time"
)

func TestNilClientIsSafe(t *testing.T) {
	var c *Client

	msg := NewRecordChange(OpCreated, ListRevenues, "r1", "u1")
	if err := c.PublishRecordChange(context.Background(), msg); err != nil {
		t.Fatalf("publish on nil client: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close on nil client: %v", err)
	}
}

func TestNewRecordChange(t *testing.T) {
	before := time.Now()
	msg := NewRecordChange(OpDeleted, ListFutureExpenses, "f1", "u1")

	if msg.Op != OpDeleted || msg.List != ListFutureExpenses {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.RecordID != "f1" || msg.UserID != "u1" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.Timestamp.Before(before) {
		t.Fatalf("timestamp not stamped: %v", msg.Timestamp)
	}
}

func TestRecordChangeJSON(t *testing.T) {
	msg := NewRecordChange(OpUpdated, ListExpenses, "e1", "u1")
	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	back, err := RecordChangeFromJSON(data)
	if err != nil {
		t.Fatalf("RecordChangeFromJSON: %v", err)
	}
	if back.Op != msg.Op || back.List != msg.List || back.RecordID != msg.RecordID || back.UserID != msg.UserID {
		t.Fatalf("round trip mismatch: %+v vs %+v", back, msg)
	}

	if _, err := RecordChangeFromJSON([]byte("not json")); err == nil {
		t.Fatal("malformed payload accepted")
	}
}
