// Package snapshot mirrors user documents to JSON files on disk. The
// worker feeds it record-change messages; each change rewrites the
// owning user's snapshot from the current store state.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/core"
	"fintrack/internal/events"
	"fintrack/internal/kv"
	"fintrack/internal/session"
)

type Writer struct {
	dir   string
	store kv.Store
}

func NewWriter(dir string, store kv.Store) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}
	return &Writer{dir: dir, store: store}, nil
}

// HandleChange refreshes the snapshot for the user named in the
// message. A missing document (user cleared their data) removes the
// snapshot file.
func (w *Writer) HandleChange(ctx context.Context, msg *events.RecordChange) error {
	raw, ok, err := w.store.Get(ctx, session.DocumentKey(msg.UserID))
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	path := w.path(msg.UserID)
	if !ok {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove stale snapshot: %w", err)
		}
		return nil
	}

	// Re-encode through the domain type so a snapshot is always a
	// well-formed document, never a copy of corrupt store bytes.
	var doc core.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	out, err := json.MarshalIndent(doc.Normalize(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, out, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	slog.InfoContext(ctx, "snapshot written",
		"user_id", msg.UserID,
		"op", msg.Op,
		"list", msg.List,
		"path", path)
	return nil
}

func (w *Writer) path(userID string) string {
	return filepath.Join(w.dir, userID+".json")
}
