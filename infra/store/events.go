// Package store persists verified webhook event IDs so redelivered events
// are acknowledged without being reprocessed.
package store

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// EventStore is a SQLite-backed idempotency log of verified webhook events.
type EventStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewEventStore opens (or creates) the event database at dbPath.
func NewEventStore(dbPath string) (*EventStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// WAL keeps concurrent webhook deliveries from serializing on the writer.
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_timeout=20000", dbPath)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	store := &EventStore{db: db, path: dbPath}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *EventStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS webhook_events (
		event_id TEXT PRIMARY KEY,
		event_type TEXT NOT NULL,
		received_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_webhook_events_type ON webhook_events(event_type);
	`
	_, err := s.db.Exec(query)
	return err
}

// retryOperation executes a database operation with retry logic for SQLITE_BUSY errors
func (s *EventStore) retryOperation(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		if strings.Contains(err.Error(), "SQLITE_BUSY") || strings.Contains(err.Error(), "database is locked") {
			lastErr = err
			if attempt < maxRetries {
				backoff := time.Duration(10*(1<<attempt)) * time.Millisecond
				log.Printf("SQLite busy, retrying in %v (attempt %d/%d)", backoff, attempt+1, maxRetries+1)
				time.Sleep(backoff)
				continue
			}
		} else {
			return err
		}
	}

	return fmt.Errorf("operation failed after %d retries, last error: %w", maxRetries+1, lastErr)
}

// MarkProcessed records a verified event. It returns false when the event ID
// was already recorded, meaning the delivery is a duplicate.
func (s *EventStore) MarkProcessed(eventID, eventType string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstSeen bool
	err := s.retryOperation(func() error {
		result, err := s.db.Exec(
			"INSERT OR IGNORE INTO webhook_events (event_id, event_type) VALUES (?, ?)",
			eventID, eventType,
		)
		if err != nil {
			return fmt.Errorf("failed to record event: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		firstSeen = affected > 0
		return nil
	}, 3)

	return firstSeen, err
}

// CleanupBefore removes events received before the cutoff.
func (s *EventStore) CleanupBefore(cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	err := s.retryOperation(func() error {
		result, err := s.db.Exec("DELETE FROM webhook_events WHERE received_at < ?", cutoff.UTC())
		if err != nil {
			return fmt.Errorf("failed to cleanup events: %w", err)
		}
		removed, err = result.RowsAffected()
		return err
	}, 3)

	return removed, err
}

// Count returns the number of recorded events.
func (s *EventStore) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM webhook_events").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

// Close closes the database connection.
func (s *EventStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
