package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

// DispatchLog represents one dispatched request, matched or fallback.
type DispatchLog struct {
	Timestamp        time.Time `json:"timestamp"`
	RequestID        string    `json:"request_id"`
	Method           string    `json:"method"`
	Path             string    `json:"path"`
	StatusCode       int       `json:"status_code"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	ClientIP         string    `json:"client_ip,omitempty"`
	UserAgent        string    `json:"user_agent,omitempty"`
	Error            string    `json:"error,omitempty"`
}

// Logger handles OpenSearch logging operations
type Logger struct {
	client *Client
}

// NewLogger creates a new OpenSearch logger
func NewLogger(client *Client) *Logger {
	return &Logger{
		client: client,
	}
}

// LogDispatch indexes a dispatch log document.
func (l *Logger) LogDispatch(ctx context.Context, entry DispatchLog) error {
	if !l.client.IsEnabled() {
		return nil // Logging disabled
	}

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.RequestID == "" {
		entry.RequestID = uuid.New().String()
	}

	return l.index(ctx, dispatchIndex, entry)
}

// LogEntry indexes an arbitrary system log document. It satisfies the
// logger.Sink interface.
func (l *Logger) LogEntry(ctx context.Context, entry any) error {
	if !l.client.IsEnabled() {
		return nil
	}
	return l.index(ctx, systemIndex, entry)
}

func (l *Logger) index(ctx context.Context, indexName string, doc any) error {
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal log: %w", err)
	}

	req := opensearchapi.IndexRequest{
		Index: indexName,
		Body:  bytes.NewReader(docJSON),
	}

	res, err := req.Do(ctx, l.client.GetClient())
	if err != nil {
		return fmt.Errorf("failed to index log: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("opensearch error: %s", res.String())
	}

	return nil
}
