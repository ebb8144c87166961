package e2e

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

// Config holds test configuration
type Config struct {
	APIBaseURL    string
	KafkaBrokers  []string
	ProgressTopic string
}

// DefaultConfig returns default test configuration
func DefaultConfig() Config {
	cfg := Config{
		APIBaseURL:    "http://localhost:3010",
		KafkaBrokers:  []string{"localhost:9092"},
		ProgressTopic: "seed-progress",
	}
	if v := os.Getenv("E2E_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("E2E_KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = strings.Split(v, ",")
	}
	if v := os.Getenv("E2E_PROGRESS_TOPIC"); v != "" {
		cfg.ProgressTopic = v
	}
	return cfg
}

// RequireService skips the test when the API is not reachable.
func RequireService(t *testing.T, baseURL string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/healthz")
	if err != nil {
		t.Skipf("seeder API not running at %s: %v", baseURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Skipf("seeder API at %s is unhealthy (status %d)", baseURL, resp.StatusCode)
	}
}

// HTTPClient wraps calls against the seeder API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client for the given base URL. Seed runs can take
// minutes, so the timeout is generous.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Minute},
	}
}

// PostJSON posts a JSON body and decodes the JSON response into out.
func (c *HTTPClient) PostJSON(ctx context.Context, path string, body any, out any) (int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// StreamEvent is one SSE progress message from the stream endpoint.
type StreamEvent struct {
	Message   string          `json:"message"`
	Level     string          `json:"level"`
	Timestamp time.Time       `json:"timestamp"`
	Step      string          `json:"step,omitempty"`
	Done      bool            `json:"done,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// StreamSeed opens the SSE endpoint and collects events until the sentinel.
func (c *HTTPClient) StreamSeed(ctx context.Context, query string) ([]StreamEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/seed/stream?"+query, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stream endpoint returned status %d", resp.StatusCode)
	}

	var events []StreamEvent
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var event StreamEvent
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event); err != nil {
			return events, fmt.Errorf("parsing stream event: %w", err)
		}
		events = append(events, event)
		if event.Done {
			return events, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return events, err
	}
	return events, fmt.Errorf("stream ended without a sentinel event")
}

// KafkaHelper consumes the progress fanout topic.
type KafkaHelper struct {
	brokers []string
	topic   string
}

// NewKafkaHelper creates a helper over the given brokers and topic.
func NewKafkaHelper(brokers []string, topic string) *KafkaHelper {
	return &KafkaHelper{brokers: brokers, topic: topic}
}

// ConsumeProgress reads progress messages published after start, until limit
// messages or the context deadline.
func (h *KafkaHelper) ConsumeProgress(ctx context.Context, start time.Time, limit int) ([]map[string]any, error) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  h.brokers,
		Topic:    h.topic,
		GroupID:  fmt.Sprintf("e2e-%d", time.Now().UnixNano()),
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	var out []map[string]any
	for len(out) < limit {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			return out, err
		}
		if msg.Time.Before(start) {
			continue
		}
		var decoded map[string]any
		if err := json.Unmarshal(msg.Value, &decoded); err != nil {
			continue
		}
		out = append(out, decoded)
	}
	return out, nil
}
