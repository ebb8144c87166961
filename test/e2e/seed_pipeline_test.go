package e2e

import (
	"context"
	"testing"
	"time"
)

// These tests exercise a running seeder API end to end. They require the
// service (and its Postgres) to be up; run with docker-compose and without
// -short. The Kafka assertion additionally needs the progress fanout enabled.

func TestSeedClientsOnlyRun(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	cfg := DefaultConfig()
	RequireService(t, cfg.APIBaseURL)

	client := NewHTTPClient(cfg.APIBaseURL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var summary struct {
		RunID   string `json:"run_id"`
		Phase   string `json:"phase"`
		Clients int    `json:"clients"`
		Articles struct {
			Total int `json:"total"`
		} `json:"articles"`
	}
	status, err := client.PostJSON(ctx, "/api/v1/seed", map[string]any{
		"total":        10,
		"client_count": 3,
		"phase":        "clients-only",
		"reset":        true,
	}, &summary)
	if err != nil {
		t.Fatalf("seed request failed: %v", err)
	}
	if status != 200 {
		t.Fatalf("expected status 200, got %d", status)
	}

	if summary.RunID == "" {
		t.Error("expected a run_id in the summary")
	}
	if summary.Phase != "clients-only" {
		t.Errorf("expected phase clients-only, got %q", summary.Phase)
	}
	if summary.Clients != 3 {
		t.Errorf("expected 3 clients, got %d", summary.Clients)
	}
	if summary.Articles.Total != 0 {
		t.Errorf("clients-only run should create no articles, got %d", summary.Articles.Total)
	}
}

func TestSeedFullRunStreamsProgress(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	cfg := DefaultConfig()
	RequireService(t, cfg.APIBaseURL)

	client := NewHTTPClient(cfg.APIBaseURL)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	streamed, err := client.StreamSeed(ctx, "total=10&phase=full&reset=true")
	if err != nil {
		t.Fatalf("streaming seed run failed: %v", err)
	}
	if len(streamed) < 2 {
		t.Fatalf("expected multiple progress events, got %d", len(streamed))
	}

	last := streamed[len(streamed)-1]
	if !last.Done {
		t.Error("expected the final event to carry the done sentinel")
	}
	if last.Level == "error" {
		t.Errorf("run finished with an error: %s", last.Message)
	}
	if len(last.Data) == 0 {
		t.Error("expected the sentinel event to carry the summary")
	}

	var sawStep bool
	for _, event := range streamed[:len(streamed)-1] {
		if event.Step != "" {
			sawStep = true
		}
		if event.Done {
			t.Error("only the final event should carry the done sentinel")
		}
	}
	if !sawStep {
		t.Error("expected at least one step-scoped progress event")
	}
}

func TestSeedValidationRejectsBadOptions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	cfg := DefaultConfig()
	RequireService(t, cfg.APIBaseURL)

	client := NewHTTPClient(cfg.APIBaseURL)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	status, err := client.PostJSON(ctx, "/api/v1/seed", map[string]any{
		"total": 10,
		"phase": "everything",
	}, nil)
	if err != nil {
		t.Fatalf("seed request failed: %v", err)
	}
	if status != 400 {
		t.Errorf("expected status 400 for an unknown phase, got %d", status)
	}
}

func TestSeedProgressFansOutToKafka(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	if DefaultConfig().KafkaBrokers[0] == "" {
		t.Skip("no kafka brokers configured")
	}

	cfg := DefaultConfig()
	RequireService(t, cfg.APIBaseURL)

	client := NewHTTPClient(cfg.APIBaseURL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	status, err := client.PostJSON(ctx, "/api/v1/seed", map[string]any{
		"total":        5,
		"client_count": 2,
		"phase":        "clients-only",
		"reset":        true,
	}, nil)
	if err != nil {
		t.Fatalf("seed request failed: %v", err)
	}
	if status != 200 {
		t.Fatalf("expected status 200, got %d", status)
	}

	consumeCtx, consumeCancel := context.WithTimeout(ctx, 30*time.Second)
	defer consumeCancel()

	messages, err := NewKafkaHelper(cfg.KafkaBrokers, cfg.ProgressTopic).ConsumeProgress(consumeCtx, start, 1)
	if err != nil && len(messages) == 0 {
		t.Skipf("could not consume progress topic (fanout likely disabled): %v", err)
	}
	if len(messages) == 0 {
		t.Fatal("expected at least one progress message on the fanout topic")
	}
	if _, ok := messages[0]["message"]; !ok {
		t.Errorf("progress message missing message field: %v", messages[0])
	}
}
