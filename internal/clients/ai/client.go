// Package ai calls an OpenAI-compatible chat-completion API to generate
// seed content. It is one tier of the content resolution chain; every error
// surfaces to the resolver, which falls back to the next tier.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/modonty1-rgb/modonty-sub003/pkg/content"
	"github.com/modonty1-rgb/modonty-sub003/pkg/httpclient"
	"github.com/modonty1-rgb/modonty-sub003/pkg/tracing"
)

// Config holds the AI collaborator settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client is the AI text-generation collaborator.
type Client struct {
	http   *httpclient.Client
	cfg    Config
	logger ectologger.Logger
}

// NewClient creates the AI client with its own request timeout.
func NewClient(cfg Config, logger ectologger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("AI source enabled but AI_API_KEY is not set")
	}

	httpCfg := httpclient.DefaultConfig()
	if cfg.Timeout > 0 {
		httpCfg.Timeout = cfg.Timeout
	}

	return &Client{
		http:   httpclient.NewClient(httpCfg, logger),
		cfg:    cfg,
		logger: logger,
	}, nil
}

func (c *Client) Name() string { return "ai" }

// Supports reports true for every content type: the AI tier sits above the
// static bank for all of them.
func (c *Client) Supports(content.Type) bool { return true }

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Resolve generates the requested content via one chat completion call.
func (c *Client) Resolve(ctx context.Context, req content.Request) (*content.Result, error) {
	ctx, span := tracing.StartSpan(ctx, "ai.Client.Resolve")
	defer span.End()

	prompt := buildPrompt(req)

	resp, err := c.http.PostJSON(ctx, c.cfg.BaseURL+"/chat/completions", chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You generate realistic seed content for a content management system. Reply with plain text or a JSON array of strings, nothing else."},
			{Role: "user", Content: prompt},
		},
	}, map[string]string{
		"Authorization": "Bearer " + c.cfg.APIKey,
	})
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("ai request failed with status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := resp.DecodeJSON(&parsed); err != nil {
		return nil, err
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("ai response contained no choices")
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return nil, fmt.Errorf("ai response was empty")
	}

	items, err := parseItems(req, text)
	if err != nil {
		return nil, err
	}

	return &content.Result{Items: items}, nil
}

func buildPrompt(req content.Request) string {
	lang := req.Language
	if lang == "" {
		lang = "en"
	}

	var sb strings.Builder
	switch req.Type {
	case content.TypeIndustryDescription:
		fmt.Fprintf(&sb, "Write a two-sentence description of the %q industry for a business directory.", req.Topic)
	case content.TypeCategoryVocabulary:
		fmt.Fprintf(&sb, "List %d blog category names as a JSON array of strings.", req.Count)
	case content.TypeTagVocabulary:
		fmt.Fprintf(&sb, "List %d content tags as a JSON array of strings.", req.Count)
	case content.TypeArticleTitles:
		fmt.Fprintf(&sb, "Write %d engaging article headlines as a JSON array of strings.", req.Count)
	case content.TypeArticleBody:
		fmt.Fprintf(&sb, "Write a %s-length article body titled %q.", req.Length, req.Topic)
	case content.TypeFAQTemplates:
		fmt.Fprintf(&sb, "Write %d FAQ entries about %q as a JSON array of objects with \"question\" and \"answer\" fields.", req.Count, req.Topic)
	}
	fmt.Fprintf(&sb, " Language: %s.", lang)
	if req.Brief != "" {
		fmt.Fprintf(&sb, " Focus on this domain: %s.", req.Brief)
	}
	return sb.String()
}

func parseItems(req content.Request, text string) ([]content.Item, error) {
	switch req.Type {
	case content.TypeArticleBody, content.TypeIndustryDescription:
		return []content.Item{{Text: text}}, nil

	case content.TypeFAQTemplates:
		var entries []struct {
			Question string `json:"question"`
			Answer   string `json:"answer"`
		}
		if err := json.Unmarshal([]byte(text), &entries); err != nil {
			return nil, fmt.Errorf("malformed faq response: %w", err)
		}
		items := make([]content.Item, 0, len(entries))
		for _, e := range entries {
			if e.Question == "" || e.Answer == "" {
				continue
			}
			items = append(items, content.Item{Text: e.Question, Answer: e.Answer})
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("faq response contained no usable entries")
		}
		return items, nil

	default:
		var list []string
		if err := json.Unmarshal([]byte(text), &list); err != nil {
			return nil, fmt.Errorf("malformed list response: %w", err)
		}
		items := make([]content.Item, 0, len(list))
		for _, entry := range list {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			items = append(items, content.Item{Text: entry})
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("list response contained no usable entries")
		}
		return items, nil
	}
}
