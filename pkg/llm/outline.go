package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 60 * time.Second

	// Source material beyond this is cut before prompting.
	maxPromptTextLen = 180000
)

const systemPrompt = "You are an instructional design assistant for Legacy Learning Consulting. " +
	"Write behavioral, observable program outcomes using strong action verbs. " +
	"Do NOT start outcomes with 'By the end' or 'Learners will be able to'. " +
	"Assume the UI shows the header: 'At the end of this learning program, learners will be able to:'. " +
	"Then propose high-level module titles seeded from the outcomes/topics; avoid duplicates and fluff."

// OutlineInput carries the free text and bounds for a draft request.
type OutlineInput struct {
	Client        string
	Scope         string
	Text          string
	MaxOutcomes   int
	TargetModules int
}

// OutlineSuggestion is the structured draft returned by the provider.
type OutlineSuggestion struct {
	Outcomes []string `json:"outcomes"`
	Modules  []string `json:"modules"`
	Notes    string   `json:"notes"`
}

// UpstreamError reports a non-success provider response, preserving the
// raw body for diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("outline provider returned status %d: %s", e.StatusCode, e.Body)
}

// OutlineClient drafts program outlines through an OpenAI-compatible
// structured-output endpoint.
type OutlineClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOutlineClient constructs the client. The API key is required.
func NewOutlineClient(apiKey, model, baseURL string, timeout time.Duration) (*OutlineClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("outline provider API key missing")
	}
	if model == "" {
		model = defaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &OutlineClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type jsonSchema struct {
	Name   string                 `json:"name"`
	Strict bool                   `json:"strict"`
	Schema map[string]interface{} `json:"schema"`
}

type responseFormat struct {
	Type       string     `json:"type"`
	JSONSchema jsonSchema `json:"json_schema"`
}

type outlineRequest struct {
	Model          string         `json:"model"`
	Input          []message      `json:"input"`
	ResponseFormat responseFormat `json:"response_format"`
}

type outlineResponse struct {
	OutputText string `json:"output_text"`
	Output     []struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Draft requests an outline suggestion for the given input.
func (c *OutlineClient) Draft(ctx context.Context, input OutlineInput) (*OutlineSuggestion, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.client.Timeout)
		defer cancel()
	}

	reqBody := outlineRequest{
		Model: c.model,
		Input: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(input)},
		},
		ResponseFormat: responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchema{
				Name:   "legacy_outline",
				Strict: true,
				Schema: map[string]interface{}{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]interface{}{
						"outcomes": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
						"modules":  map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
						"notes":    map[string]interface{}{"type": "string"},
					},
					"required": []string{"outcomes", "modules", "notes"},
				},
			},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal outline request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build outline request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("outline request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read outline response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var parsed outlineResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode outline response: %w", err)
	}
	if parsed.Error != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: parsed.Error.Message}
	}

	block := extractBlock(parsed)
	if block == "" {
		return nil, fmt.Errorf("outline response contained no text output")
	}

	var suggestion OutlineSuggestion
	if err := json.Unmarshal([]byte(block), &suggestion); err != nil {
		return nil, fmt.Errorf("decode outline suggestion: %w", err)
	}
	if suggestion.Outcomes == nil {
		suggestion.Outcomes = []string{}
	}
	if suggestion.Modules == nil {
		suggestion.Modules = []string{}
	}
	return &suggestion, nil
}

func buildUserPrompt(input OutlineInput) string {
	client := input.Client
	if client == "" {
		client = "TBD"
	}
	scope := input.Scope
	if scope == "" {
		scope = "TBD"
	}
	text := input.Text
	if len(text) > maxPromptTextLen {
		cut := maxPromptTextLen
		// Back off to a rune boundary so the cut never splits a
		// multi-byte character.
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Client: %s\n", client)
	fmt.Fprintf(&b, "Scope: %s\n\n", scope)
	fmt.Fprintf(&b, "From the following materials, produce up to %d outcomes and %d module titles.\n\n", input.MaxOutcomes, input.TargetModules)
	b.WriteString("TEXT:\n")
	b.WriteString(text)
	return b.String()
}

func extractBlock(resp outlineResponse) string {
	if resp.OutputText != "" {
		return resp.OutputText
	}
	for _, out := range resp.Output {
		for _, content := range out.Content {
			if content.Text != "" {
				return content.Text
			}
		}
	}
	return ""
}
