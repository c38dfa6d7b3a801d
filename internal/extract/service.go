// Package extract turns call transcripts into validated LOI records via the
// Anthropic Messages API, with optional per-field confidence metadata.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/dealdesk/loi-parser/internal/config"
	"github.com/dealdesk/loi-parser/internal/model"
	"github.com/dealdesk/loi-parser/pkg/anthropic"
)

// extractionTemperature keeps the completion near-deterministic.
const extractionTemperature = 0.1

// Service extracts LOI fields from transcripts using an LLM collaborator.
type Service struct {
	client anthropic.Client
	cfg    config.AnthropicConfig
}

// NewService creates an extraction service from an explicitly constructed
// client and configuration.
func NewService(client anthropic.Client, cfg config.AnthropicConfig) *Service {
	return &Service{client: client, cfg: cfg}
}

func (s *Service) complete(ctx context.Context, system, user string) (*anthropic.MessageResponse, error) {
	temp := extractionTemperature
	return s.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       s.cfg.Model,
		MaxTokens:   s.cfg.MaxTokens,
		System:      system,
		Temperature: &temp,
		ForceJSON:   true,
		Messages: []anthropic.Message{
			{Role: "user", Content: user},
		},
	})
}

// Extract parses a transcript into a validated LOIFields without confidence
// metadata.
func (s *Service) Extract(ctx context.Context, transcript string) (*model.LOIFields, error) {
	resp, err := s.complete(ctx, extractionSystemPrompt,
		"Extract LOI terms from this transcript:\n\n"+transcript)
	if err != nil {
		return nil, classifyCollaborator("llm", err)
	}
	resp.Usage.LogCost(s.cfg.Model, "extract")

	fields, err := model.ParseLOIFields([]byte(cleanJSON(resp.Text())))
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			return nil, &SchemaError{Err: verr}
		}
		return nil, &MalformedResponseError{Err: err}
	}
	return fields, nil
}

// envelope is the two-key response shape required by the confidence prompt.
type envelope struct {
	LOIData          json.RawMessage   `json:"loi_data"`
	FieldConfidences model.Confidences `json:"field_confidences"`
}

// ExtractWithConfidence parses a transcript into a validated LOIFields plus
// a per-field confidence map and the derived low-confidence field list.
func (s *Service) ExtractWithConfidence(ctx context.Context, transcript string) (*model.LOIFieldsWithConfidence, error) {
	resp, err := s.complete(ctx, confidenceSystemPrompt,
		"Extract LOI terms WITH CONFIDENCE SCORES from this transcript:\n\n"+transcript)
	if err != nil {
		return nil, classifyCollaborator("llm", err)
	}
	resp.Usage.LogCost(s.cfg.Model, "extract_with_confidence")

	cleaned := cleanJSON(resp.Text())

	var env envelope
	if err := json.Unmarshal([]byte(cleaned), &env); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	payload := env.LOIData
	confidences := env.FieldConfidences
	if payload == nil {
		// Lenient fallback: some completions flatten the envelope and return
		// the LOI object directly. Treat the whole payload as loi_data with
		// no confidence metadata.
		zap.L().Warn("extract: response missing loi_data key, treating whole object as loi_data")
		payload = json.RawMessage(cleaned)
		confidences = model.Confidences{}
	}

	fields, err := model.ParseLOIFields(payload)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			zap.L().Warn("extract: llm returned incomplete loi data",
				zap.String("field", verr.Field),
				zap.String("reason", verr.Reason),
			)
			return nil, &IncompleteExtractionError{Err: verr}
		}
		return nil, &MalformedResponseError{Err: err}
	}

	result := model.NewLOIFieldsWithConfidence(*fields, confidences)
	return &result, nil
}

// cleanJSON extracts a JSON object from text that may contain markdown code
// fences or other wrapping.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	// Strip markdown code fences.
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	// Find first { and last }.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
