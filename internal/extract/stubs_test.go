package extract

import (
	"context"

	"github.com/dealdesk/loi-parser/pkg/anthropic"
)

// stubClient returns canned responses in order and records requests.
type stubClient struct {
	responses []string
	err       error
	calls     []anthropic.MessageRequest
}

func (s *stubClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return nil, s.err
	}
	text := ""
	if len(s.responses) > 0 {
		text = s.responses[0]
		s.responses = s.responses[1:]
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
		Usage:   anthropic.TokenUsage{InputTokens: 1200, OutputTokens: 600},
	}, nil
}
