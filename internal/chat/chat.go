// Package chat answers assistant messages through a generative model.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
)

// Replies surfaced to users when the model cannot answer.
const (
	MissingKeyReply = "Configuration Error: API Key is missing. Set GEMINI_API_KEY to enable the assistant."
	EmptyReply      = "I received an empty response from the AI."
	FailureReply    = "Sorry, I'm having trouble connecting to the brain. Please try again later."
)

// ErrEmptyMessage is returned for blank user messages.
var ErrEmptyMessage = errors.New("message is required")

// Responder produces the model's answer to a single user message.
type Responder interface {
	Respond(ctx context.Context, message string) (string, error)
}

// Service turns responder results into user-facing replies.
type Service struct {
	// Responder is nil when no API key is configured.
	Responder Responder
}

// NewService wraps r. A nil r yields configuration-error replies.
func NewService(r Responder) *Service {
	return &Service{Responder: r}
}

// Enabled reports whether a model is configured.
func (s *Service) Enabled() bool { return s.Responder != nil }

// Reply answers message. On model failure it returns FailureReply together
// with the error so callers can pick the status code.
func (s *Service) Reply(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	if s.Responder == nil {
		return MissingKeyReply, nil
	}

	text, err := s.Responder.Respond(ctx, message)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("assistant request failed")
		return FailureReply, err
	}
	if strings.TrimSpace(text) == "" {
		return EmptyReply, nil
	}
	return text, nil
}
