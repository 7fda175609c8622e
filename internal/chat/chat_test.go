package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResponder struct {
	text string
	err  error
	got  string
}

func (s *stubResponder) Respond(_ context.Context, message string) (string, error) {
	s.got = message
	return s.text, s.err
}

func TestService_Reply(t *testing.T) {
	tests := []struct {
		name      string
		responder Responder
		message   string
		want      string
		wantErr   bool
	}{
		{name: "no key", responder: nil, message: "hi", want: MissingKeyReply},
		{name: "answer", responder: &stubResponder{text: "hello there"}, message: "hi", want: "hello there"},
		{name: "empty answer", responder: &stubResponder{text: "  "}, message: "hi", want: EmptyReply},
		{name: "failure", responder: &stubResponder{err: errors.New("503")}, message: "hi", want: FailureReply, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.responder)

			got, err := svc.Reply(context.Background(), tt.message)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_ReplyForwardsMessage(t *testing.T) {
	stub := &stubResponder{text: "ok"}

	_, err := NewService(stub).Reply(context.Background(), "What is Go?")
	require.NoError(t, err)
	assert.Equal(t, "What is Go?", stub.got)
}

func TestService_ReplyBlank(t *testing.T) {
	_, err := NewService(&stubResponder{}).Reply(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestNewGeminiResponder_RequiresKey(t *testing.T) {
	_, err := NewGeminiResponder(context.Background(), "", "")
	assert.Error(t, err)
}
