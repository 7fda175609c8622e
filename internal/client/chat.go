package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

var errQtyRequired = errors.New("cart entries only accept quantity changes")

// ChatClient talks to the assistant and contact endpoints
type ChatClient struct {
	http *HTTPClient
}

// NewChatClient creates a ChatClient over c
func NewChatClient(c *HTTPClient) *ChatClient {
	return &ChatClient{http: c}
}

// Send posts message to the assistant. When the server reports a model
// failure its apology reply is returned together with the ErrServer.
func (c *ChatClient) Send(ctx context.Context, message string) (string, error) {
	body := struct {
		Message string `json:"message"`
	}{Message: message}

	var resp struct {
		Reply string `json:"reply"`
	}
	err := c.http.doJSON(ctx, http.MethodPost, "/api/chat", "", body, &resp)

	var serr ErrServer
	if errors.As(err, &serr) && serr.Status == http.StatusInternalServerError {
		var failure struct {
			Reply string `json:"reply"`
		}
		if json.Unmarshal([]byte(serr.Message), &failure) == nil && failure.Reply != "" {
			return failure.Reply, err
		}
		return strings.TrimSpace(serr.Message), err
	}
	if err != nil {
		return "", err
	}
	return resp.Reply, nil
}

// ContactMessage is the body of the contact form
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Contact submits the contact form and returns the server's confirmation
func (c *ChatClient) Contact(ctx context.Context, msg ContactMessage) (string, error) {
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := c.http.doJSON(ctx, http.MethodPost, "/api/contact", "", msg, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
