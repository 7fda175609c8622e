package httpapi

import (
	"net/http"
	"time"

	"github.com/erauner12/showcase/internal/storage"
)

// APIVersion is reported by GET /api/info
const APIVersion = "1.0"

// ServerInfo represents the server's capabilities and configuration
type ServerInfo struct {
	APIVersion  string                          `json:"apiVersion"`
	ServerTime  string                          `json:"serverTime"`
	Collections map[string]CollectionCapability `json:"collections"`
	Chat        ChatCapability                  `json:"chat"`
	RateLimit   *RateLimitInfo                  `json:"rateLimit,omitempty"`
}

// RateLimitInfo describes the server's rate limiting policy
type RateLimitInfo struct {
	WindowSeconds int `json:"windowSeconds"` // e.g. 60
	MaxRequests   int `json:"maxRequests"`   // per window
	Burst         int `json:"burst"`         // token bucket size
}

// CollectionCapability describes which operations a collection accepts
type CollectionCapability struct {
	Create  bool `json:"create"`
	Update  bool `json:"update"`
	Delete  bool `json:"delete"`
	Reorder bool `json:"reorder"`
}

// ChatCapability reports whether the assistant has a model behind it
type ChatCapability struct {
	Enabled bool `json:"enabled"`
}

// Info handles GET /api/info
func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	info := ServerInfo{
		APIVersion: APIVersion,
		ServerTime: time.Now().UTC().Format(time.RFC3339Nano),
		Collections: map[string]CollectionCapability{
			storage.TasksCollection:    {Create: true, Update: true, Delete: true, Reorder: true},
			storage.CartCollection:     {Create: true, Update: true, Delete: true},
			storage.ProductsCollection: {},
		},
		Chat:      ChatCapability{Enabled: s.Chat != nil && s.Chat.Enabled()},
		RateLimit: &s.RateLimitConfig,
	}

	writeJSON(w, http.StatusOK, info)
}
