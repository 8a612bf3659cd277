// package services defines the [CourseService] interface for talking to the course-generation backend
package services

import (
	"context"

	"github.com/desertthunder/mooc/internal/models"
)

// Backend endpoints.
const (
	GeneratePath     = "/api/generate"
	DecisionLogsPath = "/api/decision-logs"
	HealthPath       = "/health"
)

// CourseService defines the operations the client needs from the backend.
type CourseService interface {
	// Generate submits a course request and waits for the full result.
	// A logical failure ("success": false) is returned as a result, not an error;
	// transport and decoding problems are returned as errors.
	Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error)

	// DecisionLogs returns each agent's decision history for the most recent generation.
	DecisionLogs(ctx context.Context) (DecisionLogs, error)

	// Health reports whether the backend is up.
	Health(ctx context.Context) (*HealthStatus, error)
}

// DecisionLogs maps agent name to its ordered log entries.
type DecisionLogs map[string][]map[string]any

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status           string `json:"status"`
	Service          string `json:"service"`
	Version          string `json:"version"`
	OllamaConfigured bool   `json:"ollama_configured"`
	GeminiConfigured bool   `json:"gemini_configured"`
}

// Healthy reports whether the backend declared itself healthy.
func (h *HealthStatus) Healthy() bool {
	return h != nil && h.Status == "healthy"
}
