package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/mooc/internal/models"
	"github.com/desertthunder/mooc/internal/shared"
)

var _ CourseService = (*CourseClient)(nil)

// CourseClient implements [CourseService] on top of [APIService].
type CourseClient struct {
	api *APIService
}

// NewCourseClient creates a [CourseClient] using api for transport.
func NewCourseClient(api *APIService) *CourseClient {
	if api == nil {
		api = NewAPIService("", nil)
	}
	return &CourseClient{api: api}
}

// Generate posts req to /api/generate.
//
// The backend answers validation and pipeline errors with a JSON body and a 4xx/5xx status;
// those are decoded and returned as unsuccessful results so the caller can show the server's message.
func (c *CourseClient) Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	resp, err := c.api.Post(ctx, GeneratePath, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if !resp.IsJSON {
		return nil, fmt.Errorf("%w: status %d, body: %s", shared.ErrInvalidResponse, resp.StatusCode, truncate(resp.Body, 200))
	}

	result, err := models.DecodeResult(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidResponse, err)
	}

	if !resp.OK() && result.Success {
		return nil, fmt.Errorf("%w: status %d with a successful body", shared.ErrInvalidResponse, resp.StatusCode)
	}
	if !result.Success && result.Error == "" {
		result.Error = fmt.Sprintf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return result, nil
}

// DecisionLogs fetches /api/decision-logs.
func (c *CourseClient) DecisionLogs(ctx context.Context) (DecisionLogs, error) {
	resp, err := c.api.Get(ctx, DecisionLogsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	var body struct {
		Success bool         `json:"success"`
		Error   string       `json:"error"`
		Logs    DecisionLogs `json:"logs"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("%w: status %d: %v", shared.ErrInvalidResponse, resp.StatusCode, err)
	}
	if !body.Success {
		return nil, fmt.Errorf("%w: %s", shared.ErrNoResult, body.Error)
	}
	if body.Logs == nil {
		body.Logs = DecisionLogs{}
	}
	return body.Logs, nil
}

// Health fetches /health.
func (c *CourseClient) Health(ctx context.Context) (*HealthStatus, error) {
	resp, err := c.api.Get(ctx, HealthPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: status %d", shared.ErrServiceUnavailable, resp.StatusCode)
	}

	var status HealthStatus
	if err := json.Unmarshal(resp.Body, &status); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidResponse, err)
	}
	return &status, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
