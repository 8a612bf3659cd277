// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/mooc/internal/models"
	"github.com/desertthunder/mooc/internal/services"
)

// MockCourseService is a test double for [services.CourseService].
//
// Generate returns Result/Err and records every request it receives.
type MockCourseService struct {
	mu       sync.Mutex
	Result   *models.GenerationResult
	Err      error
	Logs     services.DecisionLogs
	Status   *services.HealthStatus
	Requests []models.GenerationRequest
}

func (m *MockCourseService) Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)
	return m.Result, m.Err
}

func (m *MockCourseService) DecisionLogs(ctx context.Context) (services.DecisionLogs, error) {
	return m.Logs, m.Err
}

func (m *MockCourseService) Health(ctx context.Context) (*services.HealthStatus, error) {
	return m.Status, m.Err
}

// Calls returns the number of Generate calls.
func (m *MockCourseService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// SampleResult builds a successful result with the given slides.
func SampleResult(slides ...models.Slide) *models.GenerationResult {
	if slides == nil {
		slides = []models.Slide{}
	}
	return &models.GenerationResult{
		Success:     true,
		ElapsedTime: 2.345,
		Results: models.CourseResults{
			Curriculum: models.Curriculum{
				CourseTitle:    "Intro to Go",
				TargetAudience: "beginners",
				TotalDuration:  models.NewValue(10),
				Chapters: []json.RawMessage{
					json.RawMessage(`{"chapter_number":1,"title":"Basics"}`),
					json.RawMessage(`{"chapter_number":2,"title":"Types"}`),
				},
			},
			VisualDesign: models.VisualDesign{Slides: slides},
		},
	}
}

// SamplePayload is a raw backend response with two slides, the second without a title.
const SamplePayload = `{
  "success": true,
  "topic": "Intro to Go",
  "elapsed_time": 2.345,
  "timestamp": 1700000000.5,
  "results": {
    "curriculum": {
      "course_title": "Intro to Go",
      "target_audience": "beginners",
      "total_duration": 10,
      "chapters": [{"chapter_number": 1, "title": "Basics"}, {"chapter_number": 2, "title": "Types"}]
    },
    "scripts": {"scripts": []},
    "visual_design": {
      "slides": [
        {"slide_id": "slide_1", "slide_type": "title", "title": "Welcome"},
        {"slide_id": "slide_2", "slide_type": "content", "content": {"text": "Go is a statically typed, compiled language designed at Google."}}
      ]
    }
  }
}`

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
