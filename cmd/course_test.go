package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/mooc/internal/models"
	"github.com/desertthunder/mooc/internal/repositories"
	"github.com/desertthunder/mooc/internal/services"
	"github.com/desertthunder/mooc/internal/shared"
	tu "github.com/desertthunder/mooc/internal/testing"
)

func twoSlides() []models.Slide {
	return []models.Slide{
		{SlideType: "title", Title: "Welcome", Content: &models.SlideContent{Text: "An introduction to the Go programming language"}},
		{SlideType: "content"},
	}
}

func TestGenerate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &tu.MockCourseService{Result: tu.SampleResult(twoSlides()...)}
		runner, output := newTestRunner(t, svc)

		if err := run(runner, "generate", "--topic", "Go", "--audience", "devs", "--duration", "45"); err != nil {
			t.Fatalf("generate failed: %v", err)
		}

		if svc.Calls() != 1 {
			t.Fatalf("expected one request, got %d", svc.Calls())
		}
		if req := svc.Requests[0]; req.DurationMinutes != 45 || req.Topic != "Go" || req.TargetAudience != "devs" {
			t.Errorf("unexpected request %+v", req)
		}

		out := output.String()
		for _, want := range []string{"> 📚 Topic: Go", "1. Welcome [title]", "2. Slide 2 [content]", "Saved as #1"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q, got:\n%s", want, out)
			}
		}

		stored, err := repositories.NewResultRepository(runner.db).Latest()
		if err != nil {
			t.Fatalf("result not stored: %v", err)
		}
		if stored.Request.DurationMinutes != 45 {
			t.Errorf("stored duration = %d", stored.Request.DurationMinutes)
		}
	})

	t.Run("Logical Failure", func(t *testing.T) {
		svc := &tu.MockCourseService{Result: &models.GenerationResult{Success: false, Error: "X"}}
		runner, output := newTestRunner(t, svc)

		err := run(runner, "generate", "--topic", "Go")
		if !errors.Is(err, shared.ErrGenerationFailed) {
			t.Fatalf("expected ErrGenerationFailed, got %v", err)
		}
		if !strings.Contains(output.String(), "! Course generation failed: X") {
			t.Errorf("expected alert with server error, got:\n%s", output.String())
		}

		if _, err := repositories.NewResultRepository(runner.db).Latest(); !errors.Is(err, shared.ErrResultMissing) {
			t.Error("failed generation should not be stored")
		}
	})

	t.Run("Non Integer Duration", func(t *testing.T) {
		svc := &tu.MockCourseService{Result: tu.SampleResult()}
		runner, _ := newTestRunner(t, svc)

		if err := run(runner, "generate", "--topic", "Go", "--duration", "abc"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if svc.Calls() != 0 {
			t.Error("no request should be sent")
		}
	})
}

func TestVideo(t *testing.T) {
	t.Run("Renders Slides", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockCourseService{})
		stored := seedResult(t, runner, "Go", twoSlides()...)

		if err := run(runner, "video"); err != nil {
			t.Fatalf("video failed: %v", err)
		}

		for _, name := range []string{"slide_01.png", "slide_02.png"} {
			tu.AssertFileExists(t, filepath.Join(runner.config.Output.Dir, name))
		}
		if !strings.Contains(output.String(), "> ✅ Video generation complete!") {
			t.Errorf("expected completion line, got:\n%s", output.String())
		}

		artifacts, err := repositories.NewArtifactRepository(runner.db).ListByResult(stored.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(artifacts) != 2 {
			t.Errorf("expected 2 recorded slides, got %d", len(artifacts))
		}

		st, err := runner.loadState(runner.db, "")
		if err != nil {
			t.Fatal(err)
		}
		if !st.DownloadEnabled {
			t.Error("download should be enabled once slides exist")
		}
	})

	t.Run("Without Saving", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockCourseService{})
		seedResult(t, runner, "Go", twoSlides()...)

		if err := run(runner, "video", "--slides=false"); err != nil {
			t.Fatalf("video failed: %v", err)
		}

		entries, _ := os.ReadDir(runner.config.Output.Dir)
		if len(entries) != 0 {
			t.Errorf("expected no files, got %d", len(entries))
		}
	})

	t.Run("No Result", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockCourseService{})

		if err := run(runner, "video"); !errors.Is(err, shared.ErrNoResult) {
			t.Errorf("expected ErrNoResult, got %v", err)
		}
		if !strings.Contains(output.String(), "! Please generate course content first") {
			t.Errorf("expected rejection alert, got:\n%s", output.String())
		}
	})
}

func TestDownload(t *testing.T) {
	t.Run("Nothing To Save", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockCourseService{})

		if err := run(runner, "download"); !errors.Is(err, shared.ErrNothingToSave) {
			t.Errorf("expected ErrNothingToSave, got %v", err)
		}

		entries, _ := os.ReadDir(runner.config.Output.Dir)
		if len(entries) != 0 {
			t.Errorf("expected no files, got %d", len(entries))
		}
	})

	t.Run("JSON", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockCourseService{})
		stored := seedResult(t, runner, "Go", twoSlides()...)

		if err := run(runner, "download"); err != nil {
			t.Fatalf("download failed: %v", err)
		}

		path := filepath.Join(runner.config.Output.Dir, "course_1700000000123.json")
		tu.AssertFileExists(t, path)

		var got models.GenerationResult
		if err := json.Unmarshal([]byte(tu.MustReadFile(t, path)), &got); err != nil {
			t.Fatalf("download is not JSON: %v", err)
		}
		if got.Results.Curriculum.CourseTitle != "Intro to Go" || len(got.Slides()) != 2 {
			t.Errorf("unexpected download %+v", got)
		}
		if !strings.Contains(output.String(), path) {
			t.Errorf("expected saved path in output, got:\n%s", output.String())
		}

		artifacts, err := repositories.NewArtifactRepository(runner.db).ListByResult(stored.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(artifacts) != 1 || artifacts[0].Kind != models.ArtifactJSON {
			t.Errorf("expected one JSON artifact, got %+v", artifacts)
		}
	})

	t.Run("Unknown ID", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockCourseService{})

		if err := run(runner, "download", "--id", "missing"); !errors.Is(err, shared.ErrResultMissing) {
			t.Errorf("expected ErrResultMissing, got %v", err)
		}
	})
}

func TestShow(t *testing.T) {
	runner, output := newTestRunner(t, &tu.MockCourseService{})
	seedResult(t, runner, "Go", twoSlides()...)

	tests := []struct {
		format string
		want   string
	}{
		{"text", "Intro to Go\n"},
		{"markdown", "# Intro to Go\n"},
		{"yaml", "summary:\n  title: Intro to Go\n"},
		{"json", "{\n  \"success\": true"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			output.Reset()
			if err := run(runner, "show", "--format", tt.format); err != nil {
				t.Fatalf("show failed: %v", err)
			}
			if !strings.HasPrefix(output.String(), tt.want) {
				t.Errorf("expected output to start with %q, got:\n%s", tt.want, output.String())
			}
		})
	}

	t.Run("Unknown Format", func(t *testing.T) {
		if err := run(runner, "show", "--format", "pdf"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("Empty History", func(t *testing.T) {
		empty, _ := newTestRunner(t, &tu.MockCourseService{})
		if err := run(empty, "show"); !errors.Is(err, shared.ErrResultMissing) {
			t.Errorf("expected ErrResultMissing, got %v", err)
		}
	})
}

func TestHistory(t *testing.T) {
	runner, output := newTestRunner(t, &tu.MockCourseService{})
	first := seedResult(t, runner, "first", twoSlides()...)
	seedResult(t, runner, "second")

	t.Run("List", func(t *testing.T) {
		output.Reset()
		if err := run(runner, "history", "list"); err != nil {
			t.Fatalf("list failed: %v", err)
		}

		out := output.String()
		if !strings.Contains(out, "#1") || !strings.Contains(out, "#2") {
			t.Errorf("expected both results, got:\n%s", out)
		}
		if strings.Index(out, "#2") > strings.Index(out, "#1") {
			t.Error("expected newest first")
		}
	})

	t.Run("List JSON", func(t *testing.T) {
		output.Reset()
		if err := run(runner, "history", "list", "--json", "--limit", "1"); err != nil {
			t.Fatalf("list failed: %v", err)
		}

		var entries []historyEntry
		if err := json.Unmarshal(output.Bytes(), &entries); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if len(entries) != 1 || entries[0].Topic != "second" {
			t.Errorf("unexpected entries %+v", entries)
		}
	})

	t.Run("Delete By Sequence", func(t *testing.T) {
		if err := run(runner, "history", "delete", "1"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := repositories.NewResultRepository(runner.db).Get(first.ID); !errors.Is(err, shared.ErrResultMissing) {
			t.Errorf("expected deleted result to be gone, got %v", err)
		}
	})

	t.Run("Delete Without Argument", func(t *testing.T) {
		if err := run(runner, "history", "delete"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestHealth(t *testing.T) {
	healthy := &services.HealthStatus{Status: "healthy", Service: "MOOC Generator", Version: "1.0.0", OllamaConfigured: true}

	t.Run("Healthy", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockCourseService{Status: healthy})

		if err := run(runner, "health"); err != nil {
			t.Fatalf("health failed: %v", err)
		}
		if !strings.Contains(output.String(), "MOOC Generator 1.0.0 is healthy") {
			t.Errorf("unexpected output:\n%s", output.String())
		}
	})

	t.Run("Unhealthy", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockCourseService{Status: &services.HealthStatus{Status: "degraded"}})

		if err := run(runner, "health"); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("Wait", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockCourseService{Status: healthy})

		if err := run(runner, "health", "--wait", "--interval", "10ms", "--attempts", "3", "--json"); err != nil {
			t.Fatalf("health --wait failed: %v", err)
		}

		var status services.HealthStatus
		if err := json.Unmarshal(output.Bytes(), &status); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if !status.Healthy() {
			t.Errorf("unexpected status %+v", status)
		}
	})

	t.Run("Wait Gives Up", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockCourseService{Err: shared.ErrServiceUnavailable})

		if err := run(runner, "health", "--wait", "--interval", "1ms", "--attempts", "2"); !errors.Is(err, shared.ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
	})
}

func TestLogs(t *testing.T) {
	logs := services.DecisionLogs{
		"curriculum_designer": {{"decision": "outline"}},
		"visual_designer":     {},
	}

	t.Run("All Agents", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockCourseService{Logs: logs})

		if err := run(runner, "logs"); err != nil {
			t.Fatalf("logs failed: %v", err)
		}

		var got map[string]any
		if err := json.Unmarshal(output.Bytes(), &got); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("expected 2 agents, got %d", len(got))
		}
	})

	t.Run("One Agent", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockCourseService{Logs: logs})

		if err := run(runner, "logs", "--agent", "curriculum_designer"); err != nil {
			t.Fatalf("logs failed: %v", err)
		}
		if !strings.Contains(output.String(), `"decision": "outline"`) {
			t.Errorf("unexpected output:\n%s", output.String())
		}
	})

	t.Run("Unknown Agent", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockCourseService{Logs: logs})

		if err := run(runner, "logs", "--agent", "narrator"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"healthy"}`))
		case "/api/echo":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"ok":true}`))
		case "/plain":
			w.Write([]byte("pong"))
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
	defer server.Close()

	newRunner := func(t *testing.T) (*Runner, *strings.Builder) {
		runner, _ := newTestRunner(t, &tu.MockCourseService{})
		output := &strings.Builder{}
		runner.output = output
		runner.api = services.NewAPIService(server.URL, nil)
		return runner, output
	}

	t.Run("GET JSON", func(t *testing.T) {
		runner, output := newRunner(t)

		if err := run(runner, "api", "get", "/health"); err != nil {
			t.Fatalf("api get failed: %v", err)
		}
		if output.String() != `{"status":"healthy"}`+"\n" {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("GET Plain", func(t *testing.T) {
		runner, output := newRunner(t)

		if err := run(runner, "api", "get", "/plain"); err != nil {
			t.Fatalf("api get failed: %v", err)
		}
		if output.String() != "pong\n" {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("GET Not Found", func(t *testing.T) {
		runner, _ := newRunner(t)

		if err := run(runner, "api", "get", "/missing"); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("POST", func(t *testing.T) {
		runner, output := newRunner(t)

		if err := run(runner, "api", "post", "--data", `{"topic":"Go"}`, "/api/echo"); err != nil {
			t.Fatalf("api post failed: %v", err)
		}
		if !strings.Contains(output.String(), `"ok": true`) {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("POST Invalid JSON", func(t *testing.T) {
		runner, _ := newRunner(t)

		if err := run(runner, "api", "post", "--data", "{", "/api/echo"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}
