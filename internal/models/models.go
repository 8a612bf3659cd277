package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Form holds the three form fields exactly as entered.
type Form struct {
	Topic    string
	Audience string
	Duration string
}

// GenerationRequest is the body of POST /api/generate.
type GenerationRequest struct {
	Topic           string `json:"topic" yaml:"topic"`
	TargetAudience  string `json:"target_audience" yaml:"target_audience"`
	DurationMinutes int    `json:"duration_minutes" yaml:"duration_minutes"`
}

// Request builds a [GenerationRequest] from the form.
//
// Duration is parsed like a leading-integer prefix ("45", " 45 ", "45min" all yield 45).
// Topic and audience are passed through untouched; there is no bounds or required-field check.
func (f Form) Request() (GenerationRequest, error) {
	minutes, err := parseLeadingInt(f.Duration)
	if err != nil {
		return GenerationRequest{}, fmt.Errorf("duration %q is not an integer", f.Duration)
	}
	return GenerationRequest{
		Topic:           f.Topic,
		TargetAudience:  f.Audience,
		DurationMinutes: minutes,
	}, nil
}

func parseLeadingInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return strconv.Atoi(s[:end])
}

// GenerationResult is the response of POST /api/generate.
//
// Only the fields the client reads are typed; Raw keeps the complete payload.
type GenerationResult struct {
	Success     bool            `json:"success" yaml:"success"`
	Error       string          `json:"error,omitempty" yaml:"error,omitempty"`
	Topic       string          `json:"topic,omitempty" yaml:"topic,omitempty"`
	ElapsedTime float64         `json:"elapsed_time" yaml:"elapsed_time"`
	Timestamp   float64         `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Results     CourseResults   `json:"results" yaml:"results"`
	Raw         json.RawMessage `json:"-" yaml:"-"`
}

// CourseResults groups the outputs of the backend agents.
type CourseResults struct {
	Curriculum   Curriculum   `json:"curriculum" yaml:"curriculum"`
	VisualDesign VisualDesign `json:"visual_design" yaml:"visual_design"`
}

// Curriculum is the course outline produced by the curriculum designer.
//
// The outline is model-generated, so only the fields the preview reads are typed. Chapters are
// counted, never inspected.
type Curriculum struct {
	CourseTitle        string            `json:"course_title" yaml:"course_title"`
	TargetAudience     string            `json:"target_audience" yaml:"target_audience"`
	TotalDuration      Value             `json:"total_duration" yaml:"total_duration"`
	LearningObjectives json.RawMessage   `json:"learning_objectives,omitempty" yaml:"-"`
	Chapters           []json.RawMessage `json:"chapters" yaml:"-"`
}

// VisualDesign holds the slide deck.
type VisualDesign struct {
	Style  json.RawMessage `json:"style,omitempty" yaml:"-"`
	Slides []Slide         `json:"slides" yaml:"slides"`
}

// Slide is one unit of visual content.
type Slide struct {
	SlideID       Value         `json:"slide_id,omitempty" yaml:"slide_id,omitempty"`
	SlideType     string        `json:"slide_type" yaml:"slide_type"`
	ChapterNumber Value         `json:"chapter_number,omitempty" yaml:"chapter_number,omitempty"`
	Title         string        `json:"title,omitempty" yaml:"title,omitempty"`
	Content       *SlideContent `json:"content,omitempty" yaml:"content,omitempty"`
}

// Text returns the slide body text, or "" when the slide has no content.
func (s Slide) Text() string {
	if s.Content == nil {
		return ""
	}
	return s.Content.Text
}

// SlideContent is the body of a slide. Only the text is drawn.
type SlideContent struct {
	Text         string          `json:"text,omitempty" yaml:"text,omitempty"`
	BulletPoints json.RawMessage `json:"bullet_points,omitempty" yaml:"-"`
	ImagePrompt  json.RawMessage `json:"image_prompt,omitempty" yaml:"-"`
	Layout       json.RawMessage `json:"layout,omitempty" yaml:"-"`
}

// Value is a scalar the backend sends as either a number or a string ("total_duration": 45 or "45").
// It keeps the raw JSON and is shown as text.
type Value struct {
	raw json.RawMessage
}

// NewValue encodes v as a Value.
func NewValue(v any) Value {
	raw, err := json.Marshal(v)
	if err != nil {
		return Value{}
	}
	return Value{raw: raw}
}

// String returns strings unquoted, numbers in plain decimal form, other JSON as-is and null as "".
func (v Value) String() string {
	raw := bytes.TrimSpace(v.raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return string(raw)
}

// IsZero reports whether the value is missing or null.
func (v Value) IsZero() bool { return v.String() == "" }

// UnmarshalJSON accepts any JSON value.
func (v *Value) UnmarshalJSON(data []byte) error {
	v.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes the raw value back, or null when unset.
func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// MarshalYAML renders the value as its text.
func (v Value) MarshalYAML() (any, error) {
	return v.String(), nil
}

// DecodeResult parses a backend response, keeping a copy of the raw bytes.
func DecodeResult(data []byte) (*GenerationResult, error) {
	var result GenerationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	result.Raw = append(json.RawMessage(nil), data...)
	return &result, nil
}

// Slides returns the deck, never nil.
func (r *GenerationResult) Slides() []Slide {
	if r == nil || r.Results.VisualDesign.Slides == nil {
		return []Slide{}
	}
	return r.Results.VisualDesign.Slides
}

// Payload returns the raw response, re-encoding the typed fields when no raw copy exists.
func (r *GenerationResult) Payload() (json.RawMessage, error) {
	if len(r.Raw) > 0 {
		return r.Raw, nil
	}
	return json.Marshal(r)
}

// Artifact kinds.
const (
	ArtifactSlide = "slide"
	ArtifactJSON  = "json"
	ArtifactVideo = "video"
	ArtifactAudio = "audio"
)

// Artifact is a downloadable output.
type Artifact struct {
	Kind string
	Name string
	MIME string
	Data []byte
}

// StoredResult is a generation result saved to the local history.
type StoredResult struct {
	ID        string
	Sequence  int
	Request   GenerationRequest
	Result    *GenerationResult
	CreatedAt time.Time
	DeletedAt *time.Time
}

// Validate checks the fields required to persist a result.
func (s *StoredResult) Validate() error {
	if s.Result == nil {
		return fmt.Errorf("result is required")
	}
	if !s.Result.Success {
		return fmt.Errorf("only successful results are stored")
	}
	if s.CreatedAt.IsZero() {
		return fmt.Errorf("created_at is required")
	}
	return nil
}

// StoredArtifact records a file written for a stored result.
type StoredArtifact struct {
	ID        string
	ResultID  string
	Kind      string
	Path      string
	CreatedAt time.Time
}
