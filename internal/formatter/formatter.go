// package formatter turns generation results into previews and export files (text, Markdown, YAML, JSON)
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/desertthunder/mooc/internal/models"
	"github.com/desertthunder/mooc/internal/shared"
)

// Preview is the course-info block plus one card per slide.
type Preview struct {
	Summary Summary `json:"summary" yaml:"summary"`
	Cards   []Card  `json:"cards" yaml:"cards"`
}

// Summary describes the course as a whole.
type Summary struct {
	Title        string `json:"title" yaml:"title"`
	Audience     string `json:"audience" yaml:"audience"`
	Duration     string `json:"duration" yaml:"duration"`
	ChapterCount int    `json:"chapter_count" yaml:"chapter_count"`
}

// Card is the preview of a single slide.
type Card struct {
	Index int    `json:"index" yaml:"index"`
	Title string `json:"title" yaml:"title"`
	Type  string `json:"type" yaml:"type"`
}

// NewPreview builds the preview of result.
//
// Cards follow slide order and are numbered from 1; an untitled slide gets the localized "Slide N" placeholder.
func NewPreview(result *models.GenerationResult, loc shared.Locale) Preview {
	if result == nil {
		return Preview{Cards: []Card{}}
	}

	c := result.Results.Curriculum
	p := Preview{
		Summary: Summary{
			Title:        c.CourseTitle,
			Audience:     c.TargetAudience,
			Duration:     c.TotalDuration.String(),
			ChapterCount: len(c.Chapters),
		},
	}

	slides := result.Slides()
	p.Cards = make([]Card, len(slides))
	for i, slide := range slides {
		title := slide.Title
		if title == "" {
			title = loc.T(shared.MsgSlidePlaceholder, i+1)
		}
		p.Cards[i] = Card{Index: i + 1, Title: title, Type: slide.SlideType}
	}
	return p
}

// ToText renders a preview as plain text.
func ToText(p Preview, loc shared.Locale) []byte {
	var buf bytes.Buffer

	buf.WriteString(p.Summary.Title + "\n")
	fmt.Fprintf(&buf, "%s: %s\n", loc.T(shared.MsgAudience), p.Summary.Audience)
	fmt.Fprintf(&buf, "%s: %s\n", loc.T(shared.MsgTotalDuration), loc.T(shared.MsgAboutMinutes, p.Summary.Duration))
	fmt.Fprintf(&buf, "%s: %s\n\n", loc.T(shared.MsgChapters), loc.T(shared.MsgChapterCount, p.Summary.ChapterCount))

	for _, card := range p.Cards {
		fmt.Fprintf(&buf, "%d. %s [%s]\n", card.Index, card.Title, card.Type)
	}

	return buf.Bytes()
}

// ToMarkdown renders a preview as a Markdown document.
func ToMarkdown(p Preview, loc shared.Locale) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", p.Summary.Title)
	fmt.Fprintf(&buf, "**%s**: %s\n", loc.T(shared.MsgAudience), p.Summary.Audience)
	fmt.Fprintf(&buf, "**%s**: %s\n", loc.T(shared.MsgTotalDuration), loc.T(shared.MsgAboutMinutes, p.Summary.Duration))
	fmt.Fprintf(&buf, "**%s**: %s\n\n", loc.T(shared.MsgChapters), loc.T(shared.MsgChapterCount, p.Summary.ChapterCount))

	buf.WriteString("## Slides\n\n")
	for _, card := range p.Cards {
		fmt.Fprintf(&buf, "%d. **%s** _%s_\n", card.Index, card.Title, card.Type)
	}

	return buf.Bytes()
}

// ToYAML renders a preview as YAML.
func ToYAML(p Preview) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFilename returns course_<unix-ms>.<ext>.
func ExportFilename(now time.Time, ext string) string {
	return fmt.Sprintf("course_%d.%s", now.UnixMilli(), ext)
}

// ResultJSON returns the result as indented JSON, exactly as the backend sent it.
func ResultJSON(result *models.GenerationResult) ([]byte, error) {
	if result == nil {
		return nil, shared.ErrNoResult
	}

	payload, err := result.Payload()
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent result: %w", err)
	}
	return buf.Bytes(), nil
}

// JSONArtifact packages the result as a downloadable course_<unix-ms>.json file.
func JSONArtifact(result *models.GenerationResult, now time.Time) (models.Artifact, error) {
	data, err := ResultJSON(result)
	if err != nil {
		return models.Artifact{}, err
	}
	return models.Artifact{
		Kind: models.ArtifactJSON,
		Name: ExportFilename(now, "json"),
		MIME: "application/json",
		Data: data,
	}, nil
}

// WriteArtifact writes a to dir, creating the directory when needed, and returns the file path.
func WriteArtifact(dir string, a models.Artifact) (string, error) {
	if a.Name == "" {
		return "", fmt.Errorf("%w: artifact has no name", shared.ErrInvalidArgument)
	}
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(dir, a.Name)
	if err := os.WriteFile(path, a.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", a.Name, err)
	}
	return path, nil
}
