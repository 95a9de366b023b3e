// Package cases serves the embedded teaching case library: guided
// investment scenarios with a markdown study text and quiz questions
// for exercise submissions.
package cases

import (
	"bytes"
	"embed"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed *.md
var library embed.FS

var (
	ErrNotFound         = errors.New("cases: case not found")
	ErrQuestionNotFound = errors.New("cases: question not found")
)

// Case describes one teaching case. Body carries the markdown study
// text and is only populated by Get.
type Case struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle"`
	Level       string     `json:"level"`
	Minutes     int        `json:"minutes"`
	Description string     `json:"description"`
	Objectives  []string   `json:"objectives"`
	Questions   []Question `json:"questions"`
	Body        string     `json:"body,omitempty"`
}

// Question is one quiz item attached to a case. The answer index stays
// unexported so encoded cases never leak it to the browser.
type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	answer  int
}

// Difficulty levels.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// List returns the case metadata in curriculum order, without bodies.
func List() []Case {
	out := make([]Case, len(catalog))
	copy(out, catalog)
	return out
}

// Get returns one case with its markdown body.
func Get(id string) (Case, error) {
	for _, c := range catalog {
		if c.ID == id {
			body, err := library.ReadFile(id + ".md")
			if err != nil {
				return Case{}, fmt.Errorf("case %q has no study text: %w", id, err)
			}
			c.Body = string(body)
			return c, nil
		}
	}
	return Case{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// RenderHTML converts a case's markdown body to HTML.
func RenderHTML(id string) (string, error) {
	c, err := Get(id)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := renderer.Convert([]byte(c.Body), &buf); err != nil {
		return "", fmt.Errorf("failed to render case %q: %w", id, err)
	}
	return buf.String(), nil
}

// GFM tables appear in the study texts.
var renderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Grade checks a quiz answer. The chosen option must exist; a wrong
// but existing option grades false without error.
func Grade(caseID, questionID string, answer int) (bool, error) {
	var found *Case
	for i := range catalog {
		if catalog[i].ID == caseID {
			found = &catalog[i]
			break
		}
	}
	if found == nil {
		return false, fmt.Errorf("%w: %q", ErrNotFound, caseID)
	}

	for _, q := range found.Questions {
		if q.ID != questionID {
			continue
		}
		if answer < 0 || answer >= len(q.Options) {
			return false, fmt.Errorf("question %q has no option %d", questionID, answer)
		}
		return answer == q.answer, nil
	}
	return false, fmt.Errorf("%w: %q in case %q", ErrQuestionNotFound, questionID, caseID)
}
