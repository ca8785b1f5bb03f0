package story

import (
	"errors"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrEmptyDraft indicates the storyteller returned no usable text.
var ErrEmptyDraft = errors.New("empty story draft")

// Draft is a generated story in Markdown form. Raw always carries the
// full text; Title, Body and Moral are filled when the corresponding
// headings are present.
type Draft struct {
	Title string
	Body  string
	Moral string
	Raw   string
}

// ParseDraft splits a Markdown story into its sections. The expected
// shape is "# Title", "## Story" and "## Moral"; a draft that deviates
// from it is still returned, with the missing sections left empty.
func ParseDraft(raw string) (*Draft, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptyDraft
	}
	draft := &Draft{Raw: raw}

	source := []byte(raw)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	type section struct {
		name  string
		start int
	}
	var sections []section
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		heading, ok := node.(*ast.Heading)
		if !ok || heading.Lines().Len() == 0 {
			continue
		}
		line := heading.Lines().At(0)
		title := strings.ToLower(strings.TrimSpace(string(line.Value(source))))
		switch {
		case heading.Level == 1 && draft.Title == "":
			draft.Title = strings.TrimSpace(string(line.Value(source)))
		case heading.Level == 2 && title == "story":
			sections = append(sections, section{name: "story", start: line.Stop})
		case heading.Level == 2 && title == "moral":
			sections = append(sections, section{name: "moral", start: line.Stop})
		case heading.Level == 2:
			sections = append(sections, section{name: "", start: line.Stop})
		}
	}

	for i, sec := range sections {
		end := len(source)
		if i+1 < len(sections) {
			// Content runs up to the start of the next level-2 heading line.
			end = headingLineStart(source, sections[i+1].start)
		}
		content := strings.TrimSpace(string(source[min(sec.start, end):end]))
		switch sec.name {
		case "story":
			draft.Body = content
		case "moral":
			draft.Moral = content
		}
	}
	return draft, nil
}

// headingLineStart walks back from a heading's text offset to the start
// of its line, so the preceding section does not swallow the "## " marker.
func headingLineStart(source []byte, offset int) int {
	for offset > 0 && source[offset-1] != '\n' {
		offset--
	}
	return offset
}

// MissingSections lists the expected sections absent from the draft.
func (d *Draft) MissingSections() []string {
	var missing []string
	if d.Title == "" {
		missing = append(missing, "title")
	}
	if d.Body == "" {
		missing = append(missing, "story")
	}
	if d.Moral == "" {
		missing = append(missing, "moral")
	}
	return missing
}
