package guide

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Section is one titled slice of a markdown guide.
type Section struct {
	Title string
	Body  string // markdown, heading line excluded
}

// Sections splits a markdown guide on its level-1 and level-2 headings.
// Content before the first heading becomes an untitled leading section.
func Sections(source string) []Section {
	src := []byte(source)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))

	type mark struct {
		title string
		start int // byte offset of the heading line
		end   int // byte offset past the heading line
	}
	var marks []mark
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level > 2 || h.Lines().Len() == 0 {
			continue
		}
		seg := h.Lines().At(0)
		start := seg.Start
		for start > 0 && src[start-1] != '\n' {
			start--
		}
		marks = append(marks, mark{
			title: string(h.Text(src)),
			start: start,
			end:   seg.Stop,
		})
	}

	var sections []Section
	if len(marks) == 0 {
		if body := strings.TrimSpace(source); body != "" {
			sections = append(sections, Section{Body: body})
		}
		return sections
	}

	if intro := strings.TrimSpace(string(src[:marks[0].start])); intro != "" {
		sections = append(sections, Section{Body: intro})
	}
	for i, m := range marks {
		stop := len(src)
		if i+1 < len(marks) {
			stop = marks[i+1].start
		}
		sections = append(sections, Section{
			Title: m.title,
			Body:  strings.TrimSpace(string(src[m.end:stop])),
		})
	}
	return sections
}
