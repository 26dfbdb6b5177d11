package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/plexus/internal/portfolio"
)

const (
	margin       = 4
	minHomeRows  = 12
	sectionGap   = 2
	maxTextWidth = 72
)

type lineKind int

const (
	lineText lineKind = iota
	lineHeadline
	lineStat
	lineFilters
)

type role int

const (
	roleText role = iota
	roleTitle
	roleHeading
	roleMuted
	roleAccent
)

// line is one row of document text, positioned in cells.
type line struct {
	Section string
	Row     int
	Col     int
	Text    string
	Role    role
	Kind    lineKind
	Index   int
}

// document is the laid out page: its rows, text and section bounds.
type document struct {
	Rows     int
	Lines    []line
	Sections []portfolio.Section
}

func (d document) Section(id string) (portfolio.Section, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return portfolio.Section{}, false
}

type builder struct {
	doc   document
	width int
	row   int
	id    string
	start int
}

func (b *builder) begin(id, title string) {
	b.id, b.start = id, b.row
	if title != "" {
		b.add(title, roleHeading)
		b.add(strings.Repeat("─", min(len(title)+4, b.textWidth())), roleMuted)
		b.row++
	}
}

func (b *builder) end(title string, minRows int) {
	b.row = max(b.row, b.start+minRows)
	b.doc.Sections = append(b.doc.Sections, portfolio.Section{
		ID:     b.id,
		Title:  title,
		Top:    b.start,
		Height: b.row - b.start,
	})
	b.row += sectionGap
}

func (b *builder) textWidth() int {
	return max(min(b.width-2*margin, maxTextWidth), 10)
}

func (b *builder) add(text string, r role) {
	b.addKind(text, r, lineText, 0)
}

func (b *builder) addKind(text string, r role, k lineKind, index int) {
	b.doc.Lines = append(b.doc.Lines, line{
		Section: b.id,
		Row:     b.row,
		Col:     margin,
		Text:    text,
		Role:    r,
		Kind:    k,
		Index:   index,
	})
	b.row++
}

// wrap breaks text into lines no wider than the text column.
func (b *builder) wrap(text string, r role) {
	w := b.textWidth()
	for _, para := range strings.Split(strings.TrimSpace(text), "\n\n") {
		para = strings.Join(strings.Fields(stripMarkdown(para)), " ")
		if para == "" {
			continue
		}
		wrapped := lipgloss.NewStyle().Width(w).Render(para)
		for _, l := range strings.Split(wrapped, "\n") {
			b.add(strings.TrimRight(l, " "), r)
		}
		b.row++
	}
}

// stripMarkdown drops the inline markers that make no sense in a terminal.
func stripMarkdown(s string) string {
	return strings.NewReplacer("**", "", "__", "", "`", "", "# ", "").Replace(s)
}

// layout places the profile on a page width cells wide. The home section
// fills at least one screen of viewRows rows. Only projects matching filter
// are laid out.
func layout(p *portfolio.Profile, width, viewRows int, filter string) document {
	b := &builder{width: width}

	b.begin("home", "")
	b.row = b.start + max(viewRows/4, 2)
	b.add(p.Name, roleTitle)
	b.row++
	b.addKind("", roleAccent, lineHeadline, 0)
	b.row++
	for i, s := range p.Stats {
		b.addKind(fmt.Sprintf("%-8s %s", s.Value, s.Label), roleText, lineStat, i)
	}
	b.end("Home", max(viewRows, minHomeRows))

	b.begin("about", "About")
	b.wrap(p.About, roleText)
	b.end("About", 0)

	b.begin("projects", "Projects")
	b.addKind(strings.Join(p.Filters, "  "), roleMuted, lineFilters, 0)
	b.row++
	for _, pr := range portfolio.Filter(p.Projects, filter) {
		title := pr.Title
		if pr.Featured {
			title += "  *"
		}
		b.add(title, roleAccent)
		b.wrap(pr.Summary, roleText)
		b.row--
		if len(pr.Tags) > 0 {
			b.add(strings.Join(pr.Tags, " · "), roleMuted)
		}
		b.row++
	}
	b.end("Projects", 0)

	b.begin("skills", "Skills")
	for _, sk := range p.Skills {
		b.add(sk.Name, roleAccent)
		b.wrap(strings.Join(sk.Tags, ", "), roleText)
	}
	b.end("Skills", 0)

	b.begin("contact", "Contact")
	b.add(p.Email, roleAccent)
	if p.GitHub != "" {
		b.add(p.GitHub, roleText)
	}
	b.row++
	b.add("press e to copy the address", roleMuted)
	b.end("Contact", 0)

	b.doc.Rows = b.row
	return b.doc
}
