package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

// DetailMarkdown renders a person's record as a markdown sheet. Empty and
// placeholder values are left out.
func DetailMarkdown(p model.Person, manager *model.Person, reports []model.Person) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", orDash(p.Name))
	if p.Title != "" {
		fmt.Fprintf(&b, "*%s*\n\n", p.Title)
	}
	b.WriteString(p.Scope.String() + "\n\n")

	r := p.Record
	if r == nil {
		r = &model.DirectoryRecord{}
	}
	var contact []string
	for _, f := range []struct{ label, value string }{
		{"Email", r.Email},
		{"Mobile", r.Mobile},
		{"Office", r.Office},
		{"Team email", r.TeamEmail},
		{"Support", r.SupportPhone},
		{"Location", r.Location},
		{"Timezone", r.Timezone},
	} {
		if !model.IsNonValue(f.value) {
			contact = append(contact, fmt.Sprintf("- **%s:** %s", f.label, f.value))
		}
	}
	if len(contact) > 0 {
		b.WriteString("## Contact\n\n" + strings.Join(contact, "\n") + "\n\n")
	}
	if len(p.Regions) > 0 {
		b.WriteString("**Regions:** " + strings.Join(p.Regions, ", ") + "\n\n")
	}

	if manager != nil {
		fmt.Fprintf(&b, "## Reports to\n\n- %s\n\n", nameTitle(*manager))
	}
	if len(reports) > 0 {
		fmt.Fprintf(&b, "## Direct reports (%d)\n\n", len(reports))
		for _, c := range reports {
			b.WriteString("- " + nameTitle(c) + "\n")
		}
		b.WriteString("\n")
	}
	if !model.IsNonValue(r.Notes) {
		b.WriteString("## Notes\n\n" + r.Notes + "\n")
	}
	return b.String()
}

func nameTitle(p model.Person) string {
	if p.Title == "" {
		return orDash(p.Name)
	}
	return orDash(p.Name) + " · " + p.Title
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// renderMarkdown renders md for the terminal, falling back to the raw text.
func renderMarkdown(md string, width int) string {
	if width < 20 {
		width = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
