package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/todolist-go/internal/todo"
)

var (
	headingStyle   = lipgloss.NewStyle().Bold(true)
	markedStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	completedStyle = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	dateStyle      = lipgloss.NewStyle().Faint(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Text renders frames for terminals and plain-text logs.
type Text struct {
	// Width caps the description column in cells. Zero leaves
	// descriptions untouched.
	Width int
}

// Render writes the frame: filter selectors, field errors, then the list
// or its empty state.
func (t *Text) Render(w io.Writer, f Frame) error {
	var b strings.Builder

	b.WriteString(FilterBar(f.Marked))
	b.WriteString("\n")
	if f.MinDueDate != "" {
		fmt.Fprintf(&b, "Due from: %s\n", f.MinDueDate)
	}
	for _, msg := range FieldMessages(f.Errors) {
		b.WriteString(errorStyle.Render("! "+msg) + "\n")
	}
	b.WriteString("\n")

	if f.View.Empty != nil {
		b.WriteString(headingStyle.Render(f.View.Empty.Title) + "\n")
		b.WriteString(f.View.Empty.Message + "\n")
	} else {
		for _, row := range f.View.Rows {
			b.WriteString(TextRow(row, t.Width) + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// TextRow formats one task line: check box, escaped description, due date
// and id.
func TextRow(row todo.Row, width int) string {
	check := "[ ]"
	if row.Completed {
		check = "[x]"
	}
	desc := Fit(EscapeTerminal(row.Description), width)
	if width > 0 {
		desc = Pad(desc, width)
	}
	if row.Completed {
		desc = completedStyle.Render(desc)
	}
	return fmt.Sprintf("  %s %s  %s  #%d", check, desc, dateStyle.Render("📅 "+row.DueDate), row.ID)
}

// FilterBar lists every filter with the marked one in brackets.
func FilterBar(marked todo.Filter) string {
	parts := make([]string, 0, len(todo.Filters()))
	for _, f := range todo.Filters() {
		if f == marked {
			parts = append(parts, markedStyle.Render("["+f.Title()+"]"))
			continue
		}
		parts = append(parts, " "+f.Title()+" ")
	}
	return "Filter: " + strings.Join(parts, " ")
}

// FieldMessages returns the messages for the failed fields in form order.
func FieldMessages(fields todo.FieldErrors) []string {
	var msgs []string
	if fields.Description {
		msgs = append(msgs, todo.MsgDescriptionRequired)
	}
	if fields.DueDate {
		msgs = append(msgs, todo.MsgDueDateRequired)
	}
	return msgs
}
