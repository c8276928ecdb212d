package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/todolist-go/internal/todo"
)

// HTML renders frames as the markup of the browser todo list: filter
// buttons, the add form with its error spans, and the #todoList region.
type HTML struct{}

func (h *HTML) Render(w io.Writer, f Frame) error {
	var b strings.Builder

	b.WriteString(`<div class="filters">` + "\n")
	for _, filter := range todo.Filters() {
		class := "filter-btn"
		if filter == f.Marked {
			class += " active"
		}
		fmt.Fprintf(&b, "  <button class=\"%s\" data-filter=\"%s\">%s</button>\n",
			class, EscapeHTML(string(filter)), EscapeHTML(filter.Title()))
	}
	b.WriteString("</div>\n")

	b.WriteString(`<form id="todoForm">` + "\n")
	b.WriteString(`  <input type="text" id="todoInput">` + "\n")
	writeFieldError(&b, "taskError", todo.MsgDescriptionRequired, f.Errors.Description)
	fmt.Fprintf(&b, "  <input type=\"date\" id=\"dateInput\" min=\"%s\">\n", EscapeHTML(f.MinDueDate))
	writeFieldError(&b, "dateError", todo.MsgDueDateRequired, f.Errors.DueDate)
	b.WriteString("</form>\n")

	b.WriteString(`<div id="todoList">` + "\n")
	if empty := f.View.Empty; empty != nil {
		b.WriteString(`  <div class="empty-state">` + "\n")
		fmt.Fprintf(&b, "    <h2>%s</h2>\n", EscapeHTML(empty.Title))
		fmt.Fprintf(&b, "    <p>%s</p>\n", EscapeHTML(empty.Message))
		b.WriteString("  </div>\n")
	} else {
		for _, row := range f.View.Rows {
			writeHTMLRow(&b, row)
		}
	}
	b.WriteString("</div>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeFieldError(b *strings.Builder, id, msg string, shown bool) {
	display := "none"
	if shown {
		display = "block"
	}
	fmt.Fprintf(b, "  <span id=\"%s\" class=\"error\" style=\"display: %s\">%s</span>\n", id, display, EscapeHTML(msg))
}

func writeHTMLRow(b *strings.Builder, row todo.Row) {
	class := "todo-item"
	toggle := "✓ " + row.ToggleLabel
	if row.Completed {
		class += " completed"
		toggle = "↩️ " + row.ToggleLabel
	}
	fmt.Fprintf(b, "  <div class=\"%s\">\n", class)
	b.WriteString(`    <div class="todo-content">` + "\n")
	fmt.Fprintf(b, "      <div class=\"todo-title\">%s</div>\n", EscapeHTML(row.Description))
	fmt.Fprintf(b, "      <div class=\"todo-date\">📅 %s</div>\n", EscapeHTML(row.DueDate))
	b.WriteString("    </div>\n")
	b.WriteString(`    <div class="todo-actions">` + "\n")
	fmt.Fprintf(b, "      <button class=\"complete-btn\" data-action=\"toggle\" data-id=\"%d\">%s</button>\n", row.ID, EscapeHTML(toggle))
	fmt.Fprintf(b, "      <button class=\"delete-btn\" data-action=\"delete\" data-id=\"%d\">🗑️ %s</button>\n", row.ID, EscapeHTML(row.DeleteLabel))
	b.WriteString("    </div>\n")
	b.WriteString("  </div>\n")
}
