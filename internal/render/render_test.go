package render

import (
	"strings"
	"testing"
	"time"

	"github.com/nibzard/todolist-go/internal/todo"
)

func newSession(t *testing.T) (*todo.Controller, *Buffer) {
	t.Helper()
	buf := NewBuffer()
	ctrl := todo.NewController(buf,
		todo.WithIDSource(&todo.SequenceIDs{}),
		todo.WithClock(func() time.Time {
			return time.Date(2025, time.March, 4, 9, 0, 0, 0, time.Local)
		}),
	)
	ctrl.Start()
	return ctrl, buf
}

func renderString(t *testing.T, r Renderer, buf *Buffer) string {
	t.Helper()
	var sb strings.Builder
	if err := buf.RenderTo(&sb, r); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return sb.String()
}

func TestEscapeHTML(t *testing.T) {
	got := EscapeHTML(`<b>x</b> & "q"`)
	want := `&lt;b&gt;x&lt;/b&gt; &amp; &#34;q&#34;`
	if got != want {
		t.Errorf("EscapeHTML: got %q, want %q", got, want)
	}
}

func TestEscapeTerminal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Buy milk", "Buy milk"},
		{"markup untouched", "<b>x</b>", "<b>x</b>"},
		{"ansi color", "\x1b[31mred", `\x1b[31mred`},
		{"bell", "ding\a", `ding\x07`},
		{"newline and tab", "a\nb\tc", "a b c"},
		{"c1 control", "x\u009by", `x\u009by`},
		{"emoji", "🚀 launch", "🚀 launch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeTerminal(tt.input); got != tt.want {
				t.Errorf("EscapeTerminal(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFit(t *testing.T) {
	if got := Fit("short", 10); got != "short" {
		t.Errorf("Fit short: got %q", got)
	}
	if got := Fit("a long description", 0); got != "a long description" {
		t.Errorf("Fit unlimited: got %q", got)
	}
	got := Fit("a long description", 8)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Fit truncated: got %q, want ellipsis", got)
	}
	if got := Pad("ab", 4); got != "ab  " {
		t.Errorf("Pad: got %q", got)
	}
}

func TestForFormat(t *testing.T) {
	if r, err := ForFormat("text"); err != nil {
		t.Errorf("text: %v", err)
	} else if _, ok := r.(*Text); !ok {
		t.Errorf("text: got %T", r)
	}
	if r, err := ForFormat("HTML"); err != nil {
		t.Errorf("html: %v", err)
	} else if _, ok := r.(*HTML); !ok {
		t.Errorf("html: got %T", r)
	}
	if _, err := ForFormat("pdf"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestBufferTracksSurfaceCalls(t *testing.T) {
	ctrl, buf := newSession(t)

	if _, err := ctrl.AddTask("", ""); err == nil {
		t.Fatal("expected validation error")
	}
	frame := buf.Frame()
	if !frame.Errors.Description || !frame.Errors.DueDate {
		t.Errorf("errors: got %+v", frame.Errors)
	}
	if frame.MinDueDate != "2025-03-04" {
		t.Errorf("min due date: got %q", frame.MinDueDate)
	}

	if _, err := ctrl.AddTask("Buy milk", "2025-06-01"); err != nil {
		t.Fatal(err)
	}
	if buf.Resets() != 1 {
		t.Errorf("resets: got %d, want 1", buf.Resets())
	}
	if buf.Renders() != 2 {
		t.Errorf("renders: got %d, want 2", buf.Renders())
	}
	if buf.Frame().Errors.Any() {
		t.Error("errors should be hidden after a successful add")
	}
}

func TestTextRender(t *testing.T) {
	ctrl, buf := newSession(t)
	a, _ := ctrl.AddTask("Buy milk", "2025-06-01")
	if _, err := ctrl.AddTask("Walk dog", "2025-06-02"); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.ToggleComplete(a.ID); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"[All]",
		"Due from: 2025-03-04",
		"[x] Buy milk",
		"📅 June 1, 2025",
		"[ ] Walk dog",
		"#2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Buy milk") > strings.Index(out, "Walk dog") {
		t.Error("rows out of creation order")
	}
}

func TestTextRenderEmptyState(t *testing.T) {
	ctrl, buf := newSession(t)
	if err := ctrl.SetFilter(todo.FilterActive); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, todo.EmptyTitle) || !strings.Contains(out, "No active tasks") {
		t.Errorf("unexpected empty state:\n%s", out)
	}
	if !strings.Contains(out, "[Active]") {
		t.Errorf("active filter not marked:\n%s", out)
	}
}

func TestTextRenderEscapesControlSequences(t *testing.T) {
	ctrl, buf := newSession(t)
	if _, err := ctrl.AddTask("\x1b[2Jwipe", "2025-06-01"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "\x1b[2J") {
		t.Errorf("raw escape sequence leaked into output: %q", out)
	}
	if !strings.Contains(out, `\x1b[2Jwipe`) {
		t.Errorf("escaped description missing: %q", out)
	}
}

func TestHTMLRenderEscapesMarkup(t *testing.T) {
	ctrl, buf := newSession(t)
	if _, err := ctrl.AddTask("<b>x</b>", "2025-06-01"); err != nil {
		t.Fatal(err)
	}

	out := renderString(t, &HTML{}, buf)
	if strings.Contains(out, "<b>x</b>") {
		t.Errorf("markup was not escaped:\n%s", out)
	}
	if !strings.Contains(out, `<div class="todo-title">&lt;b&gt;x&lt;/b&gt;</div>`) {
		t.Errorf("escaped title missing:\n%s", out)
	}
}

func TestHTMLRender(t *testing.T) {
	ctrl, buf := newSession(t)
	a, _ := ctrl.AddTask("Buy milk", "2025-06-01")
	if err := ctrl.ToggleComplete(a.ID); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.SetFilter(todo.FilterCompleted); err != nil {
		t.Fatal(err)
	}

	out := renderString(t, &HTML{}, buf)
	for _, want := range []string{
		`<button class="filter-btn active" data-filter="completed">Completed</button>`,
		`<button class="filter-btn" data-filter="all">All</button>`,
		`<input type="date" id="dateInput" min="2025-03-04">`,
		`<span id="taskError" class="error" style="display: none">`,
		`<div class="todo-item completed">`,
		`<div class="todo-date">📅 June 1, 2025</div>`,
		`data-action="toggle" data-id="1">↩️ Undo</button>`,
		`data-action="delete" data-id="1">🗑️ Delete</button>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "filter-btn active") != 1 {
		t.Errorf("expected exactly one active filter button:\n%s", out)
	}
}

func TestHTMLRenderEmptyAndErrors(t *testing.T) {
	ctrl, buf := newSession(t)
	if _, err := ctrl.AddTask("", "2025-06-01"); err == nil {
		t.Fatal("expected validation error")
	}

	out := renderString(t, &HTML{}, buf)
	for _, want := range []string{
		`<div class="empty-state">`,
		"<h2>No Tasks Found!</h2>",
		"<p>Add your first task to get started 🚀</p>",
		`<span id="taskError" class="error" style="display: block">Please enter a task</span>`,
		`<span id="dateError" class="error" style="display: none">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderIdempotentOutput(t *testing.T) {
	ctrl, buf := newSession(t)
	if _, err := ctrl.AddTask("Buy milk", "2025-06-01"); err != nil {
		t.Fatal(err)
	}

	ctrl.Render()
	first := renderString(t, &HTML{}, buf)
	ctrl.Render()
	second := renderString(t, &HTML{}, buf)
	if first != second {
		t.Errorf("render output changed:\n%s\n---\n%s", first, second)
	}
}
