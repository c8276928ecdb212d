package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/todolist-go/internal/todo"
)

// Output formats accepted by ForFormat.
const (
	FormatText = "text"
	FormatHTML = "html"
)

// Frame is everything a surface has been told since Start.
type Frame struct {
	View       todo.View
	Marked     todo.Filter
	MinDueDate string
	Errors     todo.FieldErrors
}

// Renderer writes a frame in one output format.
type Renderer interface {
	Render(w io.Writer, f Frame) error
}

// ForFormat returns the renderer for a format name.
func ForFormat(name string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatText:
		return &Text{}, nil
	case FormatHTML:
		return &HTML{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want %s or %s)", name, FormatText, FormatHTML)
	}
}

// Buffer is a todo.Surface that keeps the latest frame in memory.
type Buffer struct {
	frame   Frame
	renders int
	resets  int
}

var _ todo.Surface = (*Buffer)(nil)

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) SetMinDueDate(date string) {
	b.frame.MinDueDate = date
}

func (b *Buffer) ShowFieldErrors(fields todo.FieldErrors) {
	b.frame.Errors = fields
}

func (b *Buffer) MarkFilter(f todo.Filter) {
	b.frame.Marked = f
}

func (b *Buffer) Display(v todo.View) {
	b.frame.View = v
	b.renders++
}

func (b *Buffer) ResetInputs() {
	b.resets++
}

// Frame returns the current frame.
func (b *Buffer) Frame() Frame {
	return b.frame
}

// Renders returns how many times Display was called.
func (b *Buffer) Renders() int {
	return b.renders
}

// Resets returns how many times ResetInputs was called.
func (b *Buffer) Resets() int {
	return b.resets
}

// RenderTo renders the current frame with r.
func (b *Buffer) RenderTo(w io.Writer, r Renderer) error {
	return r.Render(w, b.frame)
}

// String renders the current frame as text.
func (b *Buffer) String() string {
	var sb strings.Builder
	_ = (&Text{}).Render(&sb, b.frame)
	return sb.String()
}
