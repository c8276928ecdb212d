package todo

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Empty-state and control labels.
const (
	EmptyTitle      = "No Tasks Found!"
	EmptyAllMessage = "Add your first task to get started 🚀"
	LabelDone       = "Done"
	LabelUndo       = "Undo"
	LabelDelete     = "Delete"
)

// Surface is the display the Controller renders into. Implementations
// only show what they are told.
type Surface interface {
	// SetMinDueDate tells the input side which date is the earliest
	// selectable one. It is sent once, at Start.
	SetMinDueDate(date string)
	// ShowFieldErrors shows indicators for the failed fields and hides
	// the rest.
	ShowFieldErrors(fields FieldErrors)
	// MarkFilter marks exactly one filter selector as active.
	MarkFilter(f Filter)
	// Display replaces the displayed list with v.
	Display(v View)
	// ResetInputs clears the add-task inputs after a successful add.
	ResetInputs()
}

// View is one full rendering of the visible list.
type View struct {
	Filter Filter
	Rows   []Row
	// Empty is set instead of Rows when nothing matches the filter.
	Empty *EmptyState
}

// Row is one displayed task. Description is raw text; surfaces escape it
// for their medium.
type Row struct {
	ID          int64
	Description string
	DueDate     string
	Completed   bool
	ToggleLabel string
	DeleteLabel string
}

// EmptyState is shown when the filtered list has no tasks.
type EmptyState struct {
	Title   string
	Message string
}

// Option configures a Controller.
type Option func(*Controller)

// WithIDSource replaces the default clock-based id source.
func WithIDSource(ids IDSource) Option {
	return func(c *Controller) {
		c.ids = ids
	}
}

// WithLogger sets the logger used for operation tracing.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the time source used for ids and the minimum due date.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithDateLayout sets the layout used to display due dates.
func WithDateLayout(layout string) Option {
	return func(c *Controller) {
		if layout != "" {
			c.dateLayout = layout
		}
	}
}

// WithFilter sets the filter active at Start. Invalid values are ignored.
func WithFilter(f Filter) Option {
	return func(c *Controller) {
		if f.Valid() {
			c.filter = f
		}
	}
}

// Controller owns the task list and the active filter.
type Controller struct {
	tasks      []Task
	filter     Filter
	surface    Surface
	ids        IDSource
	logger     *log.Logger
	now        func() time.Time
	dateLayout string
	minDueDate string
}

// NewController creates a controller that renders into surface. A nil
// surface discards every rendering.
func NewController(surface Surface, opts ...Option) *Controller {
	c := &Controller{
		filter:     FilterAll,
		surface:    surface,
		logger:     log.New(io.Discard),
		now:        time.Now,
		dateLayout: DefaultDisplayLayout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.surface == nil {
		c.surface = NopSurface{}
	}
	if c.ids == nil {
		c.ids = NewClockIDs(c.now)
	}
	return c
}

// Start sends the minimum due date and the active filter to the surface
// and renders once.
func (c *Controller) Start() {
	c.minDueDate = Today(c.now())
	c.surface.SetMinDueDate(c.minDueDate)
	c.surface.MarkFilter(c.filter)
	c.Render()
	c.logger.Debug("controller started", "filter", c.filter, "min_due_date", c.minDueDate)
}

// AddTask appends a new incomplete task. Empty descriptions (after
// trimming) and empty due dates are reported together in a
// *ValidationError and leave the list untouched.
func (c *Controller) AddTask(description, dueDate string) (Task, error) {
	description = strings.TrimSpace(description)
	dueDate = strings.TrimSpace(dueDate)

	var fields FieldErrors
	if description == "" {
		fields.Description = true
	}
	if dueDate == "" {
		fields.DueDate = true
	}
	c.surface.ShowFieldErrors(fields)
	if fields.Any() {
		c.logger.Debug("add rejected", "fields", fields.Names())
		return Task{}, &ValidationError{Fields: fields}
	}

	task := Task{
		ID:          c.ids.NextID(),
		Description: description,
		DueDate:     dueDate,
	}
	c.tasks = append(c.tasks, task)
	c.Render()
	c.surface.ResetInputs()
	c.logger.Debug("task added", "id", task.ID, "total", len(c.tasks))
	return task, nil
}

// ToggleComplete flips the completion flag of the task with id. Unknown
// ids return ErrNotFound without rendering.
func (c *Controller) ToggleComplete(id int64) error {
	i := c.indexOf(id)
	if i < 0 {
		c.logger.Debug("toggle ignored", "id", id)
		return fmt.Errorf("toggle task %d: %w", id, ErrNotFound)
	}
	c.tasks[i].Completed = !c.tasks[i].Completed
	c.logger.Debug("task toggled", "id", id, "completed", c.tasks[i].Completed)
	c.Render()
	return nil
}

// DeleteTask removes the task with id. Unknown ids are ignored.
func (c *Controller) DeleteTask(id int64) {
	before := len(c.tasks)
	c.tasks = slices.DeleteFunc(c.tasks, func(t Task) bool {
		return t.ID == id
	})
	c.logger.Debug("task deleted", "id", id, "removed", before-len(c.tasks), "total", len(c.tasks))
	c.Render()
}

// SetFilter changes the active filter and re-renders. Unknown filters are
// rejected and change nothing.
func (c *Controller) SetFilter(f Filter) error {
	if !f.Valid() {
		c.logger.Debug("filter rejected", "filter", f)
		return fmt.Errorf("set filter: %w: %q", ErrUnknownFilter, f)
	}
	c.filter = f
	c.surface.MarkFilter(f)
	c.logger.Debug("filter set", "filter", f)
	c.Render()
	return nil
}

// Render pushes the current view to the surface.
func (c *Controller) Render() {
	v := c.View()
	c.surface.Display(v)
	c.logger.Debug("rendered", "filter", v.Filter, "rows", len(v.Rows))
}

// View builds the rendering of the visible tasks without displaying it.
func (c *Controller) View() View {
	visible := c.Visible()
	v := View{Filter: c.filter}
	if len(visible) == 0 {
		v.Empty = emptyState(c.filter)
		return v
	}
	v.Rows = make([]Row, 0, len(visible))
	for _, t := range visible {
		v.Rows = append(v.Rows, Row{
			ID:          t.ID,
			Description: t.Description,
			DueDate:     FormatDueDate(t.DueDate, c.dateLayout),
			Completed:   t.Completed,
			ToggleLabel: toggleLabel(t.Completed),
			DeleteLabel: LabelDelete,
		})
	}
	return v
}

// Tasks returns a copy of every held task in creation order.
func (c *Controller) Tasks() []Task {
	return slices.Clone(c.tasks)
}

// Visible returns the tasks matching the active filter in creation order.
func (c *Controller) Visible() []Task {
	var out []Task
	for _, t := range c.tasks {
		if c.filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Filter returns the active filter.
func (c *Controller) Filter() Filter {
	return c.filter
}

// MinDueDate returns the date sent to the surface at Start, or "" before
// Start.
func (c *Controller) MinDueDate() string {
	return c.minDueDate
}

func (c *Controller) indexOf(id int64) int {
	return slices.IndexFunc(c.tasks, func(t Task) bool {
		return t.ID == id
	})
}

func emptyState(f Filter) *EmptyState {
	msg := EmptyAllMessage
	if f != FilterAll {
		msg = fmt.Sprintf("No %s tasks", f)
	}
	return &EmptyState{Title: EmptyTitle, Message: msg}
}

func toggleLabel(completed bool) string {
	if completed {
		return LabelUndo
	}
	return LabelDone
}

// NopSurface discards everything it is sent.
type NopSurface struct{}

func (NopSurface) SetMinDueDate(string)        {}
func (NopSurface) ShowFieldErrors(FieldErrors) {}
func (NopSurface) MarkFilter(Filter)           {}
func (NopSurface) Display(View)                {}
func (NopSurface) ResetInputs()                {}
