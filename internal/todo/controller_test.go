package todo

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// recordingSurface keeps everything the controller sends it.
type recordingSurface struct {
	minDueDate string
	fields     FieldErrors
	marked     []Filter
	views      []View
	resets     int
}

func (s *recordingSurface) SetMinDueDate(date string)          { s.minDueDate = date }
func (s *recordingSurface) ShowFieldErrors(fields FieldErrors) { s.fields = fields }
func (s *recordingSurface) MarkFilter(f Filter)                { s.marked = append(s.marked, f) }
func (s *recordingSurface) Display(v View)                     { s.views = append(s.views, v) }
func (s *recordingSurface) ResetInputs()                       { s.resets++ }

func (s *recordingSurface) last() View {
	if len(s.views) == 0 {
		return View{}
	}
	return s.views[len(s.views)-1]
}

func fixedClock() time.Time {
	return time.Date(2025, time.March, 4, 15, 30, 0, 0, time.Local)
}

func newTestController(t *testing.T, opts ...Option) (*Controller, *recordingSurface) {
	t.Helper()
	s := &recordingSurface{}
	opts = append([]Option{WithClock(fixedClock), WithIDSource(&SequenceIDs{})}, opts...)
	c := NewController(s, opts...)
	c.Start()
	return c, s
}

func mustAdd(t *testing.T, c *Controller, description, due string) Task {
	t.Helper()
	task, err := c.AddTask(description, due)
	if err != nil {
		t.Fatalf("AddTask(%q, %q) failed: %v", description, due, err)
	}
	return task
}

func rowIDs(v View) []int64 {
	var ids []int64
	for _, r := range v.Rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestStart(t *testing.T) {
	c, s := newTestController(t)

	if s.minDueDate != "2025-03-04" {
		t.Errorf("min due date: got %q, want 2025-03-04", s.minDueDate)
	}
	if c.MinDueDate() != s.minDueDate {
		t.Errorf("MinDueDate: got %q, want %q", c.MinDueDate(), s.minDueDate)
	}
	if len(s.marked) != 1 || s.marked[0] != FilterAll {
		t.Errorf("marked filters: got %v, want [all]", s.marked)
	}
	if len(s.views) != 1 {
		t.Fatalf("renders: got %d, want 1", len(s.views))
	}
	empty := s.last().Empty
	if empty == nil {
		t.Fatal("expected empty state on start")
	}
	if empty.Title != EmptyTitle || empty.Message != EmptyAllMessage {
		t.Errorf("empty state: got %+v", empty)
	}
}

func TestAddTaskValidation(t *testing.T) {
	tests := []struct {
		name        string
		description string
		due         string
		want        FieldErrors
	}{
		{"empty description", "", "2025-01-01", FieldErrors{Description: true}},
		{"whitespace description", "   \t", "2025-01-01", FieldErrors{Description: true}},
		{"missing date", "Buy milk", "", FieldErrors{DueDate: true}},
		{"both missing", " ", "", FieldErrors{Description: true, DueDate: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, s := newTestController(t)
			renders := len(s.views)

			_, err := c.AddTask(tt.description, tt.due)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if ve.Fields != tt.want {
				t.Errorf("fields: got %+v, want %+v", ve.Fields, tt.want)
			}
			if !errors.Is(err, ErrInvalidTask) {
				t.Error("expected errors.Is(err, ErrInvalidTask)")
			}
			if s.fields != tt.want {
				t.Errorf("surface indicators: got %+v, want %+v", s.fields, tt.want)
			}
			if len(c.Tasks()) != 0 {
				t.Errorf("tasks: got %d, want 0", len(c.Tasks()))
			}
			if len(s.views) != renders {
				t.Errorf("rejected add should not render")
			}
			if s.resets != 0 {
				t.Errorf("rejected add should not reset inputs")
			}
		})
	}
}

func TestAddTask(t *testing.T) {
	c, s := newTestController(t)
	s.fields = FieldErrors{Description: true, DueDate: true}

	task := mustAdd(t, c, "  Buy milk  ", "2025-06-01")

	if task.Description != "Buy milk" {
		t.Errorf("description: got %q, want trimmed", task.Description)
	}
	if task.Completed {
		t.Error("new task should not be completed")
	}
	if task.IsZero() {
		t.Error("new task should have an id")
	}
	tasks := c.Tasks()
	if len(tasks) != 1 || tasks[0] != task {
		t.Fatalf("tasks: got %+v", tasks)
	}
	if s.fields.Any() {
		t.Errorf("indicators should be hidden after success, got %+v", s.fields)
	}
	if s.resets != 1 {
		t.Errorf("resets: got %d, want 1", s.resets)
	}
	rows := s.last().Rows
	if len(rows) != 1 {
		t.Fatalf("rows: got %d, want 1", len(rows))
	}
	want := Row{
		ID:          task.ID,
		Description: "Buy milk",
		DueDate:     "June 1, 2025",
		ToggleLabel: LabelDone,
		DeleteLabel: LabelDelete,
	}
	if rows[0] != want {
		t.Errorf("row: got %+v, want %+v", rows[0], want)
	}
}

func TestAddTaskIgnoresMinDueDate(t *testing.T) {
	c, _ := newTestController(t)
	task := mustAdd(t, c, "Old", "2001-01-01")
	if task.DueDate != "2001-01-01" {
		t.Errorf("due date: got %q", task.DueDate)
	}
}

func TestToggleComplete(t *testing.T) {
	c, s := newTestController(t)
	task := mustAdd(t, c, "Buy milk", "2025-06-01")

	if err := c.ToggleComplete(task.ID); err != nil {
		t.Fatalf("ToggleComplete failed: %v", err)
	}
	if !c.Tasks()[0].Completed {
		t.Error("expected completed after first toggle")
	}
	if got := s.last().Rows[0].ToggleLabel; got != LabelUndo {
		t.Errorf("toggle label: got %q, want %q", got, LabelUndo)
	}

	if err := c.ToggleComplete(task.ID); err != nil {
		t.Fatalf("ToggleComplete failed: %v", err)
	}
	if c.Tasks()[0].Completed {
		t.Error("expected incomplete after second toggle")
	}
}

func TestToggleCompleteUnknownID(t *testing.T) {
	c, s := newTestController(t)
	mustAdd(t, c, "Buy milk", "2025-06-01")
	before := c.Tasks()
	renders := len(s.views)

	err := c.ToggleComplete(999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !reflect.DeepEqual(c.Tasks(), before) {
		t.Errorf("tasks changed: got %+v, want %+v", c.Tasks(), before)
	}
	if len(s.views) != renders {
		t.Error("unknown toggle should not render")
	}
}

func TestToggleKeepsOrder(t *testing.T) {
	c, _ := newTestController(t)
	a := mustAdd(t, c, "A", "2025-06-01")
	b := mustAdd(t, c, "B", "2025-06-02")
	d := mustAdd(t, c, "C", "2025-06-03")

	if err := c.ToggleComplete(b.ID); err != nil {
		t.Fatal(err)
	}
	if err := c.ToggleComplete(a.ID); err != nil {
		t.Fatal(err)
	}

	var got []int64
	for _, task := range c.Tasks() {
		got = append(got, task.ID)
	}
	want := []int64{a.ID, b.ID, d.ID}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order: got %v, want %v", got, want)
	}
}

func TestDeleteTask(t *testing.T) {
	c, s := newTestController(t)
	a := mustAdd(t, c, "A", "2025-06-01")
	b := mustAdd(t, c, "B", "2025-06-02")
	d := mustAdd(t, c, "C", "2025-06-03")

	c.DeleteTask(b.ID)

	got := rowIDs(s.last())
	want := []int64{a.ID, d.ID}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rows after delete: got %v, want %v", got, want)
	}
	if len(c.Tasks()) != 2 {
		t.Errorf("tasks: got %d, want 2", len(c.Tasks()))
	}
}

func TestDeleteTaskUnknownID(t *testing.T) {
	c, s := newTestController(t)
	mustAdd(t, c, "A", "2025-06-01")
	before := c.Tasks()
	renders := len(s.views)

	c.DeleteTask(12345)

	if !reflect.DeepEqual(c.Tasks(), before) {
		t.Errorf("tasks changed: got %+v, want %+v", c.Tasks(), before)
	}
	if len(s.views) != renders+1 {
		t.Errorf("delete should always render")
	}
}

func TestSetFilter(t *testing.T) {
	c, s := newTestController(t)
	a := mustAdd(t, c, "A", "2025-06-01")
	b := mustAdd(t, c, "B", "2025-06-02")
	if err := c.ToggleComplete(b.ID); err != nil {
		t.Fatal(err)
	}

	if err := c.SetFilter(FilterActive); err != nil {
		t.Fatalf("SetFilter(active) failed: %v", err)
	}
	if got := rowIDs(s.last()); !reflect.DeepEqual(got, []int64{a.ID}) {
		t.Errorf("active rows: got %v, want [%d]", got, a.ID)
	}

	if err := c.SetFilter(FilterCompleted); err != nil {
		t.Fatalf("SetFilter(completed) failed: %v", err)
	}
	if got := rowIDs(s.last()); !reflect.DeepEqual(got, []int64{b.ID}) {
		t.Errorf("completed rows: got %v, want [%d]", got, b.ID)
	}
	if c.Filter() != FilterCompleted {
		t.Errorf("filter: got %q", c.Filter())
	}
	if last := s.marked[len(s.marked)-1]; last != FilterCompleted {
		t.Errorf("marked filter: got %q, want completed", last)
	}
}

func TestSetFilterUnknown(t *testing.T) {
	c, s := newTestController(t)
	mustAdd(t, c, "A", "2025-06-01")
	renders := len(s.views)

	err := c.SetFilter(Filter("archived"))
	if !errors.Is(err, ErrUnknownFilter) {
		t.Fatalf("expected ErrUnknownFilter, got %v", err)
	}
	if c.Filter() != FilterAll {
		t.Errorf("filter changed to %q", c.Filter())
	}
	if len(s.views) != renders {
		t.Error("rejected filter should not render")
	}
	if len(s.marked) != 1 {
		t.Errorf("rejected filter should not mark selectors, got %v", s.marked)
	}
}

func TestEmptyStateMessages(t *testing.T) {
	tests := []struct {
		filter Filter
		want   string
	}{
		{FilterAll, EmptyAllMessage},
		{FilterActive, "No active tasks"},
		{FilterCompleted, "No completed tasks"},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			c, s := newTestController(t, WithFilter(tt.filter))
			if c.Filter() != tt.filter {
				t.Fatalf("filter: got %q, want %q", c.Filter(), tt.filter)
			}
			empty := s.last().Empty
			if empty == nil {
				t.Fatal("expected empty state")
			}
			if empty.Message != tt.want {
				t.Errorf("message: got %q, want %q", empty.Message, tt.want)
			}
		})
	}
}

func TestCompletedFilterEmptyWithActiveTasks(t *testing.T) {
	c, s := newTestController(t, WithFilter(FilterCompleted))
	mustAdd(t, c, "A", "2025-06-01")

	v := s.last()
	if v.Empty == nil || v.Empty.Message != "No completed tasks" {
		t.Errorf("expected completed empty state, got %+v", v)
	}
	if len(v.Rows) != 0 {
		t.Errorf("rows: got %d, want 0", len(v.Rows))
	}
}

func TestRenderIdempotent(t *testing.T) {
	c, s := newTestController(t)
	a := mustAdd(t, c, "A", "2025-06-01")
	mustAdd(t, c, "B", "2025-06-02")
	if err := c.ToggleComplete(a.ID); err != nil {
		t.Fatal(err)
	}

	c.Render()
	first := s.last()
	c.Render()
	second := s.last()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("render not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestFilterPartition(t *testing.T) {
	c, _ := newTestController(t)
	for i, name := range []string{"A", "B", "C", "D", "E"} {
		task := mustAdd(t, c, name, "2025-06-01")
		if i%2 == 0 {
			if err := c.ToggleComplete(task.ID); err != nil {
				t.Fatal(err)
			}
		}
	}

	visible := func(f Filter) map[int64]bool {
		if err := c.SetFilter(f); err != nil {
			t.Fatal(err)
		}
		set := make(map[int64]bool)
		for _, task := range c.Visible() {
			set[task.ID] = true
		}
		return set
	}

	all := visible(FilterAll)
	active := visible(FilterActive)
	completed := visible(FilterCompleted)

	if len(all) != 5 {
		t.Fatalf("all: got %d, want 5", len(all))
	}
	for id := range active {
		if completed[id] {
			t.Errorf("task %d in both active and completed", id)
		}
	}
	if len(active)+len(completed) != len(all) {
		t.Errorf("active(%d) + completed(%d) != all(%d)", len(active), len(completed), len(all))
	}
	for id := range all {
		if !active[id] && !completed[id] {
			t.Errorf("task %d missing from active and completed", id)
		}
	}
}

func TestUniqueIDsWithClock(t *testing.T) {
	frozen := func() time.Time { return fixedClock() }
	c := NewController(nil, WithClock(frozen))
	c.Start()

	seen := make(map[int64]bool)
	for i := 0; i < 50; i++ {
		task := mustAdd(t, c, "task", "2025-06-01")
		if seen[task.ID] {
			t.Fatalf("duplicate id %d after %d adds", task.ID, i)
		}
		seen[task.ID] = true
	}
	if len(seen) != 50 {
		t.Errorf("distinct ids: got %d, want 50", len(seen))
	}
}

func TestTasksReturnsCopy(t *testing.T) {
	c, _ := newTestController(t)
	mustAdd(t, c, "A", "2025-06-01")

	tasks := c.Tasks()
	tasks[0].Description = "changed"

	if c.Tasks()[0].Description != "A" {
		t.Error("Tasks should return a copy")
	}
}

func TestDateLayoutOption(t *testing.T) {
	c, s := newTestController(t, WithDateLayout("02/01/2006"))
	mustAdd(t, c, "A", "2025-06-01")
	if got := s.last().Rows[0].DueDate; got != "01/06/2025" {
		t.Errorf("due date: got %q, want 01/06/2025", got)
	}
}
