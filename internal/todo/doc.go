// Package todo holds the in-memory task list and the controller that
// mutates and renders it.
//
// A Controller owns an ordered slice of tasks and the active filter. Every
// mutation re-renders the visible subset into a Surface, which fully
// replaces whatever it displayed before:
//
//	ctrl := todo.NewController(surface)
//	ctrl.Start()
//	task, err := ctrl.AddTask("Buy milk", "2025-06-01")
//	_ = ctrl.ToggleComplete(task.ID)
//	_ = ctrl.SetFilter(todo.FilterCompleted)
//
// # Filters
//
//   - "all": every task
//   - "active": tasks with Completed == false
//   - "completed": tasks with Completed == true
//
// Filtering is a read-time projection. Tasks keep their creation order and
// toggling never moves a task.
//
// # Errors
//
// AddTask reports missing fields with a *ValidationError. ToggleComplete
// returns ErrNotFound for ids that are no longer held; callers are expected
// to treat that as a no-op. SetFilter rejects unknown values with
// ErrUnknownFilter.
//
// The Controller is not safe for concurrent use. Drive it from a single
// goroutine, such as a bubbletea Update loop.
package todo
