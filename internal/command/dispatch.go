package command

import (
	"errors"
	"fmt"

	"github.com/nibzard/todolist-go/internal/todo"
)

// Dispatch applies cmd to ctrl. Rejections from the controller are
// returned as-is; use Benign to tell them apart from real failures.
func Dispatch(ctrl *todo.Controller, cmd Command) error {
	switch cmd.Op {
	case OpAdd:
		_, err := ctrl.AddTask(cmd.Description, cmd.Due)
		return err
	case OpToggle:
		return ctrl.ToggleComplete(cmd.ID)
	case OpDelete:
		ctrl.DeleteTask(cmd.ID)
		return nil
	case OpFilter:
		f, err := todo.ParseFilter(cmd.Filter)
		if err != nil {
			return err
		}
		return ctrl.SetFilter(f)
	default:
		return fmt.Errorf("unknown op %q", cmd.Op)
	}
}

// Benign reports whether err is a recoverable rejection: a failed
// validation, a stale id or an unknown filter.
func Benign(err error) bool {
	return errors.Is(err, todo.ErrInvalidTask) ||
		errors.Is(err, todo.ErrNotFound) ||
		errors.Is(err, todo.ErrUnknownFilter)
}
