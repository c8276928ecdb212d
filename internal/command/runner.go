package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/todo"
)

// Runner feeds a stream of command lines to a controller.
type Runner struct {
	Controller *todo.Controller
	Decoder    *Decoder
	Logger     *log.Logger
	// KeepGoing skips lines that fail to decode instead of stopping.
	KeepGoing bool
	// AfterEach, if set, runs after every dispatched command.
	AfterEach func(line int, cmd Command) error
}

// Result counts what happened to each command line.
type Result struct {
	Applied  int
	Rejected int
	Invalid  int
}

// Run reads commands from in until EOF or ctx is done.
func (r *Runner) Run(ctx context.Context, in io.Reader) (Result, error) {
	var res Result
	if r.Controller == nil {
		return res, errors.New("runner has no controller")
	}
	if r.Decoder == nil {
		dec, err := NewDecoder()
		if err != nil {
			return res, err
		}
		r.Decoder = dec
	}
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		cmd, err := r.Decoder.Decode([]byte(text))
		if err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				de.Line = line
			}
			if !r.KeepGoing {
				return res, err
			}
			res.Invalid++
			logger.Warn("skipping invalid command", "line", line, "err", err)
			continue
		}

		if err := Dispatch(r.Controller, cmd); err != nil {
			if !Benign(err) {
				return res, fmt.Errorf("line %d: %w", line, err)
			}
			res.Rejected++
			logger.Info("command rejected", "line", line, "op", cmd.Op, "err", err)
		} else {
			res.Applied++
			logger.Debug("command applied", "line", line, "op", cmd.Op)
		}

		if r.AfterEach != nil {
			if err := r.AfterEach(line, cmd); err != nil {
				return res, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("read commands: %w", err)
	}
	return res, nil
}
