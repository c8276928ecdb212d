// Package command decodes JSON-lines task commands and applies them to a
// todo.Controller.
//
// One command per line:
//
//	{"op": "add", "description": "Buy milk", "due": "2025-06-01"}
//	{"op": "toggle", "id": 1}
//	{"op": "delete", "id": 1}
//	{"op": "filter", "filter": "active"}
//
// Every line is checked against an embedded JSON Schema before it is
// dispatched. Blank lines and lines starting with "#" are skipped.
package command

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/todolist-go/internal/utils"
)

//go:embed command.schema.json
var schemaJSON string

const schemaURL = "command.schema.json"

// Op names a controller operation.
type Op string

const (
	OpAdd    Op = "add"
	OpToggle Op = "toggle"
	OpDelete Op = "delete"
	OpFilter Op = "filter"
)

// Command is one decoded input event.
type Command struct {
	Op          Op     `json:"op"`
	Description string `json:"description,omitempty"`
	Due         string `json:"due,omitempty"`
	ID          int64  `json:"id,omitempty"`
	Filter      string `json:"filter,omitempty"`
}

// DecodeError reports a line that is not valid JSON or does not match the
// command schema.
type DecodeError struct {
	Line int    // 1-based input line, 0 when unknown
	Path string // location of the first problem, "" for the whole command
	Err  error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, "%s: ", e.Path)
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decoder validates and decodes command lines.
type Decoder struct {
	schema *jsonschema.Schema
}

// NewDecoder compiles the embedded command schema.
func NewDecoder() (*Decoder, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("load command schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile command schema: %w", err)
	}
	return &Decoder{schema: schema}, nil
}

// Decode parses one command. Errors are *DecodeError.
func (d *Decoder) Decode(data []byte) (Command, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return Command{}, &DecodeError{Err: fmt.Errorf("parse command: %w", err)}
	}
	if dec.More() {
		return Command{}, &DecodeError{Err: errors.New("parse command: trailing data after command")}
	}

	if err := d.schema.Validate(doc); err != nil {
		return Command{}, schemaError(err)
	}

	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return Command{}, &DecodeError{Err: fmt.Errorf("decode command: %w", err)}
	}
	return cmd, nil
}

type problem struct {
	path    string
	message string
}

func schemaError(err error) *DecodeError {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &DecodeError{Err: err}
	}

	var problems []problem
	collectProblems(&problems, ve)
	if len(problems) == 0 {
		return &DecodeError{Err: errors.New(ve.Message)}
	}

	msgs := make([]string, 0, len(problems))
	for i, p := range problems {
		if i == 0 || p.path == "" {
			msgs = append(msgs, p.message)
			continue
		}
		msgs = append(msgs, p.path+": "+p.message)
	}
	return &DecodeError{
		Path: problems[0].path,
		Err:  errors.New(strings.Join(msgs, "; ")),
	}
}

func collectProblems(out *[]problem, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*out = append(*out, problem{
			path:    utils.JSONPointerToPath(err.InstanceLocation),
			message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectProblems(out, cause)
	}
}
