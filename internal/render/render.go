// Package render writes snapshots of the to-do state.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/baxromumarov/rxstate/internal/cliconfig"
	"github.com/baxromumarov/rxstate/internal/todo"
)

// Snapshot is the document written for one state.
type Snapshot struct {
	Title string      `json:"title" yaml:"title"`
	Todos []todo.Todo `json:"todos" yaml:"todos"`
	Text  string      `json:"text" yaml:"text"`
}

// Renderer writes one Snapshot per call.
type Renderer interface {
	Render(w io.Writer, s Snapshot) error
}

// New returns the Renderer for format.
func New(format string) (Renderer, error) {
	switch format {
	case cliconfig.FormatText:
		return textRenderer{}, nil
	case cliconfig.FormatYAML:
		return yamlRenderer{}, nil
	case cliconfig.FormatJSON:
		return jsonRenderer{}, nil
	default:
		return nil, fmt.Errorf("render: unknown format %q", format)
	}
}

// SnapshotOf builds the Snapshot of f under title.
func SnapshotOf(title string, f todo.Form) Snapshot {
	todos := f.Todos
	if todos == nil {
		todos = []todo.Todo{}
	}
	return Snapshot{Title: title, Todos: todos, Text: f.Text}
}

type textRenderer struct{}

func (textRenderer) Render(w io.Writer, s Snapshot) error {
	if _, err := fmt.Fprintf(w, "%s (%d)\n", s.Title, len(s.Todos)); err != nil {
		return err
	}
	for _, t := range s.Todos {
		if _, err := fmt.Fprintf(w, "  [%s] %s\n", t.ID, t.Text); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "> %s\n", s.Text)
	return err
}

// yamlRenderer writes each snapshot as its own YAML document.
type yamlRenderer struct{}

func (yamlRenderer) Render(w io.Writer, s Snapshot) error {
	if _, err := io.WriteString(w, "---\n"); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}
	return enc.Close()
}

// jsonRenderer writes one JSON object per line.
type jsonRenderer struct{}

func (jsonRenderer) Render(w io.Writer, s Snapshot) error {
	if err := json.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	return nil
}
