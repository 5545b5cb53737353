package todo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/baxromumarov/rxstate"
	"github.com/baxromumarov/rxstate/log"
)

var (
	// ErrBlankText is returned when adding with no text typed.
	ErrBlankText = errors.New("todo: text is blank")

	// ErrListFull is returned when the list already holds the configured
	// maximum number of entries.
	ErrListFull = errors.New("todo: list is full")
)

// Facade owns the list state and exposes one pipeline per feature. Each
// feature takes an input stream and returns a stream that updates the
// state as a side effect; the caller decides how long it runs.
type Facade struct {
	state   *rxstate.State[Form]
	creator Creator
	limit   int
	logger  log.Logger
}

// FacadeOption configures a Facade.
type FacadeOption func(*Facade)

// WithLimit caps the number of entries. Zero or less means no cap.
func WithLimit(n int) FacadeOption {
	return func(f *Facade) {
		f.limit = n
	}
}

// WithLogger sets the logger for the Facade and its state.
func WithLogger(l log.Logger) FacadeOption {
	return func(f *Facade) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFacade returns a Facade with an empty list.
func NewFacade(opts ...FacadeOption) *Facade {
	f := &Facade{logger: log.Noop{}}
	for _, opt := range opts {
		opt(f)
	}
	f.state = rxstate.NewState(Form{Todos: []Todo{}},
		rxstate.WithName("todo"),
		rxstate.WithLogger(f.logger),
	)
	return f
}

// State returns the read-only view of the list state.
func (f *Facade) State() rxstate.ReadOnly[Form] {
	return f.state.ReadOnly()
}

// CanAdd reports whether an add would be accepted with the current state.
func (f *Facade) CanAdd() error {
	cur := f.state.Get()
	if strings.TrimSpace(cur.Text) == "" {
		return ErrBlankText
	}
	if f.limit > 0 && len(cur.Todos) >= f.limit {
		return fmt.Errorf("%w (%d entries)", ErrListFull, f.limit)
	}
	return nil
}

// AddTodo turns every add signal into a new Todo built from the current
// text, appends it and clears the text.
func (f *Facade) AddTodo(add rxstate.Observable[rxstate.Void]) *rxstate.Stream[Todo] {
	created := rxstate.Map(add, func(rxstate.Void) Todo {
		return f.creator.Create(strings.TrimSpace(f.state.Get().Text))
	})
	return rxstate.Tap[Todo](created, func(t Todo) {
		err := f.state.Update(func(cur Form) (rxstate.Partial, error) {
			return rxstate.Partial{
				"Todos": appendTodos(cur.Todos, t),
				"Text":  "",
			}, nil
		})
		f.report("add", err)
	})
}

// SetText stores every typed text.
func (f *Facade) SetText(text rxstate.Observable[string]) *rxstate.Stream[string] {
	return rxstate.Tap(text, func(s string) {
		f.report("set text", f.state.Set(rxstate.Partial{"Text": s}))
	})
}

// Import appends one Todo per non-blank line. Batches with no usable line
// are dropped.
func (f *Facade) Import(lines rxstate.Observable[[]string]) *rxstate.Stream[[]string] {
	cleaned := rxstate.Map(lines, cleanLines)
	nonEmpty := rxstate.Filter[[]string](cleaned, func(ls []string) bool { return len(ls) > 0 })
	return rxstate.Tap[[]string](nonEmpty, func(ls []string) {
		err := f.state.Update(func(cur Form) (rxstate.Partial, error) {
			room := len(ls)
			if f.limit > 0 {
				room = f.limit - len(cur.Todos)
			}
			if room <= 0 {
				return nil, ErrListFull
			}
			if room < len(ls) {
				f.logger.Warn("import truncated", log.Int("dropped", len(ls)-room))
				ls = ls[:room]
			}
			added := make([]Todo, 0, len(ls))
			for _, l := range ls {
				added = append(added, f.creator.Create(l))
			}
			return rxstate.Partial{"Todos": appendTodos(cur.Todos, added...)}, nil
		})
		f.report("import", err)
	})
}

// Remove drops the Todo with each received id. Unknown ids leave the
// state untouched.
func (f *Facade) Remove(ids rxstate.Observable[string]) *rxstate.Stream[string] {
	return rxstate.Tap(ids, func(id string) {
		err := f.state.Update(func(cur Form) (rxstate.Partial, error) {
			kept := make([]Todo, 0, len(cur.Todos))
			for _, t := range cur.Todos {
				if t.ID != id {
					kept = append(kept, t)
				}
			}
			if len(kept) == len(cur.Todos) {
				return nil, fmt.Errorf("todo: no entry with id %q", id)
			}
			return rxstate.Partial{"Todos": kept}, nil
		})
		f.report("remove", err)
	})
}

func (f *Facade) report(op string, err error) {
	if err != nil {
		f.logger.Warn("todo update rejected", log.String("op", op), log.Err(err))
	}
}

// appendTodos copies before appending so published states never share a
// backing array.
func appendTodos(cur []Todo, add ...Todo) []Todo {
	out := make([]Todo, 0, len(cur)+len(add))
	out = append(out, cur...)
	return append(out, add...)
}

func cleanLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
