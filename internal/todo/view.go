package todo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/baxromumarov/rxstate"
	"github.com/baxromumarov/rxstate/log"
)

// DestroyTrigger is the trigger name a View binds its subscriptions to.
const DestroyTrigger = "OnDestroy"

// ErrUnknownCommand is returned by Dispatch for a ':' line it does not
// understand.
var ErrUnknownCommand = errors.New("todo: unknown command")

// View is the host component of the list. Mount creates its input events
// and runs the Facade features until OnDestroy.
type View struct {
	facade *Facade
	binder *rxstate.Binder
	render func(Form)
	logger log.Logger

	comp   *rxstate.Component
	text   *rxstate.Event[string, string]
	add    *rxstate.Event[string, rxstate.Void]
	imp    *rxstate.Event[[]string, []string]
	remove *rxstate.Event[string, string]
}

// NewView returns an unmounted View. render is called with every state
// of the list, starting with the current one, while the View is mounted.
func NewView(f *Facade, b *rxstate.Binder, render func(Form), logger log.Logger) *View {
	if logger == nil {
		logger = log.Noop{}
	}
	return &View{facade: f, binder: b, render: render, logger: logger}
}

// Mount creates the input events and subscribes the features and the
// renderer for the lifetime of the View.
func (v *View) Mount() {
	v.comp = rxstate.NewComponent(v.binder, v, DestroyTrigger)

	v.text = rxstate.NewEvent[string, string](nil, rxstate.WithName("text"), rxstate.WithLogger(v.logger))
	v.add = rxstate.NewEvent(func(string) (rxstate.Void, error) {
		return rxstate.Void{}, v.facade.CanAdd()
	}, rxstate.WithName("add"), rxstate.WithLogger(v.logger))
	v.imp = rxstate.NewEvent[[]string, []string](nil, rxstate.WithName("import"), rxstate.WithLogger(v.logger))
	v.remove = rxstate.NewEvent(func(id string) (string, error) {
		id = strings.TrimSpace(id)
		if id == "" {
			return "", errors.New("todo: remove needs an id")
		}
		return id, nil
	}, rxstate.WithName("remove"), rxstate.WithLogger(v.logger))

	v.comp.JustSubscribe(
		v.facade.SetText(v.text.Stream()),
		v.facade.AddTodo(v.add.Stream()),
		v.facade.Import(v.imp.Stream()),
		v.facade.Remove(v.remove.Stream()),
	)
	if v.render != nil {
		rxstate.SubscribeScopedFunc[Form](v.comp, v.facade.State().Stream(), v.render)
	}
}

// OnDestroy ends every subscription made by Mount. Calling it again is a
// no-op and returns false.
func (v *View) OnDestroy() bool {
	fired := v.binder.Destroy(v, DestroyTrigger)
	if fired {
		v.logger.Info("view destroyed")
	}
	return fired
}

// Destroyed reports whether OnDestroy has run since Mount.
func (v *View) Destroyed() bool {
	return v.comp != nil && v.comp.Destroyed()
}

// SetText handles a typed text.
func (v *View) SetText(text string) error { return v.text.Handle(text) }

// Add handles the add action.
func (v *View) Add() error { return v.add.Handle(":add") }

// Import handles a batch of lines from the inbox.
func (v *View) Import(lines []string) error { return v.imp.Handle(lines) }

// Remove handles a remove action for id.
func (v *View) Remove(id string) error { return v.remove.Handle(id) }

// Dispatch applies one input line: ":add" adds, ":rm <id>" removes,
// ":quit" reports quit and anything else becomes the typed text.
func (v *View) Dispatch(line string) (quit bool, err error) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, ":") {
		return false, v.SetText(line)
	}

	cmd, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	switch cmd {
	case "add":
		return false, v.Add()
	case "rm":
		return false, v.Remove(arg)
	case "quit", "q":
		return true, nil
	default:
		return false, fmt.Errorf("%w %q", ErrUnknownCommand, cmd)
	}
}
