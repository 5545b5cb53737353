// Package todo is the to-do list feature set driven through rxstate: a
// Facade owning the list state and its pipelines, and a View host that
// wires input events to the Facade for its own lifetime.
package todo

import (
	"strconv"
	"sync"
)

// Todo is one entry of the list.
type Todo struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Form is the state behind the list view: the entries and the text being
// typed.
type Form struct {
	Todos []Todo `json:"todos" yaml:"todos"`
	Text  string `json:"text" yaml:"text"`
}

// Creator hands out sequential ids starting at "1".
type Creator struct {
	mu    sync.Mutex
	count int
}

// Create returns a new Todo with the next id.
func (c *Creator) Create(text string) Todo {
	c.mu.Lock()
	c.count++
	id := c.count
	c.mu.Unlock()
	return Todo{ID: strconv.Itoa(id), Text: text}
}
