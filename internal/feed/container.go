package feed

import (
	"errors"
	"html/template"
)

var ErrContainerNotFound = errors.New("container not found")

// Container is an in-memory Surface holding a single element. It keeps the
// sequence of states it went through.
type Container struct {
	id     string
	states []State
	markup template.HTML
}

var _ Surface = (*Container)(nil)

func NewContainer(id string) *Container {
	return &Container{id: id}
}

func (c *Container) Commit(containerID string, state State, markup template.HTML) error {
	if containerID != c.id {
		return ErrContainerNotFound
	}
	c.states = append(c.states, state)
	c.markup = markup
	return nil
}

// State returns the latest committed state, StateLoading if nothing was committed.
func (c *Container) State() State {
	if len(c.states) == 0 {
		return StateLoading
	}
	return c.states[len(c.states)-1]
}

func (c *Container) History() []State {
	return append([]State(nil), c.states...)
}

func (c *Container) Markup() template.HTML {
	return c.markup
}
