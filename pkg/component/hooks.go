package component

import (
	"fmt"

	"github.com/vellum-ui/vellum/internal/errors"
)

// Hook is a lifecycle listener. Hooks fire synchronously in registration
// order.
type Hook func(*Component)

// ErrorHook receives failures contained at the component boundary.
type ErrorHook func(*Component, error)

// HookList is an ordered list of lifecycle listeners.
type HookList struct {
	handlers []Hook
}

// Add appends a listener. Listeners fire in registration order.
func (l *HookList) Add(h Hook) {
	l.handlers = append(l.handlers, h)
}

// Len returns the number of registered listeners.
func (l *HookList) Len() int {
	return len(l.handlers)
}

// ErrorHookList is the ordered list of error listeners.
type ErrorHookList struct {
	handlers []ErrorHook
}

// Add appends an error listener.
func (l *ErrorHookList) Add(h ErrorHook) {
	l.handlers = append(l.handlers, h)
}

// Len returns the number of registered listeners.
func (l *ErrorHookList) Len() int {
	return len(l.handlers)
}

// fire invokes every listener even if earlier ones panic. Each failure is
// recovered individually and routed to the component's error hook; one
// broken listener never starves the rest of the list.
func (l *HookList) fire(c *Component) {
	for _, h := range l.handlers {
		invokeHook(c, h)
	}
}

func invokeHook(c *Component, h Hook) {
	defer func() {
		if rec := recover(); rec != nil {
			err := errors.New("E200").WithDetail(fmt.Sprintf("component %s: %v", c.typeName, rec))
			c.routeError(err)
		}
	}()
	h(c)
}
