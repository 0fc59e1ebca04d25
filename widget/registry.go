package widget

import (
	"fmt"
	"sync"
)

// Registry maps widget instance ids to their controllers. Controllers share
// no state through it.
type Registry struct {
	mu          sync.RWMutex
	controllers map[string]*Controller
	order       []string
}

func NewRegistry() *Registry {
	return &Registry{controllers: make(map[string]*Controller)}
}

func (r *Registry) Register(id string, c *Controller) error {
	if id == "" {
		return fmt.Errorf("widget id is empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.controllers[id]; exists {
		return fmt.Errorf("widget %q already registered", id)
	}
	r.controllers[id] = c
	r.order = append(r.order, id)
	return nil
}

func (r *Registry) Get(id string) (*Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.controllers[id]
	return c, ok
}

// IDs lists the registered ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Remove closes and forgets the controller for id.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	c, ok := r.controllers[id]
	if ok {
		delete(r.controllers, id)
		for i, v := range r.order {
			if v == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	r.mu.Unlock()

	if ok {
		c.Close()
	}
}

// CloseAll cancels every controller's in-flight request.
func (r *Registry) CloseAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		r.controllers[id].Close()
	}
}
