package action

import (
	"context"
	"fmt"

	"github.com/vasptech/vaspx-actions/internal/catalog"
	domerrors "github.com/vasptech/vaspx-actions/internal/errors"
)

// Registry maps action names to handlers and dispatches calls.
// It is built once at start-up and read concurrently afterwards.
type Registry struct {
	actions []Action
	byName  map[string]Action
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make([]Action, 0),
		byName:  make(map[string]Action),
	}
}

// NewDefaultRegistry registers the five VaspX actions backed by store.
func NewDefaultRegistry(store *catalog.Store) *Registry {
	r := NewRegistry()
	r.MustRegister(NewCompareProducts(store))
	r.MustRegister(NewIntelligentResponse(store))
	r.MustRegister(NewExtractContext())
	r.MustRegister(NewFallbackWithContext(store))
	r.MustRegister(NewProvideRecommendation(store))
	return r
}

// Register adds an action. Names must be unique.
func (r *Registry) Register(a Action) error {
	name := a.Name()
	if name == "" {
		return fmt.Errorf("register action: %w", domerrors.NewValidationError("name", "must not be empty"))
	}
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("register action %q: %w", name, domerrors.NewValidationError("name", "already registered"))
	}
	r.actions = append(r.actions, a)
	r.byName[name] = a
	return nil
}

// MustRegister is Register for start-up wiring; it panics on a duplicate.
func (r *Registry) MustRegister(a Action) {
	if err := r.Register(a); err != nil {
		panic(err)
	}
}

// Get returns the action registered under name.
func (r *Registry) Get(name string) (Action, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.actions))
	for i, a := range r.actions {
		names[i] = a.Name()
	}
	return names
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	return len(r.actions)
}

// Dispatch runs the named action. An unregistered name yields an error
// matching errors.ErrUnknownAction.
func (r *Registry) Dispatch(ctx context.Context, name string, req Request) (Outcome, error) {
	a, ok := r.Get(name)
	if !ok {
		return Outcome{}, fmt.Errorf("dispatch %q: %w", name, domerrors.ErrUnknownAction)
	}
	return a.Run(ctx, req)
}
