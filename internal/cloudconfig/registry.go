package cloudconfig

import (
	"fmt"
	"sort"
)

// Kind enumerates the directives this engine knows about.
type Kind int

// Directive kinds. KindUnknown is returned for names outside the set.
const (
	KindUnknown Kind = iota
	KindUsers
	KindSetUserPassword
	KindWriteFiles
	KindSetHostname
)

var kindNames = map[Kind]string{
	KindUsers:           "users",
	KindSetUserPassword: "set_user_password",
	KindWriteFiles:      "write_files",
	KindSetHostname:     "set_hostname",
}

// String returns the directive name of k.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind maps a directive name to its kind.
func ParseKind(name string) Kind {
	for k, n := range kindNames {
		if n == name {
			return k
		}
	}
	return KindUnknown
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := range kindNames {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Handler executes one directive.
type Handler interface {
	Execute(ctx *Context, payload any) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx *Context, payload any) error

// Execute calls f.
func (f HandlerFunc) Execute(ctx *Context, payload any) error {
	return f(ctx, payload)
}

// Entry binds a handler to a directive kind.
type Entry struct {
	Kind    Kind
	Handler Handler
}

// Registry is an immutable mapping from directive kind to handler.
type Registry struct {
	handlers map[Kind]Handler
}

// NewRegistry builds a registry. Each kind may be bound once.
func NewRegistry(entries ...Entry) (*Registry, error) {
	handlers := make(map[Kind]Handler, len(entries))
	for _, e := range entries {
		if e.Kind == KindUnknown {
			return nil, fmt.Errorf("cannot register a handler for an unknown directive kind")
		}
		if e.Handler == nil {
			return nil, fmt.Errorf("nil handler for directive %s", e.Kind)
		}
		if _, dup := handlers[e.Kind]; dup {
			return nil, fmt.Errorf("directive %s registered more than once", e.Kind)
		}
		handlers[e.Kind] = e.Handler
	}
	return &Registry{handlers: handlers}, nil
}

// Lookup returns the handler registered for a directive name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	kind := ParseKind(name)
	if kind == KindUnknown || r == nil {
		return nil, false
	}
	h, ok := r.handlers[kind]
	return h, ok
}
