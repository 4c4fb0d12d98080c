package middlewares

// contextKey backs RequestID's request-id context key; a private type keeps
// it from colliding with keys set by unrelated packages on the same
// context.Context.
type contextKey struct{ name string }

// String returns the name of the context key.
func (c contextKey) String() string { return c.name }

// newContextKey creates a new context key with the given name.
func newContextKey(name string) *contextKey {
	return &contextKey{name: name}
}
