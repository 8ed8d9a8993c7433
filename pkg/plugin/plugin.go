// Package plugin defines the boundary between the host configuration engine
// and the directive handlers it drives.
package plugin

// Plugin handles one or more named directives
type Plugin interface {
	// CanHandle reports whether the plugin recognizes the directive
	CanHandle(directive string) bool

	// Handle runs the directive over its data items and reports success.
	// Callers only invoke it after a positive CanHandle.
	Handle(directive string, items []string) bool
}

// Context is what the host exposes to plugins
type Context interface {
	// BaseDirectory is the working directory for commands
	BaseDirectory() string

	// Defaults returns caller-supplied option overrides keyed by directive
	Defaults() map[string]map[string]interface{}
}

// StaticContext is an immutable Context
type StaticContext struct {
	baseDir  string
	defaults map[string]map[string]interface{}
}

// NewContext creates a context rooted at baseDir with the given defaults.
// The defaults are copied, so later changes by the caller are not seen.
func NewContext(baseDir string, defaults map[string]map[string]interface{}) *StaticContext {
	return &StaticContext{
		baseDir:  baseDir,
		defaults: copyDefaults(defaults),
	}
}

// BaseDirectory implements Context
func (c *StaticContext) BaseDirectory() string {
	return c.baseDir
}

// Defaults implements Context. The returned map is a copy.
func (c *StaticContext) Defaults() map[string]map[string]interface{} {
	return copyDefaults(c.defaults)
}

// WithDefaults returns a new context with the defaults replaced
func (c *StaticContext) WithDefaults(defaults map[string]map[string]interface{}) *StaticContext {
	return NewContext(c.baseDir, defaults)
}

func copyDefaults(in map[string]map[string]interface{}) map[string]map[string]interface{} {
	out := make(map[string]map[string]interface{}, len(in))
	for directive, opts := range in {
		inner := make(map[string]interface{}, len(opts))
		for k, v := range opts {
			inner[k] = v
		}
		out[directive] = inner
	}
	return out
}

var _ Context = (*StaticContext)(nil)
