package tools

import (
	"strings"
	"sync"

	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/stokhos-ai/parley", "tools")

// Registry maps tool names to tools. Names are matched case-insensitively,
// and registering an existing name replaces the previous binding.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]ITool
	names  []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]ITool),
	}
}

// Register binds the tool under its name. The last registration wins.
func (r *Registry) Register(tool ITool) {
	name := tool.Name()
	key := strings.ToLower(name)

	r.mu.Lock()
	if _, exists := r.byName[key]; !exists {
		r.names = append(r.names, name)
	}
	r.byName[key] = tool
	r.mu.Unlock()

	logger.KV(xlog.INFO,
		"status", "tool_registered",
		"tool", name,
	)
}

// Lookup returns the tool registered under the given name.
func (r *Registry) Lookup(name string) (ITool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.byName[strings.ToLower(name)]
	return tool, ok
}

// Names returns the tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// Descriptions returns a JSON block describing the registered tools.
func (r *Registry) Descriptions() string {
	r.mu.RLock()
	list := make([]ITool, 0, len(r.names))
	for _, name := range r.names {
		list = append(list, r.byName[strings.ToLower(name)])
	}
	r.mu.RUnlock()
	return GetDescriptions(list...)
}
