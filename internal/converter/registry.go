package converter

import (
	"sort"
	"strings"
)

var registry = map[string]Tool{}

func Register(t Tool) {
	registry[strings.ToLower(t.Name())] = t
}

func Get(name string) (Tool, bool) {
	t, ok := registry[strings.ToLower(name)]
	return t, ok
}

// Names returns the registered tool names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
