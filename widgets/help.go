package widgets

import (
	"fmt"
	"strings"
)

// RenderKeyHelp formats key bindings on one line: "q quit  space pause"
func RenderKeyHelp(keys []KeyBinding) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s %s", k.Key, k.Desc)
	}
	return strings.Join(parts, "  ")
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
