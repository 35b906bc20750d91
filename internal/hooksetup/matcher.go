package hooksetup

import (
	"fmt"
	"strings"
)

const commandType = "command"

// Entry is a read-only view of one hook entry
type Entry struct {
	Type    string
	Command string
}

// Group is a read-only view of one hook group
type Group struct {
	Matcher string
	Entries []Entry
}

// related reports whether any entry's command contains target
func (g Group) related(target string) bool {
	for _, e := range g.Entries {
		if strings.Contains(e.Command, target) {
			return true
		}
	}
	return false
}

// ParseGroups builds a snapshot of an event's raw group list. Missing
// matcher and command fields read as empty strings; anything else that does
// not fit the two-level hook schema is an error.
func ParseGroups(raw any) ([]Group, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("expected an array of hook groups, got %s", jsonKind(raw))
	}

	groups := make([]Group, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("group %d: expected an object, got %s", i, jsonKind(item))
		}

		var g Group
		if m, present := obj["matcher"]; present {
			s, ok := m.(string)
			if !ok {
				return nil, fmt.Errorf("group %d: matcher must be a string, got %s", i, jsonKind(m))
			}
			g.Matcher = s
		}

		rawHooks, present := obj["hooks"]
		if !present {
			return nil, fmt.Errorf("group %d: missing \"hooks\" array", i)
		}
		entries, ok := rawHooks.([]any)
		if !ok {
			return nil, fmt.Errorf("group %d: \"hooks\" must be an array, got %s", i, jsonKind(rawHooks))
		}

		g.Entries = make([]Entry, 0, len(entries))
		for j, rawEntry := range entries {
			eobj, ok := rawEntry.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("group %d entry %d: expected an object, got %s", i, j, jsonKind(rawEntry))
			}
			var e Entry
			if v, present := eobj["type"]; present {
				s, ok := v.(string)
				if !ok {
					return nil, fmt.Errorf("group %d entry %d: type must be a string, got %s", i, j, jsonKind(v))
				}
				e.Type = s
			}
			if v, present := eobj["command"]; present {
				s, ok := v.(string)
				if !ok {
					return nil, fmt.Errorf("group %d entry %d: command must be a string, got %s", i, j, jsonKind(v))
				}
				e.Command = s
			}
			g.Entries = append(g.Entries, e)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// IsExactMatch reports whether some group is exactly the one setup-hook
// would write: empty matcher, a single command entry equal to target.
func IsExactMatch(groups []Group, target string) bool {
	for _, g := range groups {
		if g.Matcher != "" || len(g.Entries) != 1 {
			continue
		}
		e := g.Entries[0]
		if e.Type == commandType && e.Command == target {
			return true
		}
	}
	return false
}

// AnyRelatedMatch reports whether any entry's command contains target.
func AnyRelatedMatch(groups []Group, target string) bool {
	for _, g := range groups {
		if g.related(target) {
			return true
		}
	}
	return false
}

// HasUnrelatedGroups reports whether some group has an entry whose command
// does not contain target. A group with no entries is not unrelated.
func HasUnrelatedGroups(groups []Group, target string) bool {
	for _, g := range groups {
		for _, e := range g.Entries {
			if !strings.Contains(e.Command, target) {
				return true
			}
		}
	}
	return false
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "number"
	}
}
