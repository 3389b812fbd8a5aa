package terra

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Filter gates an entity against a complementary selection by id. The
// zero value passes everything; Allow admits only the listed ids; Deny
// admits everything but the listed ids.
//
// Catalog syntax: absent for pass-through, or a mapping with a single
// `allow:` or `deny:` id list.
type Filter struct {
	allow bool
	ids   map[string]struct{}
}

// Allow builds a filter admitting only the given ids.
func Allow(ids ...string) Filter {
	return Filter{allow: true, ids: idSet(ids)}
}

// Deny builds a filter rejecting the given ids.
func Deny(ids ...string) Filter {
	return Filter{ids: idSet(ids)}
}

// Check reports whether the filter admits the given id.
func (f Filter) Check(id string) bool {
	if f.ids == nil {
		return true
	}
	_, listed := f.ids[id]
	if f.allow {
		return listed
	}
	return !listed
}

func (f Filter) String() string {
	if f.ids == nil {
		return "pass"
	}
	ids := make([]string, 0, len(f.ids))
	for id := range f.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	kind := "deny"
	if f.allow {
		kind = "allow"
	}
	return fmt.Sprintf("%s(%s)", kind, strings.Join(ids, " "))
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *Filter) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Allow []string `yaml:"allow"`
		Deny  []string `yaml:"deny"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	switch {
	case raw.Allow != nil && raw.Deny != nil:
		return fmt.Errorf("line %d: filter cannot both allow and deny", node.Line)
	case raw.Allow != nil:
		*f = Allow(raw.Allow...)
	case raw.Deny != nil:
		*f = Deny(raw.Deny...)
	default:
		return fmt.Errorf("line %d: filter needs an allow or deny list", node.Line)
	}
	return nil
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
