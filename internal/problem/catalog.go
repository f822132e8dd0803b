package problem

import (
	"embed"
	"fmt"
	"path"
	"sort"
)

//go:embed examples/*.yaml
var examples embed.FS

// Examples returns the built-in problems sorted by name.
func Examples() ([]*Problem, error) {
	entries, err := examples.ReadDir("examples")
	if err != nil {
		return nil, err
	}
	problems := make([]*Problem, 0, len(entries))
	for _, entry := range entries {
		data, err := examples.ReadFile(path.Join("examples", entry.Name()))
		if err != nil {
			return nil, err
		}
		p, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("built-in problem %s: %w", entry.Name(), err)
		}
		problems = append(problems, p)
	}
	sort.Slice(problems, func(i, j int) bool { return problems[i].Name < problems[j].Name })
	return problems, nil
}

// Example returns the built-in problems with the given names, in order.
func Example(names ...string) ([]*Problem, error) {
	all, err := Examples()
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*Problem, len(all))
	for _, p := range all {
		byName[p.Name] = p
	}
	problems := make([]*Problem, len(names))
	for i, name := range names {
		p, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown example %q", name)
		}
		problems[i] = p
	}
	return problems, nil
}
