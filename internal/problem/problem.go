// Package problem reads theorem discovery problems from YAML and runs
// them through a search.
//
// A problem names a layout and its loose points, the objects of the
// starting configuration and the extensions to try one by one:
//
//	name: centroid
//	layout: Triangle
//	loose: [A, B, C]
//	objects:
//	  - {name: Ma, construction: Midpoint, args: [B, C]}
//	extensions:
//	  - {name: Mb, construction: Midpoint, args: [A, C]}
package problem

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/construction"
)

type Step struct {
	Name         string   `yaml:"name"`
	Construction string   `yaml:"construction"`
	Args         []string `yaml:"args"`
}

type Problem struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Layout      geogen.Layout `yaml:"layout"`
	Loose       []string      `yaml:"loose"`
	Objects     []Step        `yaml:"objects"`
	Extensions  []Step        `yaml:"extensions"`
}

// Parse reads a problem and checks that every name is defined once and
// before it is used.
func Parse(data []byte) (*Problem, error) {
	var p Problem
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse problem: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func (p *Problem) Validate() error {
	var errs []string
	if p.Name == "" {
		errs = append(errs, "name is required")
	}
	signature := p.Layout.Signature()
	if signature == nil {
		errs = append(errs, fmt.Sprintf("unknown layout %q", p.Layout))
	} else if len(signature) != len(p.Loose) {
		errs = append(errs, fmt.Sprintf("layout %s expects %d loose objects, got %d", p.Layout, len(signature), len(p.Loose)))
	}

	defined := make(map[string]struct{})
	define := func(name string) {
		if name == "" {
			errs = append(errs, "object name is required")
			return
		}
		if _, ok := defined[name]; ok {
			errs = append(errs, fmt.Sprintf("object %s is defined twice", name))
		}
		defined[name] = struct{}{}
	}
	for _, name := range p.Loose {
		define(name)
	}
	for _, step := range append(append([]Step(nil), p.Objects...), p.Extensions...) {
		if _, ok := constructions[step.Construction]; !ok {
			errs = append(errs, fmt.Sprintf("object %s: unknown construction %q", step.Name, step.Construction))
		}
		for _, arg := range step.Args {
			if _, ok := defined[arg]; !ok {
				errs = append(errs, fmt.Sprintf("object %s: argument %s is not defined before it", step.Name, arg))
			}
		}
		define(step.Name)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%d errors encountered: %s", len(errs), strings.Join(errs, ", "))
}

var constructions = func() map[string]geogen.Construction {
	byName := make(map[string]geogen.Construction)
	for _, c := range construction.All() {
		byName[c.Name()] = c
	}
	return byName
}()

// Build creates the starting configuration and the extension objects.
// Every call allocates fresh objects.
func (p *Problem) Build() (*geogen.Configuration, []*geogen.ConfigurationObject, error) {
	ids := geogen.NewIDAllocator()
	byName := make(map[string]*geogen.ConfigurationObject)

	signature := p.Layout.Signature()
	if len(signature) != len(p.Loose) {
		return nil, nil, fmt.Errorf("layout %s expects %d loose objects, got %d", p.Layout, len(signature), len(p.Loose))
	}
	loose := make([]*geogen.ConfigurationObject, len(p.Loose))
	for i, name := range p.Loose {
		loose[i] = geogen.NewLooseObject(ids, signature[i]).SetName(name)
		byName[name] = loose[i]
	}

	build := func(steps []Step) ([]*geogen.ConfigurationObject, error) {
		objects := make([]*geogen.ConfigurationObject, len(steps))
		for i, step := range steps {
			c, ok := constructions[step.Construction]
			if !ok {
				return nil, fmt.Errorf("object %s: unknown construction %q", step.Name, step.Construction)
			}
			args := make([]*geogen.ConfigurationObject, len(step.Args))
			for j, arg := range step.Args {
				if args[j], ok = byName[arg]; !ok {
					return nil, fmt.Errorf("object %s: unknown argument %s", step.Name, arg)
				}
			}
			object, err := geogen.NewConstructedObject(ids, c, args...)
			if err != nil {
				return nil, fmt.Errorf("object %s: %w", step.Name, err)
			}
			objects[i] = object.SetName(step.Name)
			byName[step.Name] = objects[i]
		}
		return objects, nil
	}

	constructed, err := build(p.Objects)
	if err != nil {
		return nil, nil, err
	}
	configuration, err := geogen.NewConfiguration(p.Layout, loose, constructed...)
	if err != nil {
		return nil, nil, err
	}
	extensions, err := build(p.Extensions)
	if err != nil {
		return nil, nil, err
	}
	return configuration, extensions, nil
}
