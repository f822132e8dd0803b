package container

import (
	"fmt"

	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/settings"
)

// Manager owns a fixed number of ObjectsContainers holding independent
// realizations of the same configuration. Every operation that touches
// the containers must run through Execute, which resamples all containers
// and retries when the operation finds them inconsistent.
type Manager struct {
	settings         settings.Settings
	tracer           geogen.Tracer
	layout           geogen.Layout
	looseObjects     []*geogen.ConfigurationObject
	looseConstructor geogen.LooseObjectsConstructor

	// recipe lists the constructed objects accepted so far, in order. A
	// container is rebuilt by sampling the loose objects and replaying it.
	recipe     []*geogen.ConfigurationObject
	containers []*ObjectsContainer
	generation int
}

type Option func(m *Manager) error

func WithSettings(s settings.Settings) Option {
	return func(m *Manager) error {
		if err := s.Validate(); err != nil {
			return err
		}
		m.settings = s
		return nil
	}
}

func WithTracer(t geogen.Tracer) Option {
	return func(m *Manager) error {
		m.tracer = t
		return nil
	}
}

var defaults = []Option{
	func(m *Manager) error {
		if m.settings.NumberOfContainers == 0 {
			m.settings = settings.Default()
		}
		return nil
	},
	func(m *Manager) error {
		if m.tracer == nil {
			m.tracer = geogen.DefaultTracer{}
		}
		return nil
	},
}

// NewManager samples the loose objects of a layout into every container.
func NewManager(layout geogen.Layout, looseObjects []*geogen.ConfigurationObject, looseConstructor geogen.LooseObjectsConstructor, options ...Option) (*Manager, error) {
	m := &Manager{
		layout:           layout,
		looseObjects:     append([]*geogen.ConfigurationObject(nil), looseObjects...),
		looseConstructor: looseConstructor,
	}
	for _, option := range append(append([]Option(nil), options...), defaults...) {
		if err := option(m); err != nil {
			return nil, err
		}
	}

	m.containers = make([]*ObjectsContainer, m.settings.NumberOfContainers)
	for i := range m.containers {
		m.containers[i] = NewObjectsContainer(m.settings.AnalyticPrecision())
	}
	built := false
	err := m.Execute(func() error {
		// a reconstruction has already rebuilt every container
		if built {
			return nil
		}
		built = true
		return m.buildAll()
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) Settings() settings.Settings {
	return m.settings
}

func (m *Manager) Tracer() geogen.Tracer {
	return m.tracer
}

// Containers returns the containers in a fixed order.
func (m *Manager) Containers() []*ObjectsContainer {
	return append([]*ObjectsContainer(nil), m.containers...)
}

func (m *Manager) Len() int {
	return len(m.containers)
}

// Index returns the position of c among the manager's containers, or -1.
func (m *Manager) Index(c *ObjectsContainer) int {
	for i, candidate := range m.containers {
		if candidate == c {
			return i
		}
	}
	return -1
}

// Generation is incremented every time all containers are resampled.
// Structures derived from the container values must be rebuilt when it
// changes.
func (m *Manager) Generation() int {
	return m.generation
}

// Objects returns the loose objects followed by the accepted constructed
// objects.
func (m *Manager) Objects() []*geogen.ConfigurationObject {
	all := append([]*geogen.ConfigurationObject(nil), m.looseObjects...)
	return append(all, m.recipe...)
}

// Execute runs op. If op reports inconsistent containers, all containers
// are resampled and op is retried, at most
// MaximalAttemptsToReconstructAllContainers times. Other errors are
// returned unchanged.
func (m *Manager) Execute(op func() error) error {
	err := op()
	for reconstructions := 0; err != nil && geogen.IsInconsistency(err); {
		if reconstructions == m.settings.MaximalAttemptsToReconstructAllContainers {
			m.tracer.ReconstructionExhausted(err)
			return fmt.Errorf("%w: %w", ErrReconstructionExhausted, err)
		}
		reconstructions++
		m.tracer.ContainersReconstructed(reconstructions, err)
		if err = m.reconstruct(); err == nil {
			err = op()
		}
	}
	return err
}

// ExecuteAndResolvePossibleInconsistencies is Execute for operations that
// produce a value.
func ExecuteAndResolvePossibleInconsistencies[T any](m *Manager, op func() (T, error)) (T, error) {
	var result T
	err := m.Execute(func() error {
		var err error
		result, err = op()
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// RemoveLast forgets the most recently accepted constructed object.
func (m *Manager) RemoveLast() (*geogen.ConfigurationObject, error) {
	if len(m.recipe) == 0 {
		return nil, fmt.Errorf("no constructed object to remove")
	}
	last := m.recipe[len(m.recipe)-1]
	for _, c := range m.containers {
		if err := c.Remove(last); err != nil {
			return nil, err
		}
	}
	m.recipe = m.recipe[:len(m.recipe)-1]
	return last, nil
}

func (m *Manager) accept(object *geogen.ConfigurationObject) {
	m.recipe = append(m.recipe, object)
}

func (m *Manager) reconstruct() error {
	m.generation++
	return m.buildAll()
}

func (m *Manager) buildAll() error {
	for i := range m.containers {
		if err := m.rebuild(i); err != nil {
			return err
		}
	}
	return nil
}

// rebuild builds container index from scratch, resampling only that
// container up to MaximalAttemptsToReconstructOneContainer times.
func (m *Manager) rebuild(index int) error {
	for attempt := 0; ; attempt++ {
		err := m.build(m.containers[index])
		if err == nil || !geogen.IsInconsistency(err) {
			return err
		}
		if attempt == m.settings.MaximalAttemptsToReconstructOneContainer {
			return err
		}
		m.tracer.ContainerReconstructed(index, attempt+1, err)
	}
}

func (m *Manager) build(c *ObjectsContainer) error {
	c.Reset()
	values, err := m.looseConstructor.Construct(m.layout, m.looseObjects)
	if err != nil {
		return fmt.Errorf("sampling loose objects: %w", err)
	}
	if len(values) != len(m.looseObjects) {
		return fmt.Errorf("layout %s produced %d values for %d loose objects", m.layout, len(values), len(m.looseObjects))
	}
	for i, object := range m.looseObjects {
		added, err := c.Add(values[i], object)
		if err != nil {
			return err
		}
		if added != object {
			return geogen.Inconsistency("loose objects %s and %s coincide", added, object)
		}
	}
	for _, object := range m.recipe {
		value, ok, err := c.construct(object)
		if err != nil {
			return err
		}
		if !ok {
			return geogen.Inconsistency("object %s cannot be constructed in a resampled container", object)
		}
		added, err := c.Add(value, object)
		if err != nil {
			return err
		}
		if added != object {
			return geogen.Inconsistency("object %s coincides with %s in a resampled container", object, added)
		}
	}
	return nil
}
