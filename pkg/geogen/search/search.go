// Package search drives theorem discovery for one configuration: it finds
// the theorems of the starting configuration and then the new theorems of
// every object added to it.
package search

import (
	"errors"
	"fmt"
	"time"

	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/analyzer"
	"github.com/operator-framework/geogen/pkg/geogen/construction"
	"github.com/operator-framework/geogen/pkg/geogen/container"
	"github.com/operator-framework/geogen/pkg/geogen/contextual"
	"github.com/operator-framework/geogen/pkg/geogen/settings"
	"github.com/operator-framework/geogen/pkg/geogen/theorem"
)

var ErrNothingToBacktrack = errors.New("no extension to backtrack")

// ErrAbandoned is returned by every operation of a search whose containers
// could not be made consistent again. Errors returned with it also match
// the cause, usually container.ErrReconstructionExhausted.
var ErrAbandoned = errors.New("search abandoned")

// InvalidConfiguration is returned when the starting configuration has an
// object that cannot be constructed or duplicates another one.
type InvalidConfiguration container.ConstructionData

func (e InvalidConfiguration) Error() string {
	if e.Inconstructible != nil {
		return fmt.Sprintf("invalid configuration: %s cannot be constructed", e.Inconstructible.Describe())
	}
	return fmt.Sprintf("invalid configuration: %s duplicates %s", e.Duplicate.Newer.Describe(), e.Duplicate.Older)
}

type Search struct {
	settings         settings.Settings
	tracer           geogen.Tracer
	looseConstructor geogen.LooseObjectsConstructor
	finders          []theorem.Finder
	quorum           analyzer.Quorum

	configuration *geogen.Configuration
	manager       *container.Manager
	context       *contextual.Container
	analyzer      *analyzer.Analyzer
	abandoned     error
}

type Option func(s *Search) error

func WithSettings(s settings.Settings) Option {
	return func(search *Search) error {
		if err := s.Validate(); err != nil {
			return err
		}
		search.settings = s
		return nil
	}
}

func WithTracer(t geogen.Tracer) Option {
	return func(s *Search) error {
		s.tracer = t
		return nil
	}
}

func WithLooseObjectsConstructor(c geogen.LooseObjectsConstructor) Option {
	return func(s *Search) error {
		s.looseConstructor = c
		return nil
	}
}

func WithFinders(finders ...theorem.Finder) Option {
	return func(s *Search) error {
		s.finders = finders
		return nil
	}
}

func WithQuorum(q analyzer.Quorum) Option {
	return func(s *Search) error {
		s.quorum = q
		return nil
	}
}

var defaults = []Option{
	func(s *Search) error {
		if s.settings.NumberOfContainers == 0 {
			s.settings = settings.Default()
		}
		return nil
	},
	func(s *Search) error {
		if s.tracer == nil {
			s.tracer = geogen.DefaultTracer{}
		}
		return nil
	},
	func(s *Search) error {
		if s.looseConstructor == nil {
			seed := s.settings.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			s.looseConstructor = construction.NewRandomLayoutConstructor(seed)
		}
		return nil
	},
	func(s *Search) error {
		if s.finders == nil {
			s.finders = theorem.All()
		}
		return nil
	},
}

// New constructs configuration in a fresh set of containers.
func New(configuration *geogen.Configuration, options ...Option) (*Search, error) {
	s := &Search{configuration: configuration}
	for _, option := range append(append([]Option(nil), options...), defaults...) {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	constructor := container.NewConstructor(s.looseConstructor, container.WithSettings(s.settings), container.WithTracer(s.tracer))
	manager, data, err := constructor.Construct(configuration)
	if err != nil {
		return nil, err
	}
	if !data.Valid() {
		return nil, InvalidConfiguration(data)
	}
	s.manager = manager

	if s.context, err = contextual.New(configuration, manager); err != nil {
		return nil, err
	}

	analyzerOptions := []analyzer.Option{analyzer.WithTracer(s.tracer)}
	if s.quorum != nil {
		analyzerOptions = append(analyzerOptions, analyzer.WithQuorum(s.quorum))
	}
	if s.analyzer, err = analyzer.New(manager, analyzerOptions...); err != nil {
		return nil, err
	}
	return s, nil
}

// Configuration returns the starting configuration with every extension
// applied.
func (s *Search) Configuration() *geogen.Configuration {
	return s.configuration
}

func (s *Search) Manager() *container.Manager {
	return s.manager
}

func (s *Search) Context() *contextual.Container {
	return s.context
}

// Abandoned returns the error that ended the search, or nil while it can
// still be extended.
func (s *Search) Abandoned() error {
	return s.abandoned
}

// check fails fast once the search was abandoned and abandons it when err
// shows the containers ran out of reconstructions.
func (s *Search) check(err error) error {
	if s.abandoned != nil {
		return fmt.Errorf("%w: %w", ErrAbandoned, s.abandoned)
	}
	if err != nil && errors.Is(err, container.ErrReconstructionExhausted) {
		s.abandoned = err
		return fmt.Errorf("%w: %w", ErrAbandoned, err)
	}
	return err
}

// Initial returns the theorems of the current configuration.
func (s *Search) Initial() ([]geogen.Theorem, error) {
	if err := s.check(nil); err != nil {
		return nil, err
	}
	theorems, err := s.analyzer.Analyze(theorem.FindAll(s.context, s.finders...))
	return theorems, s.check(err)
}

// Outcome describes one extension attempt. At most one of Theorems,
// Inconstructible and Duplicate is set.
type Outcome struct {
	Object          *geogen.ConfigurationObject
	Theorems        []geogen.Theorem
	Inconstructible bool
	Duplicate       *geogen.ConfigurationObject
}

// Extend adds object to the configuration and returns the theorems that
// involve it. An object that cannot be constructed or duplicates an
// existing one is not added. Once the containers cannot be reconstructed
// any more the search is abandoned and every later call fails with
// ErrAbandoned.
func (s *Search) Extend(object *geogen.ConfigurationObject) (Outcome, error) {
	if err := s.check(nil); err != nil {
		return Outcome{Object: object}, err
	}
	outcome, err := s.extend(object)
	return outcome, s.check(err)
}

func (s *Search) extend(object *geogen.ConfigurationObject) (Outcome, error) {
	outcome := Outcome{Object: object}
	extended, err := s.configuration.With(object)
	if err != nil {
		return outcome, err
	}
	examination, err := s.manager.Examine(object)
	if err != nil {
		return outcome, err
	}
	if !examination.CanBeConstructed {
		outcome.Inconstructible = true
		return outcome, nil
	}
	if examination.Duplicate != nil {
		outcome.Duplicate = examination.Duplicate
		return outcome, nil
	}

	if err := s.context.Add(object); err != nil {
		if _, rerr := s.manager.RemoveLast(); rerr != nil {
			return outcome, fmt.Errorf("%w (while rolling back: %v)", err, rerr)
		}
		return outcome, err
	}
	s.configuration = extended

	if outcome.Theorems, err = s.analyzer.Analyze(theorem.FindNew(s.context, s.finders...)); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// Backtrack removes the most recently added object.
func (s *Search) Backtrack() (*geogen.ConfigurationObject, error) {
	if err := s.check(nil); err != nil {
		return nil, err
	}
	removed, err := s.backtrack()
	return removed, s.check(err)
}

func (s *Search) backtrack() (*geogen.ConfigurationObject, error) {
	if _, err := s.context.RemoveLast(); err != nil {
		if errors.Is(err, contextual.ErrNothingToRemove) {
			return nil, ErrNothingToBacktrack
		}
		return nil, err
	}
	removed, err := s.manager.RemoveLast()
	if err != nil {
		return nil, err
	}
	configuration, err := s.configuration.WithoutLast()
	if err != nil {
		return nil, err
	}
	s.configuration = configuration
	return removed, nil
}
