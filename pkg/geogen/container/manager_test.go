package container_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/analytic"
	"github.com/operator-framework/geogen/pkg/geogen/construction"
	"github.com/operator-framework/geogen/pkg/geogen/container"
	"github.com/operator-framework/geogen/pkg/geogen/settings"
)

func settingsWith(mutate func(s *settings.Settings)) settings.Settings {
	s := settings.Default()
	mutate(&s)
	return s
}

var _ = Describe("Manager", func() {
	var (
		ids    *geogen.IDAllocator
		tracer *recordingTracer
	)

	BeforeEach(func() {
		ids = geogen.NewIDAllocator()
		tracer = &recordingTracer{}
	})

	triangle := func() []*geogen.ConfigurationObject {
		return []*geogen.ConfigurationObject{
			geogen.NewLooseObject(ids, geogen.PointType).SetName("A"),
			geogen.NewLooseObject(ids, geogen.PointType).SetName("B"),
			geogen.NewLooseObject(ids, geogen.PointType).SetName("C"),
		}
	}

	twoPoints := func() []*geogen.ConfigurationObject {
		return []*geogen.ConfigurationObject{
			geogen.NewLooseObject(ids, geogen.PointType).SetName("A"),
			geogen.NewLooseObject(ids, geogen.PointType).SetName("B"),
		}
	}

	It("fills every container with the loose objects", func() {
		loose := triangle()
		m, err := container.NewManager(geogen.Triangle, loose, construction.NewRandomLayoutConstructor(1),
			container.WithSettings(settingsWith(func(s *settings.Settings) { s.NumberOfContainers = 4 })))
		Expect(err).ToNot(HaveOccurred())
		Expect(m.Len()).To(Equal(4))
		for _, c := range m.Containers() {
			Expect(c.Len()).To(Equal(3))
			for _, object := range loose {
				Expect(c.Contains(object)).To(BeTrue())
			}
		}
		Expect(m.Generation()).To(BeZero())
	})

	It("rejects invalid settings", func() {
		_, err := container.NewManager(geogen.Triangle, triangle(), construction.NewRandomLayoutConstructor(1),
			container.WithSettings(settingsWith(func(s *settings.Settings) { s.NumberOfContainers = 0 })))
		Expect(err).To(HaveOccurred())
	})

	It("resamples a single container whose loose objects coincide", func() {
		loose := triangle()
		degenerate := sample(pt(0, 0), pt(0, 0), pt(1, 3))
		good := sample(pt(0, 0), pt(4, 0), pt(1, 3))
		other := sample(pt(1, 1), pt(5, 0), pt(2, 4))
		looseConstructor := construction.NewSequenceConstructor(degenerate, good, other)

		m, err := container.NewManager(geogen.Triangle, loose, looseConstructor,
			container.WithTracer(tracer),
			container.WithSettings(settingsWith(func(s *settings.Settings) { s.NumberOfContainers = 2 })))
		Expect(err).ToNot(HaveOccurred())
		Expect(tracer.containerReconstructed).To(Equal([]int{0}))
		Expect(tracer.containersReconstructed).To(BeZero())
		Expect(looseConstructor.Calls()).To(Equal(3))

		b, err := container.Get[analytic.Point](m.Containers()[0], loose[1])
		Expect(err).ToNot(HaveOccurred())
		Expect(b).To(Equal(pt(4, 0)))
	})

	It("resamples all containers once a single container runs out of attempts", func() {
		degenerate := sample(pt(0, 0), pt(0, 0), pt(1, 3))
		good := sample(pt(0, 0), pt(4, 0), pt(1, 3))
		looseConstructor := construction.NewSequenceConstructor(degenerate, good, good)

		m, err := container.NewManager(geogen.Triangle, triangle(), looseConstructor,
			container.WithTracer(tracer),
			container.WithSettings(settingsWith(func(s *settings.Settings) {
				s.NumberOfContainers = 2
				s.MaximalAttemptsToReconstructOneContainer = 0
			})))
		Expect(err).ToNot(HaveOccurred())
		Expect(tracer.containerReconstructed).To(BeEmpty())
		Expect(tracer.containersReconstructed).To(Equal(1))
		Expect(m.Generation()).To(Equal(1))
	})

	Describe("Execute", func() {
		var m *container.Manager

		BeforeEach(func() {
			var err error
			m, err = container.NewManager(geogen.Triangle, triangle(), construction.NewRandomLayoutConstructor(7),
				container.WithTracer(tracer),
				container.WithSettings(settingsWith(func(s *settings.Settings) { s.MaximalAttemptsToReconstructAllContainers = 4 })))
			Expect(err).ToNot(HaveOccurred())
		})

		It("gives up after the configured number of reconstructions", func() {
			calls := 0
			err := m.Execute(func() error {
				calls++
				return geogen.Inconsistency("always")
			})
			Expect(err).To(MatchError(container.ErrReconstructionExhausted))
			Expect(geogen.IsInconsistency(err)).To(BeTrue())
			Expect(calls).To(Equal(5))
			Expect(tracer.containersReconstructed).To(Equal(4))
			Expect(tracer.exhausted).To(Equal(1))
			Expect(m.Generation()).To(Equal(4))
		})

		It("retries until the operation succeeds", func() {
			calls := 0
			err := m.Execute(func() error {
				calls++
				if calls < 3 {
					return geogen.Inconsistency("not yet")
				}
				return nil
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(tracer.containersReconstructed).To(Equal(2))
			Expect(tracer.exhausted).To(BeZero())
		})

		It("does not retry other errors", func() {
			failure := errors.New("boom")
			calls := 0
			err := m.Execute(func() error {
				calls++
				return failure
			})
			Expect(err).To(MatchError(failure))
			Expect(calls).To(Equal(1))
			Expect(m.Generation()).To(BeZero())
		})

		It("passes through produced values", func() {
			value, err := container.ExecuteAndResolvePossibleInconsistencies(m, func() (int, error) {
				return 42, nil
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(value).To(Equal(42))
		})
	})

	Describe("Examine", func() {
		It("builds the centroid as the intersection of two medians", func() {
			loose := triangle()
			a, b, c := loose[0], loose[1], loose[2]
			m, err := container.NewManager(geogen.Triangle, loose, construction.NewRandomLayoutConstructor(3))
			Expect(err).ToNot(HaveOccurred())

			m1, err := geogen.NewConstructedObject(ids, construction.Midpoint, a, b)
			Expect(err).ToNot(HaveOccurred())
			m2, err := geogen.NewConstructedObject(ids, construction.Midpoint, a, c)
			Expect(err).ToNot(HaveOccurred())
			g, err := geogen.NewConstructedObject(ids, construction.IntersectionOfLinesFromPoints, b, m2, c, m1)
			Expect(err).ToNot(HaveOccurred())

			for _, object := range []*geogen.ConfigurationObject{m1, m2, g} {
				examination, err := m.Examine(object)
				Expect(err).ToNot(HaveOccurred())
				Expect(examination.CanBeConstructed).To(BeTrue())
				Expect(examination.Duplicate).To(BeNil())
			}

			prec := m.Settings().AnalyticPrecision()
			for _, ctr := range m.Containers() {
				pa, _ := container.Get[analytic.Point](ctr, a)
				pb, _ := container.Get[analytic.Point](ctr, b)
				pc, _ := container.Get[analytic.Point](ctr, c)
				centroid, err := container.Get[analytic.Point](ctr, g)
				Expect(err).ToNot(HaveOccurred())
				expected := pa.Add(pb).Add(pc).Scale(1.0 / 3)
				Expect(centroid.Equal(expected, prec)).To(BeTrue())
			}

			again, err := geogen.NewConstructedObject(ids, construction.Midpoint, a, b)
			Expect(err).ToNot(HaveOccurred())
			examination, err := m.Examine(again)
			Expect(err).ToNot(HaveOccurred())
			Expect(examination.CanBeConstructed).To(BeTrue())
			Expect(examination.Duplicate).To(BeIdenticalTo(m1))
			Expect(m.Objects()).To(HaveLen(6))
		})

		It("reports an object that cannot be constructed anywhere", func() {
			loose := triangle()
			m, err := container.NewManager(geogen.Triangle, loose, construction.NewRandomLayoutConstructor(5))
			Expect(err).ToNot(HaveOccurred())

			ab, _ := geogen.NewConstructedObject(ids, construction.LineFromPoints, loose[0], loose[1])
			parallel, _ := geogen.NewConstructedObject(ids, construction.ParallelLine, loose[2], ab)
			never, _ := geogen.NewConstructedObject(ids, construction.IntersectionOfLines, ab, parallel)
			for _, object := range []*geogen.ConfigurationObject{ab, parallel} {
				_, err := m.Examine(object)
				Expect(err).ToNot(HaveOccurred())
			}

			examination, err := m.Examine(never)
			Expect(err).ToNot(HaveOccurred())
			Expect(examination.CanBeConstructed).To(BeFalse())
			for _, ctr := range m.Containers() {
				Expect(ctr.Contains(never)).To(BeFalse())
			}
		})

		It("resamples containers that disagree about constructibility", func() {
			loose := twoPoints()
			leftToRight := sample(pt(0, 0), pt(2, 0))
			rightToLeft := sample(pt(2, 0), pt(0, 0))
			m, err := container.NewManager(geogen.TwoPoints, loose,
				construction.NewSequenceConstructor(leftToRight, rightToLeft, leftToRight, leftToRight),
				container.WithTracer(tracer),
				container.WithSettings(settingsWith(func(s *settings.Settings) { s.NumberOfContainers = 2 })))
			Expect(err).ToNot(HaveOccurred())

			mid, err := geogen.NewConstructedObject(ids, orderedMidpoint{}, loose[0], loose[1])
			Expect(err).ToNot(HaveOccurred())
			examination, err := m.Examine(mid)
			Expect(err).ToNot(HaveOccurred())
			Expect(examination.CanBeConstructed).To(BeTrue())
			Expect(tracer.containersReconstructed).To(Equal(1))
			Expect(m.Generation()).To(Equal(1))
		})

		It("fails when the disagreement never resolves", func() {
			loose := twoPoints()
			m, err := container.NewManager(geogen.TwoPoints, loose,
				construction.NewSequenceConstructor(sample(pt(0, 0), pt(2, 0)), sample(pt(2, 0), pt(0, 0))),
				container.WithTracer(tracer),
				container.WithSettings(settingsWith(func(s *settings.Settings) {
					s.NumberOfContainers = 2
					s.MaximalAttemptsToReconstructAllContainers = 3
				})))
			Expect(err).ToNot(HaveOccurred())

			mid, _ := geogen.NewConstructedObject(ids, orderedMidpoint{}, loose[0], loose[1])
			_, err = m.Examine(mid)
			Expect(err).To(MatchError(container.ErrReconstructionExhausted))
			Expect(tracer.containersReconstructed).To(Equal(3))
			Expect(tracer.exhausted).To(Equal(1))
			Expect(m.Objects()).To(HaveLen(2))
		})

		It("refuses loose objects", func() {
			loose := triangle()
			m, err := container.NewManager(geogen.Triangle, loose, construction.NewRandomLayoutConstructor(5))
			Expect(err).ToNot(HaveOccurred())
			_, err = m.Examine(loose[0])
			Expect(err).To(HaveOccurred())
		})
	})

	It("removes the last accepted object from every container", func() {
		loose := triangle()
		m, err := container.NewManager(geogen.Triangle, loose, construction.NewRandomLayoutConstructor(11))
		Expect(err).ToNot(HaveOccurred())
		_, err = m.RemoveLast()
		Expect(err).To(HaveOccurred())

		mid, _ := geogen.NewConstructedObject(ids, construction.Midpoint, loose[0], loose[1])
		_, err = m.Examine(mid)
		Expect(err).ToNot(HaveOccurred())

		removed, err := m.RemoveLast()
		Expect(err).ToNot(HaveOccurred())
		Expect(removed).To(BeIdenticalTo(mid))
		for _, c := range m.Containers() {
			Expect(c.Contains(mid)).To(BeFalse())
		}
		Expect(m.Objects()).To(HaveLen(3))
	})
})

var _ = Describe("Constructor", func() {
	var ids *geogen.IDAllocator

	BeforeEach(func() {
		ids = geogen.NewIDAllocator()
	})

	newTriangle := func() (a, b, c *geogen.ConfigurationObject) {
		return geogen.NewLooseObject(ids, geogen.PointType).SetName("A"),
			geogen.NewLooseObject(ids, geogen.PointType).SetName("B"),
			geogen.NewLooseObject(ids, geogen.PointType).SetName("C")
	}

	It("constructs a valid configuration", func() {
		a, b, c := newTriangle()
		h, _ := geogen.NewConstructedObject(ids, construction.Orthocenter, a, b, c)
		configuration, err := geogen.NewConfiguration(geogen.Triangle, []*geogen.ConfigurationObject{a, b, c}, h)
		Expect(err).ToNot(HaveOccurred())

		m, data, err := container.NewConstructor(construction.NewRandomLayoutConstructor(2)).Construct(configuration)
		Expect(err).ToNot(HaveOccurred())
		Expect(data.Valid()).To(BeTrue())
		Expect(m.Objects()).To(HaveLen(4))
	})

	It("stops at the first duplicate", func() {
		a, b, c := newTriangle()
		m1, _ := geogen.NewConstructedObject(ids, construction.Midpoint, a, b)
		m2, _ := geogen.NewConstructedObject(ids, construction.Midpoint, b, a)
		tail, _ := geogen.NewConstructedObject(ids, construction.Midpoint, a, c)
		configuration, err := geogen.NewConfiguration(geogen.Triangle, []*geogen.ConfigurationObject{a, b, c}, m1, m2, tail)
		Expect(err).ToNot(HaveOccurred())

		m, data, err := container.NewConstructor(construction.NewRandomLayoutConstructor(2)).Construct(configuration)
		Expect(err).ToNot(HaveOccurred())
		Expect(data.Valid()).To(BeFalse())
		Expect(data.Duplicate).To(Equal(&container.Duplicate{Older: m1, Newer: m2}))
		Expect(m.Objects()).To(HaveLen(4))
	})

	It("reports the inconstructible object", func() {
		a, b, c := newTriangle()
		ab, _ := geogen.NewConstructedObject(ids, construction.LineFromPoints, a, b)
		parallel, _ := geogen.NewConstructedObject(ids, construction.ParallelLine, c, ab)
		never, _ := geogen.NewConstructedObject(ids, construction.IntersectionOfLines, ab, parallel)
		configuration, err := geogen.NewConfiguration(geogen.Triangle, []*geogen.ConfigurationObject{a, b, c}, ab, parallel, never)
		Expect(err).ToNot(HaveOccurred())

		_, data, err := container.NewConstructor(construction.NewRandomLayoutConstructor(2)).Construct(configuration)
		Expect(err).ToNot(HaveOccurred())
		Expect(data.Inconstructible).To(BeIdenticalTo(never))
	})
})
