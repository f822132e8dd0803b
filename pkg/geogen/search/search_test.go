package search_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/analytic"
	"github.com/operator-framework/geogen/pkg/geogen/construction"
	"github.com/operator-framework/geogen/pkg/geogen/container"
	"github.com/operator-framework/geogen/pkg/geogen/search"
	"github.com/operator-framework/geogen/pkg/geogen/settings"
)

func keys(theorems []geogen.Theorem) []string {
	result := make([]string, len(theorems))
	for i, t := range theorems {
		result[i] = t.Key()
	}
	return result
}

var _ = Describe("Search", func() {
	var (
		ids     *geogen.IDAllocator
		a, b, c *geogen.ConfigurationObject
		ma, mb  *geogen.ConfigurationObject
		s       *search.Search
	)

	construct := func(con geogen.Construction, args ...*geogen.ConfigurationObject) *geogen.ConfigurationObject {
		o, err := geogen.NewConstructedObject(ids, con, args...)
		Expect(err).ToNot(HaveOccurred())
		return o
	}

	BeforeEach(func() {
		ids = geogen.NewIDAllocator()
		a = geogen.NewLooseObject(ids, geogen.PointType).SetName("A")
		b = geogen.NewLooseObject(ids, geogen.PointType).SetName("B")
		c = geogen.NewLooseObject(ids, geogen.PointType).SetName("C")
		ma = construct(construction.Midpoint, b, c).SetName("Ma")
		mb = construct(construction.Midpoint, a, c).SetName("Mb")
		configuration, err := geogen.NewConfiguration(geogen.Triangle, []*geogen.ConfigurationObject{a, b, c}, ma, mb)
		Expect(err).ToNot(HaveOccurred())

		st := settings.Default()
		st.Seed = 42
		s, err = search.New(configuration, search.WithSettings(st))
		Expect(err).ToNot(HaveOccurred())
	})

	It("finds the theorems of the starting configuration", func() {
		theorems, err := s.Initial()
		Expect(err).ToNot(HaveOccurred())
		midline := geogen.NewTheorem(geogen.ParallelLines, geogen.LineTheoremObject(nil, ma, mb), geogen.LineTheoremObject(nil, a, b))
		Expect(keys(theorems)).To(ContainElement(midline.Key()))
	})

	It("reports only theorems involving the added object", func() {
		mc := construct(construction.Midpoint, a, b).SetName("Mc")
		outcome, err := s.Extend(mc)
		Expect(err).ToNot(HaveOccurred())
		Expect(outcome.Inconstructible).To(BeFalse())
		Expect(outcome.Duplicate).To(BeNil())

		medians := geogen.NewTheorem(geogen.ConcurrentLines,
			geogen.LineTheoremObject(nil, a, ma),
			geogen.LineTheoremObject(nil, b, mb),
			geogen.LineTheoremObject(nil, c, mc))
		Expect(keys(outcome.Theorems)).To(ContainElement(medians.Key()))

		initial, err := s.Initial()
		Expect(err).ToNot(HaveOccurred())
		Expect(keys(initial)).To(ContainElements(keys(outcome.Theorems)))
		Expect(s.Configuration().ConstructedObjects()).To(Equal([]*geogen.ConfigurationObject{ma, mb, mc}))
	})

	It("does not add duplicates", func() {
		again := construct(construction.Midpoint, c, b)
		outcome, err := s.Extend(again)
		Expect(err).ToNot(HaveOccurred())
		Expect(outcome.Duplicate).To(BeIdenticalTo(ma))
		Expect(outcome.Theorems).To(BeEmpty())
		Expect(s.Configuration().ConstructedObjects()).To(HaveLen(2))
	})

	It("does not add objects that cannot be constructed", func() {
		mid := construct(construction.LineFromPoints, ma, mb)
		_, err := s.Extend(mid)
		Expect(err).ToNot(HaveOccurred())
		ab := construct(construction.LineFromPoints, a, b)
		_, err = s.Extend(ab)
		Expect(err).ToNot(HaveOccurred())

		never := construct(construction.IntersectionOfLines, mid, ab)
		outcome, err := s.Extend(never)
		Expect(err).ToNot(HaveOccurred())
		Expect(outcome.Inconstructible).To(BeTrue())
		Expect(s.Configuration().ConstructedObjects()).To(HaveLen(4))
	})

	It("refuses objects built from unknown arguments", func() {
		stranger := geogen.NewLooseObject(ids, geogen.PointType)
		_, err := s.Extend(construct(construction.Midpoint, a, stranger))
		Expect(err).To(HaveOccurred())
	})

	It("backtracks extensions", func() {
		mc := construct(construction.Midpoint, a, b).SetName("Mc")
		_, err := s.Extend(mc)
		Expect(err).ToNot(HaveOccurred())

		removed, err := s.Backtrack()
		Expect(err).ToNot(HaveOccurred())
		Expect(removed).To(BeIdenticalTo(mc))
		Expect(s.Configuration().ConstructedObjects()).To(Equal([]*geogen.ConfigurationObject{ma, mb}))
		Expect(s.Manager().Objects()).To(HaveLen(5))
		_, ok := s.Context().Lookup(mc)
		Expect(ok).To(BeFalse())

		_, err = s.Backtrack()
		Expect(err).To(MatchError(search.ErrNothingToBacktrack))

		outcome, err := s.Extend(mc)
		Expect(err).ToNot(HaveOccurred())
		Expect(outcome.Theorems).ToNot(BeEmpty())
	})
})

// orderedMidpoint exists only when its first argument lies left of the
// second one, so its constructibility depends on the sampled values.
type orderedMidpoint struct{}

func (orderedMidpoint) Name() string                 { return "OrderedMidpoint" }
func (orderedMidpoint) OutputType() geogen.ObjectType { return geogen.PointType }
func (orderedMidpoint) Signature() []geogen.ObjectType {
	return []geogen.ObjectType{geogen.PointType, geogen.PointType}
}
func (orderedMidpoint) Construct(args []analytic.Object) (analytic.Object, bool) {
	a, b := args[0].(analytic.Point), args[1].(analytic.Point)
	if a.X >= b.X {
		return nil, false
	}
	return a.Midpoint(b), true
}

var _ = Describe("Search with containers that never agree", func() {
	var (
		ids  *geogen.IDAllocator
		a, b *geogen.ConfigurationObject
		s    *search.Search
	)

	BeforeEach(func() {
		ids = geogen.NewIDAllocator()
		a = geogen.NewLooseObject(ids, geogen.PointType).SetName("A")
		b = geogen.NewLooseObject(ids, geogen.PointType).SetName("B")
		configuration, err := geogen.NewConfiguration(geogen.TwoPoints, []*geogen.ConfigurationObject{a, b})
		Expect(err).ToNot(HaveOccurred())

		st := settings.Default()
		st.NumberOfContainers = 2
		st.MaximalAttemptsToReconstructAllContainers = 2
		// the first container always gets A left of B, the second one never does
		looseConstructor := construction.NewSequenceConstructor(
			[]analytic.Object{analytic.Point{X: 0, Y: 0}, analytic.Point{X: 2, Y: 0}},
			[]analytic.Object{analytic.Point{X: 2, Y: 0}, analytic.Point{X: 0, Y: 0}},
		)
		s, err = search.New(configuration, search.WithSettings(st), search.WithLooseObjectsConstructor(looseConstructor))
		Expect(err).ToNot(HaveOccurred())
	})

	It("is abandoned once reconstructions are exhausted", func() {
		Expect(s.Abandoned()).To(BeNil())
		mid, err := geogen.NewConstructedObject(ids, orderedMidpoint{}, a, b)
		Expect(err).ToNot(HaveOccurred())

		_, err = s.Extend(mid)
		Expect(err).To(MatchError(search.ErrAbandoned))
		Expect(err).To(MatchError(container.ErrReconstructionExhausted))
		Expect(s.Abandoned()).To(MatchError(container.ErrReconstructionExhausted))
		Expect(s.Configuration().ConstructedObjects()).To(BeEmpty())

		m, err := geogen.NewConstructedObject(ids, construction.Midpoint, a, b)
		Expect(err).ToNot(HaveOccurred())
		_, err = s.Extend(m)
		Expect(err).To(MatchError(search.ErrAbandoned))
		_, err = s.Initial()
		Expect(err).To(MatchError(search.ErrAbandoned))
		_, err = s.Backtrack()
		Expect(err).To(MatchError(search.ErrAbandoned))
	})

	It("keeps going while the objects agree", func() {
		m, err := geogen.NewConstructedObject(ids, construction.Midpoint, a, b)
		Expect(err).ToNot(HaveOccurred())
		outcome, err := s.Extend(m)
		Expect(err).ToNot(HaveOccurred())
		Expect(outcome.Inconstructible).To(BeFalse())
		Expect(s.Abandoned()).To(BeNil())
	})
})

var _ = Describe("New", func() {
	It("rejects configurations with duplicate objects", func() {
		ids := geogen.NewIDAllocator()
		a := geogen.NewLooseObject(ids, geogen.PointType)
		b := geogen.NewLooseObject(ids, geogen.PointType)
		m1, _ := geogen.NewConstructedObject(ids, construction.Midpoint, a, b)
		m2, _ := geogen.NewConstructedObject(ids, construction.Midpoint, b, a)
		configuration, err := geogen.NewConfiguration(geogen.TwoPoints, []*geogen.ConfigurationObject{a, b}, m1, m2)
		Expect(err).ToNot(HaveOccurred())

		_, err = search.New(configuration, search.WithLooseObjectsConstructor(construction.NewRandomLayoutConstructor(1)))
		var invalid search.InvalidConfiguration
		Expect(err).To(BeAssignableToTypeOf(invalid))
		Expect(err.Error()).To(ContainSubstring("duplicates"))
	})
})
