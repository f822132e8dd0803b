package analyzer_test

import (
	"iter"
	"slices"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/analyzer"
	"github.com/operator-framework/geogen/pkg/geogen/construction"
	"github.com/operator-framework/geogen/pkg/geogen/container"
	"github.com/operator-framework/geogen/pkg/geogen/contextual"
	"github.com/operator-framework/geogen/pkg/geogen/settings"
	"github.com/operator-framework/geogen/pkg/geogen/theorem"
)

type rejection struct {
	theorem geogen.Theorem
	holds   int
	total   int
}

type rejectionTracer struct {
	geogen.DefaultTracer
	rejections []rejection
}

func (r *rejectionTracer) TheoremRejected(t geogen.Theorem, holds, total int) {
	r.rejections = append(r.rejections, rejection{theorem: t, holds: holds, total: total})
}

var _ = Describe("Analyzer", func() {
	var (
		ids     *geogen.IDAllocator
		loose   []*geogen.ConfigurationObject
		manager *container.Manager
		tracer  *rejectionTracer
	)

	newManager := func(s settings.Settings) {
		var err error
		manager, err = container.NewManager(geogen.Triangle, loose, construction.NewRandomLayoutConstructor(3), container.WithSettings(s))
		Expect(err).ToNot(HaveOccurred())
	}

	BeforeEach(func() {
		ids = geogen.NewIDAllocator()
		loose = []*geogen.ConfigurationObject{
			geogen.NewLooseObject(ids, geogen.PointType).SetName("A"),
			geogen.NewLooseObject(ids, geogen.PointType).SetName("B"),
			geogen.NewLooseObject(ids, geogen.PointType).SetName("C"),
		}
		tracer = &rejectionTracer{}
		newManager(settings.Default())
	})

	// holdingIn returns a candidate that holds in the first n containers.
	holdingIn := func(n int) theorem.PotentialTheorem {
		containers := manager.Containers()
		return theorem.PotentialTheorem{
			Type:    geogen.CollinearPoints,
			Objects: []geogen.TheoremObject{geogen.PointTheoremObject(loose[0]), geogen.PointTheoremObject(loose[1]), geogen.PointTheoremObject(loose[2])},
			Verify: func(c *container.ObjectsContainer) bool {
				return slices.Index(containers, c) < n
			},
		}
	}

	It("rejects theorems that hold in fewer containers than the quorum", func() {
		a, err := analyzer.New(manager, analyzer.WithTracer(tracer))
		Expect(err).ToNot(HaveOccurred())
		Expect(a.Quorum().String()).To(Equal("all containers"))

		candidate := holdingIn(manager.Len() - 1)
		theorems, err := a.Analyze(slices.Values([]theorem.PotentialTheorem{candidate}))
		Expect(err).ToNot(HaveOccurred())
		Expect(theorems).To(BeEmpty())
		Expect(tracer.rejections).To(ConsistOf(rejection{theorem: candidate.Theorem(), holds: manager.Len() - 1, total: manager.Len()}))
	})

	It("accepts theorems meeting a configured minimum", func() {
		s := settings.Default()
		s.MinimalNumberOfTrueContainers = 3
		newManager(s)
		a, err := analyzer.New(manager, analyzer.WithTracer(tracer))
		Expect(err).ToNot(HaveOccurred())
		Expect(a.Quorum().String()).To(Equal("at least 3 containers"))

		theorems, err := a.Analyze(slices.Values([]theorem.PotentialTheorem{holdingIn(3)}))
		Expect(err).ToNot(HaveOccurred())
		Expect(theorems).To(HaveLen(1))

		theorems, err = a.Analyze(slices.Values([]theorem.PotentialTheorem{holdingIn(2)}))
		Expect(err).ToNot(HaveOccurred())
		Expect(theorems).To(BeEmpty())
		Expect(tracer.rejections).To(HaveLen(1))
	})

	It("reports each theorem once", func() {
		a, err := analyzer.New(manager, analyzer.WithQuorum(analyzer.AtLeast(1)))
		Expect(err).ToNot(HaveOccurred())
		candidate := holdingIn(1)
		var seq iter.Seq[theorem.PotentialTheorem] = slices.Values([]theorem.PotentialTheorem{candidate, candidate, candidate})
		theorems, err := a.Analyze(seq)
		Expect(err).ToNot(HaveOccurred())
		Expect(theorems).To(Equal([]geogen.Theorem{candidate.Theorem()}))
	})

	It("confirms the theorems found in a configuration", func() {
		a, b, c := loose[0], loose[1], loose[2]
		m1, _ := geogen.NewConstructedObject(ids, construction.Midpoint, a, b)
		m2, _ := geogen.NewConstructedObject(ids, construction.Midpoint, a, c)
		configuration, err := geogen.NewConfiguration(geogen.Triangle, loose, m1, m2)
		Expect(err).ToNot(HaveOccurred())

		manager, data, err := container.NewConstructor(construction.NewRandomLayoutConstructor(5)).Construct(configuration)
		Expect(err).ToNot(HaveOccurred())
		Expect(data.Valid()).To(BeTrue())
		ctx, err := contextual.New(configuration, manager)
		Expect(err).ToNot(HaveOccurred())

		an, err := analyzer.New(manager)
		Expect(err).ToNot(HaveOccurred())
		theorems, err := an.Analyze(theorem.FindAll(ctx, theorem.All()...))
		Expect(err).ToNot(HaveOccurred())

		midline := geogen.NewTheorem(geogen.ParallelLines, geogen.LineTheoremObject(nil, m1, m2), geogen.LineTheoremObject(nil, b, c))
		keys := make([]string, len(theorems))
		for i, t := range theorems {
			keys[i] = t.Key()
		}
		Expect(keys).To(ContainElement(midline.Key()))
	})
})
