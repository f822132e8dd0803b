package container_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/analytic"
	"github.com/operator-framework/geogen/pkg/geogen/container"
)

var _ = Describe("ObjectsContainer", func() {
	var (
		ids *geogen.IDAllocator
		c   *container.ObjectsContainer
	)

	BeforeEach(func() {
		ids = geogen.NewIDAllocator()
		c = container.NewObjectsContainer(analytic.DefaultPrecision)
	})

	It("returns the stored value for an added object", func() {
		a := geogen.NewLooseObject(ids, geogen.PointType)
		added, err := c.Add(pt(1, 2), a)
		Expect(err).ToNot(HaveOccurred())
		Expect(added).To(BeIdenticalTo(a))

		value, err := c.Get(a)
		Expect(err).ToNot(HaveOccurred())
		Expect(value).To(Equal(pt(1, 2)))
		Expect(c.Contains(a)).To(BeTrue())
		Expect(c.Len()).To(Equal(1))
	})

	It("returns the earlier object when an equal value is added again", func() {
		a := geogen.NewLooseObject(ids, geogen.PointType)
		b := geogen.NewLooseObject(ids, geogen.PointType)
		_, err := c.Add(pt(1, 2), a)
		Expect(err).ToNot(HaveOccurred())

		added, err := c.Add(pt(1+1e-11, 2-1e-11), b)
		Expect(err).ToNot(HaveOccurred())
		Expect(added).To(BeIdenticalTo(a))
		Expect(c.Len()).To(Equal(1))
		Expect(c.Contains(b)).To(BeFalse())
	})

	It("finds objects by value", func() {
		a := geogen.NewLooseObject(ids, geogen.PointType)
		_, err := c.Add(pt(3, 4), a)
		Expect(err).ToNot(HaveOccurred())

		found, ok := c.Find(pt(3, 4))
		Expect(ok).To(BeTrue())
		Expect(found).To(BeIdenticalTo(a))

		_, ok = c.Find(pt(4, 3))
		Expect(ok).To(BeFalse())
	})

	DescribeTable("rejects values of the wrong type",
		func(declared geogen.ObjectType, value analytic.Object) {
			object := geogen.NewLooseObject(ids, declared)
			_, err := c.Add(value, object)
			Expect(err).To(MatchError(container.TypeMismatch{Object: object, Expected: declared, Actual: geogen.TypeOf(value)}))
			Expect(c.Len()).To(BeZero())
		},
		Entry("point declared, line given", geogen.PointType, analytic.Line{A: 0, B: 1, C: 0}),
		Entry("point declared, circle given", geogen.PointType, analytic.Circle{Center: pt(0, 0), Radius: 1}),
		Entry("line declared, point given", geogen.LineType, pt(0, 0)),
		Entry("line declared, circle given", geogen.LineType, analytic.Circle{Center: pt(0, 0), Radius: 1}),
		Entry("circle declared, point given", geogen.CircleType, pt(0, 0)),
		Entry("circle declared, line given", geogen.CircleType, analytic.Line{A: 0, B: 1, C: 0}),
	)

	It("reports missing objects", func() {
		a := geogen.NewLooseObject(ids, geogen.PointType)
		_, err := c.Get(a)
		Expect(err).To(MatchError(container.ObjectNotFound(a.ID())))
		Expect(c.Remove(a)).To(MatchError(container.ObjectNotFound(a.ID())))
	})

	It("frees the value of a removed object", func() {
		a := geogen.NewLooseObject(ids, geogen.PointType)
		b := geogen.NewLooseObject(ids, geogen.PointType)
		_, err := c.Add(pt(1, 1), a)
		Expect(err).ToNot(HaveOccurred())
		Expect(c.Remove(a)).To(Succeed())

		added, err := c.Add(pt(1, 1), b)
		Expect(err).ToNot(HaveOccurred())
		Expect(added).To(BeIdenticalTo(b))
	})

	It("refuses a second value for the same object", func() {
		a := geogen.NewLooseObject(ids, geogen.PointType)
		_, err := c.Add(pt(1, 1), a)
		Expect(err).ToNot(HaveOccurred())
		_, err = c.Add(pt(2, 2), a)
		Expect(err).To(HaveOccurred())
	})

	Describe("typed access", func() {
		It("returns the concrete analytic type", func() {
			l := geogen.NewLooseObject(ids, geogen.LineType)
			_, err := c.Add(analytic.Line{A: 1, B: 0, C: -2}, l)
			Expect(err).ToNot(HaveOccurred())

			line, err := container.Get[analytic.Line](c, l)
			Expect(err).ToNot(HaveOccurred())
			Expect(line.C).To(Equal(-2.0))
		})

		It("fails when the requested type differs", func() {
			l := geogen.NewLooseObject(ids, geogen.LineType)
			_, err := c.Add(analytic.Line{A: 1, B: 0, C: -2}, l)
			Expect(err).ToNot(HaveOccurred())

			_, err = container.Get[analytic.Circle](c, l)
			Expect(err).To(BeAssignableToTypeOf(container.TypeMismatch{}))
		})
	})

	It("forgets everything on reset", func() {
		a := geogen.NewLooseObject(ids, geogen.PointType)
		_, err := c.Add(pt(1, 1), a)
		Expect(err).ToNot(HaveOccurred())
		c.Reset()
		Expect(c.Len()).To(BeZero())
		_, ok := c.Find(pt(1, 1))
		Expect(ok).To(BeFalse())
	})
})
