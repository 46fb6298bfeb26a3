package field_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lavasim/internal/field"
)

func maxSecondDiff(p []float64) float64 {
	max := 0.0
	for i := 1; i < len(p)-1; i++ {
		d := math.Abs(p[i+1] - 2*p[i] + p[i-1])
		if d > max {
			max = d
		}
	}
	return max
}

var _ = Describe("Field", func() {
	newField := func(n int) *field.Field {
		f, err := field.New(n, 0, 300, 20, 60, 0.001, 0.1, 1.0)
		Expect(err).NotTo(HaveOccurred())
		return f
	}

	It("rejects fewer than three samples", func() {
		_, err := field.New(2, 0, 300, 20, 60, 0.001, 0.1, 1.0)
		Expect(err).To(MatchError(field.ErrTooFewSamples))
	})

	It("initializes a gradient between the boundary temperatures", func() {
		f := newField(300)
		Expect(f.At(0)).To(Equal(20.0))
		Expect(f.At(f.Len() - 1)).To(Equal(60.0))
		for i := 1; i < f.Len(); i++ {
			Expect(f.At(i)).To(BeNumerically(">=", f.At(i-1)))
		}
	})

	It("keeps the boundaries pinned after every step", func() {
		f := newField(300)
		for i := 0; i < 1000; i++ {
			f.Step()
			Expect(f.At(0)).To(Equal(20.0))
			Expect(f.At(f.Len() - 1)).To(Equal(60.0))
		}
	})

	It("re-pins boundaries that were overwritten", func() {
		f := newField(50)
		f.Set(0, 99)
		f.Set(f.Len()-1, -99)
		f.Step()
		Expect(f.At(0)).To(Equal(20.0))
		Expect(f.At(f.Len() - 1)).To(Equal(60.0))
	})

	It("smooths a step-function profile", func() {
		// A diffusion number of 0.4 stays inside the stability bound
		// while smoothing fast enough to measure.
		f, err := field.New(100, 0, 300, 20, 60, 1.0, 0.4, 1.0)
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < f.Len(); i++ {
			if i < f.Len()/2 {
				f.Set(i, 20)
			} else {
				f.Set(i, 60)
			}
		}

		before := maxSecondDiff(f.Profile())
		prev := before
		for i := 0; i < 20; i++ {
			f.Step()
			cur := maxSecondDiff(f.Profile())
			Expect(cur).To(BeNumerically("<=", prev+1e-12))
			prev = cur
		}
		Expect(prev).To(BeNumerically("<", before))
	})

	It("clamps out-of-range samples to the boundaries", func() {
		f := newField(300)
		Expect(f.Sample(-1000)).To(Equal(f.At(0)))
		Expect(f.Sample(1e6)).To(Equal(f.At(f.Len() - 1)))
	})

	It("maps a vertical coordinate to the nearest sample", func() {
		f := newField(300)
		Expect(f.Sample(0)).To(Equal(f.At(0)))
		Expect(f.Sample(150)).To(Equal(f.At(149)))
		Expect(f.Sample(300)).To(Equal(f.At(299)))
	})

	It("reports the diffusion number of its constants", func() {
		f := newField(300)
		Expect(f.DiffusionNumber()).To(BeNumerically("~", 0.0001, 1e-12))
		Expect(f.DiffusionNumber()).To(BeNumerically("<=", 0.5))
	})

	It("normalizes temperatures between the boundaries", func() {
		f := newField(300)
		Expect(f.Normalized(20)).To(Equal(0.0))
		Expect(f.Normalized(60)).To(Equal(1.0))
		Expect(f.Normalized(40)).To(BeNumerically("~", 0.5, 1e-12))
		Expect(f.Normalized(-100)).To(Equal(0.0))
		Expect(f.Normalized(500)).To(Equal(1.0))
	})

	It("returns an independent copy from Profile", func() {
		f := newField(50)
		p := f.Profile()
		p[10] = 1234
		Expect(f.At(10)).NotTo(Equal(1234.0))
	})
})
