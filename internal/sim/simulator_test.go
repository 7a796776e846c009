package sim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cosmosim/internal/dynamo"
	"github.com/san-kum/cosmosim/internal/physics"
	"github.com/san-kum/cosmosim/internal/sim"
)

func relErr(got, want float64) float64 {
	return math.Abs(got-want) / math.Abs(want)
}

var _ = Describe("Simulator", func() {
	Describe("GrowthODE", func() {
		It("reproduces the reference scenario", func() {
			res, err := sim.Simulate(sim.Request{Kind: sim.GrowthODE, InitialValue: 10, Horizon: 10, SampleCount: 100})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Times).To(HaveLen(100))
			Expect(res.Values).To(HaveLen(100))
			Expect(res.Times[0]).To(Equal(0.0))
			Expect(res.Times[99]).To(Equal(10.0))
			Expect(res.Values[0]).To(Equal(10.0))
			Expect(res.Values[99]).To(BeNumerically("~", 10*math.E, 1e-3))
		})

		DescribeTable("tracks the analytic solution for every method",
			func(method sim.Method, initial, horizon float64) {
				s := sim.New(sim.WithMethod(method))
				res, err := s.Simulate(sim.NewRequest(sim.GrowthODE, initial, horizon))
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Values[0]).To(BeNumerically("~", initial, 1e-6))
				for i, t := range res.Times {
					Expect(relErr(res.Values[i], initial*math.Exp(0.1*t))).To(BeNumerically("<=", 1e-3),
						"sample %d at t=%v", i, t)
				}
			},
			Entry("rk4 small", sim.MethodRK4, 1.0, 1.0),
			Entry("rk4 default", sim.MethodRK4, 10.0, 10.0),
			Entry("rk4 max bounds", sim.MethodRK4, 100.0, 100.0),
			Entry("rk45 default", sim.MethodRK45, 10.0, 10.0),
			Entry("rk45 max bounds", sim.MethodRK45, 100.0, 100.0),
			Entry("analytic", sim.MethodAnalytic, 42.0, 73.0),
		)

		It("produces an evenly spaced, strictly increasing grid", func() {
			res, err := sim.Simulate(sim.NewRequest(sim.GrowthODE, 5, 37))
			Expect(err).NotTo(HaveOccurred())
			step := 37.0 / 99.0
			for i := 1; i < res.Len(); i++ {
				Expect(res.Times[i]).To(BeNumerically(">", res.Times[i-1]))
				Expect(res.Times[i] - res.Times[i-1]).To(BeNumerically("~", step, 1e-9))
			}
		})

		It("is deterministic", func() {
			req := sim.NewRequest(sim.GrowthODE, 17, 63)
			a, err := sim.Simulate(req)
			Expect(err).NotTo(HaveOccurred())
			b, err := sim.Simulate(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Times).To(Equal(b.Times))
			Expect(a.Values).To(Equal(b.Values))
		})

		It("attaches series metrics", func() {
			res, err := sim.Simulate(sim.NewRequest(sim.GrowthODE, 10, 5))
			Expect(err).NotTo(HaveOccurred())
			_, last := res.Last()
			Expect(res.Metrics["final"]).To(Equal(last))
			Expect(res.Metrics["peak"]).To(Equal(last))
			Expect(res.Metrics["growth_factor"]).To(BeNumerically("~", math.Exp(0.5), 1e-3))
			Expect(res.Metrics["doubling_time"]).To(Equal(0.0))
		})

		It("reports the doubling time once mass has doubled", func() {
			res, err := sim.Simulate(sim.NewRequest(sim.GrowthODE, 10, 20))
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Metrics["doubling_time"]).To(BeNumerically("~", 10*math.Ln2, 20.0/99.0))
		})

		It("collapses a single-sample request to the start point", func() {
			res, err := sim.Simulate(sim.Request{Kind: sim.GrowthODE, InitialValue: 3, Horizon: 5, SampleCount: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Times).To(Equal([]float64{0}))
			Expect(res.Values).To(Equal([]float64{3}))
			Expect(res.Horizon).To(Equal(5.0))
		})

		It("reports divergence as an invalid state", func() {
			_, err := sim.Simulate(sim.NewRequest(sim.GrowthODE, math.MaxFloat64/2, 100))
			Expect(errors.Is(err, dynamo.ErrInvalidState)).To(BeTrue())
		})
	})

	Describe("ExponentialClosedForm", func() {
		It("evaluates e^t over the unit interval", func() {
			res, err := sim.Simulate(sim.NewRequest(sim.ExponentialClosedForm, 0, 1))
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Times).To(HaveLen(100))
			Expect(res.Values[0]).To(BeNumerically("~", 1.0, 1e-12))
			last := res.Values[len(res.Values)-1]
			Expect(last).To(BeNumerically("~", math.Exp(res.Times[len(res.Times)-1]), 1e-3))
			Expect(res.Times[99]).To(Equal(1.0))
		})

		It("ignores the initial value and horizon", func() {
			a, err := sim.Simulate(sim.NewRequest(sim.ExponentialClosedForm, 0, 1))
			Expect(err).NotTo(HaveOccurred())
			b, err := sim.Simulate(sim.NewRequest(sim.ExponentialClosedForm, 50, 80))
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Values).To(Equal(a.Values))
			Expect(b.Times).To(Equal(a.Times))
			Expect(b.Horizon).To(Equal(1.0))
		})
	})

	DescribeTable("rejects invalid requests",
		func(req sim.Request) {
			res, err := sim.Simulate(req)
			Expect(res).To(BeNil())
			Expect(errors.Is(err, sim.ErrInvalidRequest)).To(BeTrue(), "got %v", err)
		},
		Entry("zero horizon", sim.Request{Kind: sim.GrowthODE, InitialValue: 10, Horizon: 0, SampleCount: 100}),
		Entry("negative horizon", sim.Request{Kind: sim.GrowthODE, InitialValue: 10, Horizon: -1, SampleCount: 100}),
		Entry("NaN horizon", sim.Request{Kind: sim.GrowthODE, InitialValue: 10, Horizon: math.NaN(), SampleCount: 100}),
		Entry("zero samples", sim.Request{Kind: sim.GrowthODE, InitialValue: 10, Horizon: 10, SampleCount: 0}),
		Entry("zero samples inflation", sim.Request{Kind: sim.ExponentialClosedForm, Horizon: 1, SampleCount: 0}),
		Entry("zero horizon inflation", sim.Request{Kind: sim.ExponentialClosedForm, Horizon: 0, SampleCount: 100}),
		Entry("unknown kind", sim.Request{Kind: sim.Kind(9), InitialValue: 10, Horizon: 10, SampleCount: 100}),
		Entry("infinite initial value", sim.Request{Kind: sim.GrowthODE, InitialValue: math.Inf(1), Horizon: 10, SampleCount: 100}),
	)

	Describe("kinds and methods", func() {
		It("parses names and aliases", func() {
			for name, want := range map[string]sim.Kind{
				"growth": sim.GrowthODE, "BlackHole": sim.GrowthODE,
				"inflation": sim.ExponentialClosedForm, " exponential ": sim.ExponentialClosedForm,
			} {
				k, err := sim.ParseKind(name)
				Expect(err).NotTo(HaveOccurred())
				Expect(k).To(Equal(want))
			}
			_, err := sim.ParseKind("bigbang")
			Expect(errors.Is(err, sim.ErrInvalidRequest)).To(BeTrue())
		})

		It("rejects euler as a simulator method", func() {
			_, err := sim.ParseMethod("euler")
			Expect(errors.Is(err, sim.ErrUnknownMethod)).To(BeTrue())
			integ, err := sim.NewIntegrator("euler")
			Expect(err).NotTo(HaveOccurred())
			Expect(integ).NotTo(BeNil())
		})

		It("fails an unknown method at simulation time", func() {
			s := sim.New(sim.WithMethod("leapfrog"))
			_, err := s.Simulate(sim.NewRequest(sim.GrowthODE, 1, 1))
			Expect(errors.Is(err, sim.ErrUnknownMethod)).To(BeTrue())
		})
	})

	Describe("Integrate", func() {
		It("rejects a state that does not match the system dimension", func() {
			_, err := sim.Integrate(physics.NewBlackHole(), sim.NewRK4Integrator(), dynamo.State{1, 2}, dynamo.Grid(0, 1, 5), 1)
			Expect(errors.Is(err, dynamo.ErrDimensionMismatch)).To(BeTrue(), "got %v", err)
			var simErr *dynamo.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
		})
	})

	Describe("Sweep", func() {
		It("returns results in input order", func() {
			s := sim.New()
			masses := []float64{1, 5, 10, 50, 100}
			results, err := s.Sweep(context.Background(), sim.NewRequest(sim.GrowthODE, 0, 10), masses)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(len(masses)))
			for i, m := range masses {
				Expect(results[i].Values[0]).To(Equal(m))
				_, last := results[i].Last()
				Expect(relErr(last, m*math.E)).To(BeNumerically("<", 1e-3))
			}
		})

		It("stops on a cancelled context", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := sim.New().Sweep(ctx, sim.NewRequest(sim.GrowthODE, 0, 10), []float64{1, 2, 3})
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		})

		It("validates the base request", func() {
			_, err := sim.New().Sweep(context.Background(), sim.NewRequest(sim.GrowthODE, 0, 0), []float64{1})
			Expect(errors.Is(err, sim.ErrInvalidRequest)).To(BeTrue())
		})
	})
})
