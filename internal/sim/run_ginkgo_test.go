package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tripend/internal/dynamo"
	"github.com/san-kum/tripend/internal/integrators"
	"github.com/san-kum/tripend/internal/physics"
	"github.com/san-kum/tripend/internal/sim"
)

var _ = Describe("Run", func() {
	var (
		ctx context.Context
		p   physics.Params
	)

	BeforeEach(func() {
		ctx = context.Background()
		p = physics.DefaultParams()
		p.SimTime = 5
	})

	Context("at static equilibrium", func() {
		BeforeEach(func() {
			p.Theta1, p.Theta2, p.Theta3 = 0, 0, 0
		})

		It("never leaves the hanging position", func() {
			tr, err := sim.Run(ctx, p)
			Expect(err).NotTo(HaveOccurred())

			for _, x := range tr.States {
				for _, v := range x {
					Expect(v).To(BeNumerically("~", 0, 1e-12))
				}
			}
		})

		It("places the joints straight down", func() {
			tr, err := sim.Run(ctx, p)
			Expect(err).NotTo(HaveOccurred())

			f := tr.Frame(tr.Len() - 1)
			Expect(f.X3).To(BeNumerically("~", 0, 1e-12))
			Expect(f.Y3).To(BeNumerically("~", -(p.L1 + p.L2 + p.L3), 1e-12))
		})
	})

	Context("without damping", func() {
		BeforeEach(func() {
			p.Damping = 0
			p.SimTime = 10
		})

		It("conserves mechanical energy", func() {
			tr, err := sim.Run(ctx, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.MaxEnergyDrift()).To(BeNumerically("<", 0.01))
		})
	})

	Context("with damping", func() {
		BeforeEach(func() {
			p.Damping = 0.5
		})

		It("loses mechanical energy", func() {
			tr, err := sim.Run(ctx, p)
			Expect(err).NotTo(HaveOccurred())

			e0 := physics.MechanicalEnergy(tr.States[0], p)
			eN := physics.MechanicalEnergy(tr.States[tr.Len()-1], p)
			Expect(eN).To(BeNumerically("<", e0))
		})
	})

	It("samples at 50 Hz over the whole span", func() {
		tr, err := sim.Run(ctx, p)
		Expect(err).NotTo(HaveOccurred())

		Expect(tr.Times).To(HaveLen(250))
		Expect(tr.States).To(HaveLen(250))
		Expect(tr.Times[0]).To(Equal(0.0))
		Expect(tr.Times[len(tr.Times)-1]).To(Equal(p.SimTime))

		for i := 1; i < len(tr.Times); i++ {
			Expect(tr.Times[i]).To(BeNumerically(">", tr.Times[i-1]))
			Expect(tr.Times[i] - tr.Times[i-1]).To(BeNumerically("~", 5.0/249, 1e-12))
		}
	})

	It("is deterministic", func() {
		a, err := sim.Run(ctx, p)
		Expect(err).NotTo(HaveOccurred())
		b, err := sim.Run(ctx, p)
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Times).To(Equal(b.Times))
		Expect(a.States).To(Equal(b.States))
		Expect(a.Stats).To(Equal(b.Stats))
	})

	It("does not modify its parameters", func() {
		before := p
		_, err := sim.Run(ctx, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(before))
	})

	It("keeps the velocity components consistent with the angles", func() {
		tr, err := sim.Run(ctx, p)
		Expect(err).NotTo(HaveOccurred())

		dt := tr.Times[1] - tr.Times[0]
		for i := 1; i < tr.Len()-1; i++ {
			prev, next := tr.States[i-1], tr.States[i+1]
			for j := 0; j < 6; j += 2 {
				slope := (next[j] - prev[j]) / (2 * dt)
				omega := tr.States[i][j+1]
				Expect(slope).To(BeNumerically("~", omega, 0.1*(1+math.Abs(omega))))
			}
		}
	})

	DescribeTable("rejects invalid parameters",
		func(modify func(*physics.Params)) {
			modify(&p)
			tr, err := sim.Run(ctx, p)
			Expect(err).To(MatchError(dynamo.ErrInvalidParameters))
			Expect(tr).To(BeNil())
		},
		Entry("m1 = 0", func(p *physics.Params) { p.M1 = 0 }),
		Entry("L2 = -1", func(p *physics.Params) { p.L2 = -1 }),
		Entry("g = 0", func(p *physics.Params) { p.Gravity = 0 }),
		Entry("sim time = 0", func(p *physics.Params) { p.SimTime = 0 }),
	)

	Context("when the step budget runs out", func() {
		It("reports how far it got", func() {
			cfg := dynamo.DefaultConfig()
			cfg.MaxSteps = 10
			s := sim.New(integrators.NewRK45(), cfg)

			tr, err := s.Run(ctx, p)
			Expect(tr).To(BeNil())
			Expect(err).To(MatchError(dynamo.ErrIntegrationFailure))

			var runErr *sim.RunError
			Expect(err).To(BeAssignableToTypeOf(runErr))
			runErr = err.(*sim.RunError)

			Expect(runErr.Reached).To(BeNumerically(">", 0))
			Expect(runErr.Reached).To(BeNumerically("<", p.SimTime))
			Expect(runErr.Partial.Len()).To(BeNumerically(">=", 1))
			Expect(runErr.Partial.Times[runErr.Partial.Len()-1]).To(BeNumerically("<=", runErr.Reached))
		})
	})
})
