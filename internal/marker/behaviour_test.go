package marker_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/landscape/internal/geom"
	"github.com/san-kum/landscape/internal/hexgrid"
	"github.com/san-kum/landscape/internal/marker"
)

const frame = 1000.0 / 60.0

var _ = Describe("Marker", func() {
	var (
		g      *hexgrid.Grid
		m      *marker.Marker
		basin  hexgrid.Coord
		bottom geom.Vec
	)

	BeforeEach(func() {
		g = hexgrid.New(15, 13, 20)
		g.Seed(5)
		basin = hexgrid.C(7, 6)
		g.ShapeBasin(basin, 3, -2.5)
		m = marker.New(g, basin.Col, basin.Row)
		m.Seed(5)
		bottom = m.Position()
		m.RecordEquilibrium()
	})

	run := func(frames int) {
		for i := 0; i < frames; i++ {
			m.Update(frame)
		}
	}

	Context("in a basin without noise", func() {
		It("stays at the bottom", func() {
			run(300)
			Expect(m.IsSettled(0.5)).To(BeTrue())
			Expect(m.Position().Dist(bottom)).To(BeNumerically("<", 2))
		})

		It("recovers from a shock", func() {
			m.ApplyImpulse(5, -2)
			run(10)
			Expect(m.Metrics().Distance).To(BeNumerically(">", 5))

			run(600)
			Expect(m.IsSettled(0.5)).To(BeTrue())
			cell, ok := m.CurrentCell()
			Expect(ok).To(BeTrue())
			Expect(cell).To(Equal(basin))
		})

		It("reports fading oscillation as it comes to rest", func() {
			m.ApplyImpulse(5, 0)
			run(marker.MetricWindow)
			early := m.Metrics().Oscillation
			Expect(early).To(BeNumerically(">", 0.1))

			run(400)
			Expect(m.Metrics().Oscillation).To(BeNumerically("<", early))
			Expect(m.Metrics().Recovery).To(BeNumerically(">", 0.9))
		})
	})

	Context("with noise", func() {
		It("keeps metrics inside [0, 1]", func() {
			m.SetNoise(1)
			for i := 0; i < 1000; i++ {
				m.Update(frame)
				mt := m.Metrics()
				Expect(mt.Oscillation).To(And(BeNumerically(">=", 0), BeNumerically("<=", 1)))
				Expect(mt.Recovery).To(And(BeNumerically(">=", 0), BeNumerically("<=", 1)))
			}
		})

		It("oscillates more than a quiet marker", func() {
			quiet := marker.New(g, basin.Col, basin.Row)
			m.SetNoise(0.8)
			for i := 0; i < 400; i++ {
				m.Update(frame)
				quiet.Update(frame)
			}
			Expect(m.Metrics().Oscillation).To(BeNumerically(">", quiet.Metrics().Oscillation))
		})

		It("clamps intensity to [0, 1]", func() {
			m.SetNoise(4)
			Expect(m.Noise()).To(Equal(1.0))
			m.SetNoise(-1)
			Expect(m.Noise()).To(Equal(0.0))
		})
	})

	Context("when the ground becomes terminal", func() {
		BeforeEach(func() {
			m.ApplyImpulse(2, 2)
			g.SetTerminal(basin, true)
			m.Update(frame)
		})

		It("freezes on the next update", func() {
			Expect(m.IsTerminal()).To(BeTrue())
			pos := m.Position()
			run(100)
			Expect(m.Position()).To(Equal(pos))
			Expect(m.Velocity()).To(Equal(geom.Vec{}))
		})

		It("is cleared by rebinding", func() {
			Expect(m.BindToCell(hexgrid.C(2, 2))).To(BeTrue())
			Expect(m.IsTerminal()).To(BeFalse())
			Expect(m.History()).To(BeEmpty())
			Expect(m.Trail()).To(BeEmpty())
		})
	})

	Context("in discrete mode", func() {
		BeforeEach(func() {
			m.SetMode(marker.ModeDiscrete)
		})

		It("glides to a neighbour and stops", func() {
			target := g.Neighbors(basin)[0]
			Expect(m.MoveTo(target, 300)).To(BeTrue())
			Expect(m.IsMovingDiscrete()).To(BeTrue())

			run(9)
			snap := m.Snapshot(false)
			Expect(snap.Moving).To(BeTrue())
			Expect(snap.Progress).To(BeNumerically(">", 0.4))

			run(10)
			Expect(m.IsMovingDiscrete()).To(BeFalse())
			Expect(m.Position()).To(Equal(g.ToPixel(target)))
			Expect(m.Speed()).To(BeZero())
		})

		It("refuses to queue a second move", func() {
			Expect(m.MoveTo(g.Neighbors(basin)[0], 200)).To(BeTrue())
			Expect(m.MoveTo(g.Neighbors(basin)[1], 200)).To(BeFalse())
			target, ok := m.GlideTarget()
			Expect(ok).To(BeTrue())
			Expect(target).To(Equal(g.Neighbors(basin)[0]))
		})

		It("becomes terminal after gliding onto a ruin", func() {
			ruin := g.Neighbors(basin)[2]
			g.SetTerminal(ruin, true)
			Expect(m.MoveTo(ruin, 100)).To(BeTrue())
			run(7)
			Expect(m.IsMovingDiscrete()).To(BeFalse())
			m.Update(frame)
			Expect(m.IsTerminal()).To(BeTrue())
		})
	})
})
