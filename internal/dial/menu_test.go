package dial_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dialmenu/internal/constraint"
	"github.com/san-kum/dialmenu/internal/dial"
	"github.com/san-kum/dialmenu/internal/dynamo"
	"github.com/san-kum/dialmenu/internal/geom"
	"github.com/san-kum/dialmenu/internal/interaction"
	"github.com/san-kum/dialmenu/internal/item"
)

const dt = 1.0 / 60

func newItems(n int) []*item.Item {
	items, err := item.Create(n, nil)
	Expect(err).NotTo(HaveOccurred())
	return items
}

func rigidOptions() dial.Options {
	opts := dial.DefaultOptions()
	opts.Solver = "rigid"
	opts.EntryDuration = 0.5
	opts.Easing = "linear"
	return opts
}

var _ = Describe("Menu", func() {
	var (
		m           *dial.Menu
		transitions []interaction.Transition
	)

	BeforeEach(func() {
		transitions = nil
		var err error
		m, err = dial.New(rigidOptions(), dial.WithTransitionObserver(func(t interaction.Transition) {
			transitions = append(transitions, t)
		}))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("rejects a non-positive radius", func() {
			opts := rigidOptions()
			opts.Radius = 0
			_, err := dial.New(opts)
			Expect(err).To(MatchError(dynamo.ErrConfiguration))
		})

		It("rejects an unknown solver", func() {
			opts := rigidOptions()
			opts.Solver = "verlet-ish"
			_, err := dial.New(opts)
			Expect(err).To(MatchError(dynamo.ErrConfiguration))
		})

		It("rejects inverted inflate bounds", func() {
			opts := rigidOptions()
			opts.Inflate.Params.MinScale = 2
			_, err := dial.New(opts)
			Expect(err).To(MatchError(dynamo.ErrConfiguration))
		})

		It("rejects an unknown inflate reference", func() {
			opts := rigidOptions()
			opts.Inflate.Reference = "bottom"
			_, err := dial.New(opts)
			Expect(err).To(MatchError(dynamo.ErrConfiguration))
		})
	})

	Describe("before items are set", func() {
		It("ignores pointer events and ticks", func() {
			Expect(m.Phase()).To(Equal(dial.PhaseEmpty))
			Expect(m.HandlePointer(interaction.Down(0, geom.Pt(160, 140)))).To(Succeed())
			Expect(m.Tick(dt)).To(Succeed())
			Expect(m.Frame().Items).To(BeEmpty())
		})

		It("refuses an empty item list", func() {
			Expect(m.SetItems(nil)).To(MatchError(dynamo.ErrConfiguration))
			Expect(m.Phase()).To(Equal(dial.PhaseEmpty))
		})
	})

	Describe("entry animation", func() {
		BeforeEach(func() {
			Expect(m.SetItems(newItems(9))).To(Succeed())
		})

		It("starts every item at the center", func() {
			Expect(m.Phase()).To(Equal(dial.PhaseEntering))
			for _, it := range m.Items() {
				Expect(it.Position).To(Equal(geom.Pt(160, 240)))
			}
			Expect(m.Constraints().Installed()).To(BeFalse())
		})

		It("interpolates toward the slots without installing constraints", func() {
			Expect(m.Tick(0.25)).To(Succeed())
			for _, it := range m.Items() {
				Expect(geom.Distance(it.Position, m.Layout().Center)).To(BeNumerically("~", 50, 1e-9))
			}
			Expect(m.Constraints().Installed()).To(BeFalse())
		})

		It("lands on the slots and installs constraints when done", func() {
			Expect(m.Tick(0.25)).To(Succeed())
			Expect(m.Tick(0.25)).To(Succeed())

			Expect(m.Phase()).To(Equal(dial.PhaseInteractive))
			Expect(m.Constraints().Installed()).To(BeTrue())
			Expect(m.Constraints().Permanent()).To(HaveLen(9 + 8))
			for i, it := range m.Items() {
				Expect(it.Position).To(Equal(m.Layout().Slots[i]))
			}
		})

		It("ignores moves and ups while entering", func() {
			Expect(m.HandlePointer(interaction.Move(geom.Pt(10, 10)))).To(Succeed())
			Expect(m.HandlePointer(interaction.Up(geom.Pt(10, 10)))).To(Succeed())
			Expect(m.Phase()).To(Equal(dial.PhaseEntering))
			Expect(transitions).To(BeEmpty())
		})

		It("is interrupted by a pointer down on an item", func() {
			Expect(m.Tick(0.25)).To(Succeed())
			mid := m.Items()[4].Position

			Expect(m.HandlePointer(interaction.Down(2, geom.Pt(200, 200)))).To(Succeed())
			Expect(m.Phase()).To(Equal(dial.PhaseInteractive))
			Expect(m.Constraints().Installed()).To(BeTrue())
			Expect(m.State(2)).To(Equal(interaction.Dragging))
			Expect(m.Items()[4].Position).To(Equal(mid))
		})

		It("completes on the first tick when the duration is zero", func() {
			opts := rigidOptions()
			opts.EntryDuration = 0
			quick, err := dial.New(opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(quick.SetItems(newItems(4))).To(Succeed())
			Expect(quick.Phase()).To(Equal(dial.PhaseInteractive))
		})
	})

	Context("once interactive", func() {
		BeforeEach(func() {
			Expect(m.SetItems(newItems(9))).To(Succeed())
			for m.Phase() != dial.PhaseInteractive {
				Expect(m.Tick(dt)).To(Succeed())
			}
		})

		It("inflates the item at the top slot to the maximum", func() {
			Expect(m.Tick(dt)).To(Succeed())
			Expect(m.Items()[0].Scale).To(BeNumerically("~", 1.5, 1e-9))
			Expect(m.Items()[4].Scale).To(BeNumerically("~", 0.75, 1e-9))
			for _, it := range m.Items() {
				Expect(it.Scale).To(BeNumerically(">=", 0.75))
				Expect(it.Scale).To(BeNumerically("<=", 1.5))
			}
		})

		It("hit tests the item under the pointer", func() {
			idx, ok := m.HitTest(m.Layout().Slots[5])
			Expect(ok).To(BeTrue())
			Expect(idx).To(Equal(5))

			_, ok = m.HitTest(m.Layout().Center)
			Expect(ok).To(BeFalse())
		})

		It("drags an item and snaps it to the nearest slot on release", func() {
			start := m.Layout().Slots[3]
			Expect(m.PointerDownAt(start)).To(Succeed())
			Expect(m.State(3)).To(Equal(interaction.Dragging))

			Expect(m.HandlePointer(interaction.Move(geom.Pt(50, 50)))).To(Succeed())
			Expect(m.Tick(dt)).To(Succeed())
			Expect(m.Items()[3].Position).To(Equal(geom.Pt(50, 50)))
			for i, it := range m.Items() {
				if i != 3 {
					Expect(it.Position).To(Equal(m.Layout().Slots[i]))
				}
			}

			Expect(m.HandlePointer(interaction.Up(geom.Pt(50, 50)))).To(Succeed())
			Expect(m.State(3)).To(Equal(interaction.Idle))
			drag := m.Constraints().Drag()
			Expect(drag).NotTo(BeNil())
			Expect(drag.Phase).To(Equal(constraint.Snapping))
			Expect(drag.Slot).To(Equal(8))
			Expect(m.Frame().Items[3].Snapping).To(BeTrue())

			Expect(m.Tick(dt)).To(Succeed())
			Expect(m.Items()[3].Position).To(Equal(m.Layout().Slots[8]))
			Expect(m.Constraints().Drag()).To(BeNil())

			// the permanent attachments now hold it on the resolved slot
			for i := 0; i < 10; i++ {
				Expect(m.Tick(dt)).To(Succeed())
			}
			Expect(m.Items()[3].Position).To(Equal(m.Layout().Slots[8]))
			Expect(m.Constraints().Rest(3)).To(Equal(m.Layout().Slots[8]))
			for i, it := range m.Items() {
				if i != 3 {
					Expect(it.Position).To(Equal(m.Layout().Slots[i]))
				}
			}
		})

		It("keeps the snap constraint when asked to", func() {
			opts := rigidOptions()
			opts.KeepSnap = true
			keep, err := dial.New(opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(keep.SetItems(newItems(9))).To(Succeed())
			for keep.Phase() != dial.PhaseInteractive {
				Expect(keep.Tick(dt)).To(Succeed())
			}

			Expect(keep.HandlePointer(interaction.Down(1, geom.Pt(50, 50)))).To(Succeed())
			Expect(keep.HandlePointer(interaction.Up(geom.Pt(50, 50)))).To(Succeed())
			for i := 0; i < 3; i++ {
				Expect(keep.Tick(dt)).To(Succeed())
			}
			Expect(keep.Constraints().Drag()).NotTo(BeNil())
			Expect(keep.Items()[1].Position).To(Equal(keep.Layout().Slots[8]))
		})

		It("lets a new drag preempt the previous one", func() {
			Expect(m.HandlePointer(interaction.Down(3, geom.Pt(250, 290)))).To(Succeed())
			Expect(m.HandlePointer(interaction.Down(6, geom.Pt(70, 280)))).To(Succeed())

			Expect(m.State(3)).To(Equal(interaction.Idle))
			Expect(m.State(6)).To(Equal(interaction.Dragging))
			Expect(m.Constraints().Drag().Item).To(Equal(6))

			Expect(m.Tick(dt)).To(Succeed())
			Expect(m.Items()[3].Position).To(Equal(m.Layout().Slots[3]))
			Expect(m.Items()[6].Position).To(Equal(geom.Pt(70, 280)))
		})

		It("follows the pointer with the inflate reference when configured", func() {
			opts := rigidOptions()
			opts.Inflate.Reference = dial.ReferencePointer
			pm, err := dial.New(opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(pm.SetItems(newItems(9))).To(Succeed())
			for pm.Phase() != dial.PhaseInteractive {
				Expect(pm.Tick(dt)).To(Succeed())
			}

			target := pm.Layout().Slots[4]
			Expect(pm.HandlePointer(interaction.Move(target))).To(Succeed())
			Expect(pm.Tick(dt)).To(Succeed())
			Expect(pm.Items()[4].Scale).To(BeNumerically("~", 1.5, 1e-9))
			Expect(pm.Items()[0].Scale).To(BeNumerically("<", 1.5))
		})

		It("reports a frame for renderers", func() {
			Expect(m.HandlePointer(interaction.Down(2, geom.Pt(240, 200)))).To(Succeed())
			Expect(m.Tick(dt)).To(Succeed())

			f := m.Frame()
			Expect(f.Phase).To(Equal(dial.PhaseInteractive))
			Expect(f.Items).To(HaveLen(9))
			Expect(f.Items[2].State).To(Equal(interaction.Dragging))
			Expect(f.Items[0].Radius).To(BeNumerically("~", 25*f.Items[0].Scale, 1e-9))
			Expect(f.Tick).To(BeNumerically(">", 0))
		})

		It("drops everything on close", func() {
			Expect(m.HandlePointer(interaction.Down(2, geom.Pt(240, 200)))).To(Succeed())
			m.Close()
			Expect(m.Phase()).To(Equal(dial.PhaseEmpty))
			Expect(m.Constraints().Installed()).To(BeFalse())
			Expect(m.Constraints().Drag()).To(BeNil())
			Expect(m.Items()).To(BeEmpty())
		})
	})

	Context("with the spring solver", func() {
		It("settles a released item onto its slot and hands it back to the network", func() {
			opts := dial.DefaultOptions()
			opts.EntryDuration = 0
			sm, err := dial.New(opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(sm.SetItems(newItems(9))).To(Succeed())
			Expect(sm.Phase()).To(Equal(dial.PhaseInteractive))

			Expect(sm.HandlePointer(interaction.Down(3, sm.Layout().Slots[3]))).To(Succeed())
			Expect(sm.HandlePointer(interaction.Move(geom.Pt(50, 50)))).To(Succeed())
			Expect(sm.Tick(dt)).To(Succeed())
			Expect(sm.HandlePointer(interaction.Up(geom.Pt(50, 50)))).To(Succeed())
			Expect(sm.Constraints().Drag().Slot).To(Equal(8))

			settled := false
			for i := 0; i < 600 && !settled; i++ {
				Expect(sm.Tick(dt)).To(Succeed())
				settled = sm.Constraints().Drag() == nil
			}
			Expect(settled).To(BeTrue())
			e := sm.Frame().Energy
			Expect(math.IsNaN(e) || math.IsInf(e, 0)).To(BeFalse())
			Expect(sm.Items()[3].Position).To(Equal(sm.Layout().Slots[8]))

			for i := 0; i < 600; i++ {
				Expect(sm.Tick(dt)).To(Succeed())
			}
			Expect(sm.Items()[3].Position.Eq(sm.Layout().Slots[8], 1)).To(BeTrue(),
				"item 3 drifted to %+v", sm.Items()[3].Position)
		})

		It("spreads the ring back out when the entry is interrupted before the first tick", func() {
			opts := dial.DefaultOptions()
			sm, err := dial.New(opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(sm.SetItems(newItems(9))).To(Succeed())
			Expect(sm.Phase()).To(Equal(dial.PhaseEntering))

			center := sm.Layout().Center
			Expect(sm.HandlePointer(interaction.Down(4, center))).To(Succeed())
			Expect(sm.Phase()).To(Equal(dial.PhaseInteractive))
			for _, it := range sm.Items() {
				Expect(it.Position).To(Equal(center))
			}
			Expect(sm.HandlePointer(interaction.Up(sm.Layout().Slots[4]))).To(Succeed())
			Expect(sm.Constraints().Drag().Slot).To(Equal(4))

			settled := false
			for i := 0; i < 1200 && !settled; i++ {
				Expect(sm.Tick(dt)).To(Succeed())
				settled = sm.Constraints().Drag() == nil
			}
			Expect(settled).To(BeTrue())
			for i := 0; i < 120; i++ {
				Expect(sm.Tick(dt)).To(Succeed())
			}
			for i, it := range sm.Items() {
				Expect(it.Position.Eq(sm.Layout().Slots[i], 1)).To(BeTrue(),
					"item %d at %+v, slot %+v", i, it.Position, sm.Layout().Slots[i])
			}
		})
	})
})
