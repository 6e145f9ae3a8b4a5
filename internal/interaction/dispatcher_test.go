package interaction_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dialmenu/internal/constraint"
	"github.com/san-kum/dialmenu/internal/dynamo"
	"github.com/san-kum/dialmenu/internal/geom"
	"github.com/san-kum/dialmenu/internal/interaction"
	"github.com/san-kum/dialmenu/internal/layout"
)

var _ = Describe("Dispatcher", func() {
	var (
		l           *layout.Layout
		set         *constraint.Set
		d           *interaction.Dispatcher
		transitions []interaction.Transition
	)

	BeforeEach(func() {
		var err error
		l, err = layout.New(9, geom.Pt(160, 240), 100)
		Expect(err).NotTo(HaveOccurred())

		set = constraint.NewSet()
		Expect(set.Install(l.Center, l.Slots)).To(Succeed())

		transitions = nil
		d = interaction.NewDispatcher(9, set, l.Slots, nil)
		d.OnTransition = func(t interaction.Transition) {
			transitions = append(transitions, t)
		}
	})

	It("starts every item idle", func() {
		for i := 0; i < 9; i++ {
			Expect(d.State(i)).To(Equal(interaction.Idle))
		}
		Expect(d.Active()).To(Equal(interaction.NoItem))
	})

	Context("pointer down on an item", func() {
		BeforeEach(func() {
			Expect(d.Handle(interaction.Down(3, geom.Pt(246, 290)))).To(Succeed())
		})

		It("enters Dragging and installs a drag constraint at the pointer", func() {
			Expect(d.State(3)).To(Equal(interaction.Dragging))
			Expect(d.Active()).To(Equal(3))
			Expect(set.Drag()).NotTo(BeNil())
			Expect(set.Drag().Item).To(Equal(3))
			Expect(set.Drag().Target).To(Equal(geom.Pt(246, 290)))
			Expect(set.Drag().Phase).To(Equal(constraint.Following))
		})

		It("retargets on every move without changing state", func() {
			Expect(d.Handle(interaction.Move(geom.Pt(100, 100)))).To(Succeed())
			Expect(set.Drag().Target).To(Equal(geom.Pt(100, 100)))
			Expect(d.Handle(interaction.Move(geom.Pt(60, 55)))).To(Succeed())
			Expect(set.Drag().Target).To(Equal(geom.Pt(60, 55)))
			Expect(d.State(3)).To(Equal(interaction.Dragging))
			Expect(transitions).To(HaveLen(1))
		})

		It("snaps to the nearest slot on release, not to the release point", func() {
			release := geom.Pt(50, 50)
			Expect(d.Handle(interaction.Move(release))).To(Succeed())
			Expect(d.Handle(interaction.Up(release))).To(Succeed())

			want, err := layout.NearestSlot(release, l.Slots)
			Expect(err).NotTo(HaveOccurred())

			Expect(set.Drag().Target).To(Equal(want))
			Expect(set.Drag().Target).NotTo(Equal(release))
			Expect(set.Drag().Phase).To(Equal(constraint.Snapping))
			Expect(set.Drag().Slot).To(Equal(8))
			Expect(d.State(3)).To(Equal(interaction.Idle))
			Expect(d.Active()).To(Equal(interaction.NoItem))
		})

		It("passes through Releasing on the way to Idle", func() {
			Expect(d.Handle(interaction.Up(geom.Pt(50, 50)))).To(Succeed())

			states := []interaction.State{}
			for _, t := range transitions {
				states = append(states, t.To)
			}
			Expect(states).To(Equal([]interaction.State{
				interaction.Dragging, interaction.Releasing, interaction.Idle,
			}))
		})

		It("preempts the dragging item when another drag starts", func() {
			Expect(d.Handle(interaction.Down(6, geom.Pt(73, 290)))).To(Succeed())

			Expect(d.State(3)).To(Equal(interaction.Idle))
			Expect(d.State(6)).To(Equal(interaction.Dragging))
			Expect(d.Active()).To(Equal(6))
			Expect(set.Drag().Item).To(Equal(6))

			Expect(transitions).To(HaveLen(4))
			Expect(transitions[1]).To(Equal(interaction.Transition{
				Item: 3, From: interaction.Dragging, To: interaction.Releasing, Cause: interaction.PointerDown,
			}))
			Expect(transitions[2].Item).To(Equal(3))
			Expect(transitions[2].To).To(Equal(interaction.Idle))
			Expect(transitions[3].Item).To(Equal(6))
			Expect(transitions[3].To).To(Equal(interaction.Dragging))
		})

		It("ignores moves and releases scoped to another item", func() {
			Expect(d.Handle(interaction.Event{Type: interaction.PointerMove, Item: 5, Location: geom.Pt(1, 1)})).To(Succeed())
			Expect(set.Drag().Target).To(Equal(geom.Pt(246, 290)))

			Expect(d.Handle(interaction.Event{Type: interaction.PointerUp, Item: 5, Location: geom.Pt(1, 1)})).To(Succeed())
			Expect(d.State(3)).To(Equal(interaction.Dragging))
		})

		It("drops the constraint on Cancel", func() {
			d.Cancel()
			Expect(d.State(3)).To(Equal(interaction.Idle))
			Expect(set.Drag()).To(BeNil())
		})
	})

	It("discards a settling snap constraint when a new drag begins", func() {
		Expect(d.Handle(interaction.Down(1, geom.Pt(224, 163)))).To(Succeed())
		Expect(d.Handle(interaction.Up(geom.Pt(224, 163)))).To(Succeed())
		Expect(set.Drag().Phase).To(Equal(constraint.Snapping))

		Expect(d.Handle(interaction.Down(4, geom.Pt(194, 334)))).To(Succeed())
		Expect(set.Drag().Item).To(Equal(4))
		Expect(set.Drag().Phase).To(Equal(constraint.Following))
	})

	It("treats unknown items and redundant releases as no-ops", func() {
		Expect(d.Handle(interaction.Down(42, geom.Pt(0, 0)))).To(Succeed())
		Expect(d.Handle(interaction.Down(interaction.NoItem, geom.Pt(0, 0)))).To(Succeed())
		Expect(d.Handle(interaction.Move(geom.Pt(0, 0)))).To(Succeed())
		Expect(d.Handle(interaction.Up(geom.Pt(0, 0)))).To(Succeed())
		Expect(d.Handle(interaction.Up(geom.Pt(0, 0)))).To(Succeed())

		Expect(set.Drag()).To(BeNil())
		Expect(transitions).To(BeEmpty())
		Expect(d.State(42)).To(Equal(interaction.Idle))
	})

	It("fails loudly when releasing against an empty slot set", func() {
		empty := interaction.NewDispatcher(1, set, nil, nil)
		Expect(empty.Handle(interaction.Down(0, geom.Pt(0, 0)))).To(Succeed())
		err := empty.Handle(interaction.Up(geom.Pt(0, 0)))
		Expect(err).To(MatchError(dynamo.ErrInvalidInput))
	})
})
