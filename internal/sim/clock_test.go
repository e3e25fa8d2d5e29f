package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/physics"
)

var _ = Describe("Clock", func() {
	var clock *Clock

	BeforeEach(func() {
		clock = NewClock(physics.Day, 1)
	})

	It("starts running with nothing elapsed", func() {
		Expect(clock.State()).To(Equal(Running))
		Expect(clock.Elapsed()).To(BeZero())
		Expect(clock.EffectiveDt()).To(Equal(physics.Day))
	})

	It("toggles between running and paused", func() {
		clock.Toggle()
		Expect(clock.Paused()).To(BeTrue())
		clock.Toggle()
		Expect(clock.Paused()).To(BeFalse())

		clock.Pause()
		clock.Pause()
		Expect(clock.State()).To(Equal(Paused))
		clock.Resume()
		Expect(clock.State()).To(Equal(Running))
	})

	It("scales time without clamping", func() {
		for i := 0; i < 40; i++ {
			clock.ScaleTime(2)
		}
		Expect(clock.TimeScale()).To(Equal(float64(1 << 40)))

		clock.SetTimeScale(1)
		clock.ScaleTime(-0.5)
		Expect(clock.TimeScale()).To(Equal(-0.5))
	})

	It("accumulates base dt times the scale on each advance", func() {
		clock.Advance()
		clock.ScaleTime(0.5)
		clock.Advance()
		Expect(clock.Elapsed()).To(Equal(1.5 * physics.Day))

		clock.SetTimeScale(-1)
		clock.Advance()
		Expect(clock.Elapsed()).To(Equal(0.5 * physics.Day))
	})
})

var _ = Describe("Simulator", func() {
	var (
		s      *Simulator
		bodies []*dynamo.Body
	)

	BeforeEach(func() {
		var err error
		bodies, err = physics.Build(physics.SolarSystem(), 0)
		Expect(err).NotTo(HaveOccurred())
		s, err = New(bodies, integrators.NewSemiImplicitEuler(physics.NewGravity()), physics.G, DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	Context("when paused", func() {
		It("leaves every body untouched", func() {
			before := make([]dynamo.BodySpec, len(bodies))
			for i, b := range bodies {
				before[i] = b.Spec()
			}

			s.Clock().Toggle()
			for i := 0; i < 25; i++ {
				stepped, err := s.Tick()
				Expect(err).NotTo(HaveOccurred())
				Expect(stepped).To(BeFalse())
			}

			for i, b := range s.Bodies() {
				Expect(b.Spec()).To(Equal(before[i]))
				Expect(b.Trail.Len()).To(BeZero())
			}
			Expect(s.Clock().Elapsed()).To(BeZero())
			Expect(s.Steps()).To(BeZero())
		})

		It("resumes where it stopped", func() {
			_, err := s.Tick()
			Expect(err).NotTo(HaveOccurred())
			s.Clock().Pause()
			_, err = s.Tick()
			Expect(err).NotTo(HaveOccurred())
			s.Clock().Resume()
			_, err = s.Tick()
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Steps()).To(Equal(2))
			Expect(s.Clock().Elapsed()).To(Equal(2 * physics.Day))
			for _, b := range s.Bodies() {
				Expect(b.Trail.Total()).To(Equal(2))
			}
		})
	})

	Context("when running", func() {
		It("grows every trail by one point per tick", func() {
			for i := 1; i <= 30; i++ {
				_, err := s.Tick()
				Expect(err).NotTo(HaveOccurred())
				for _, b := range s.Bodies() {
					Expect(b.Trail.Len()).To(Equal(i))
				}
			}
		})

		It("reports distance to the sun for every planet", func() {
			_, err := s.Tick()
			Expect(err).NotTo(HaveOccurred())
			for _, b := range s.Bodies()[1:] {
				Expect(b.DistanceToPrimary).To(BeNumerically(">", 0.3*physics.AU))
			}
			Expect(s.Bodies()[0].DistanceToPrimary).To(BeZero())
		})

		It("keeps the energy accuracy high over a simulated year", func() {
			for i := 0; i < 365; i++ {
				_, err := s.Tick()
				Expect(err).NotTo(HaveOccurred())
			}
			st, err := s.Stats()
			Expect(err).NotTo(HaveOccurred())
			Expect(st.Accuracy).To(BeNumerically(">", 99))
			Expect(st.Elapsed).To(Equal(365 * physics.Day))
		})
	})
})
