package playback_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pyramid/internal/playback"
)

type fakeTimer struct {
	interval time.Duration
	stopped  bool
}

func (t *fakeTimer) Stop() { t.stopped = true }

type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) Every(d time.Duration) playback.Timer {
	t := &fakeTimer{interval: d}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) live() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// fire delivers one tick from the armed timer, if any.
func fire(c *playback.Controller) bool {
	return c.Tick(c.Armed())
}

var _ = Describe("Controller", func() {
	var (
		sched *fakeScheduler
		ctrl  *playback.Controller
	)

	BeforeEach(func() {
		sched = &fakeScheduler{}
		ctrl = playback.NewController(sched, playback.Options{Speed: 4})
	})

	Describe("before data is ready", func() {
		It("ignores every event", func() {
			for _, ev := range []playback.Event{playback.TogglePlay, playback.StepBack, playback.StepForward, playback.CancelPlayback} {
				ctrl.Handle(ev)
			}
			Expect(ctrl.State()).To(Equal(playback.Stopped))
			Expect(ctrl.Frame()).To(Equal(0))
			Expect(sched.timers).To(BeEmpty())
		})
	})

	Describe("with five frames", func() {
		BeforeEach(func() {
			ctrl.Load(5)
		})

		It("starts stopped at frame 0", func() {
			Expect(ctrl.State()).To(Equal(playback.Stopped))
			Expect(ctrl.Frame()).To(Equal(0))
			Expect(ctrl.Ready()).To(BeTrue())
		})

		It("arms one timer at 1s/speed on toggle", func() {
			ctrl.Handle(playback.TogglePlay)
			Expect(ctrl.State()).To(Equal(playback.Playing))
			Expect(sched.timers).To(HaveLen(1))
			Expect(sched.timers[0].interval).To(Equal(250 * time.Millisecond))
		})

		It("returns to stopped with the frame unchanged after two toggles", func() {
			ctrl.Handle(playback.TogglePlay)
			armed := ctrl.Armed()
			ctrl.Handle(playback.TogglePlay)

			Expect(ctrl.State()).To(Equal(playback.Stopped))
			Expect(ctrl.Frame()).To(Equal(0))
			Expect(sched.live()).To(Equal(0))
			Expect(ctrl.Tick(armed)).To(BeFalse())
			Expect(ctrl.Frame()).To(Equal(0))
		})

		It("wraps forced advances and then stops ticks at the last frame", func() {
			seen := []int{}
			for i := 0; i < 5; i++ {
				ctrl.Handle(playback.StepForward)
				seen = append(seen, ctrl.Frame())
			}
			Expect(seen).To(Equal([]int{1, 2, 3, 4, 0}))

			ctrl.Handle(playback.TogglePlay)
			for i := 0; i < 4; i++ {
				Expect(fire(ctrl)).To(BeTrue())
			}
			Expect(ctrl.Frame()).To(Equal(4))
			Expect(ctrl.State()).To(Equal(playback.Playing))

			Expect(fire(ctrl)).To(BeFalse())
			Expect(ctrl.Frame()).To(Equal(4))
			Expect(ctrl.State()).To(Equal(playback.Stopped))
			Expect(sched.live()).To(Equal(0))

			Expect(fire(ctrl)).To(BeFalse())
			Expect(ctrl.Frame()).To(Equal(4))
		})

		It("wraps to frame 0 and keeps playing with repeat", func() {
			ctrl.SetRepeat(true)
			ctrl.Handle(playback.TogglePlay)
			for i := 0; i < 4; i++ {
				fire(ctrl)
			}
			Expect(ctrl.Frame()).To(Equal(4))

			Expect(fire(ctrl)).To(BeTrue())
			Expect(ctrl.Frame()).To(Equal(0))
			Expect(ctrl.State()).To(Equal(playback.Playing))
		})

		It("steps back from frame 0 to the last frame", func() {
			ctrl.Handle(playback.StepBack)
			Expect(ctrl.Frame()).To(Equal(4))
			ctrl.Handle(playback.StepBack)
			Expect(ctrl.Frame()).To(Equal(3))
		})

		It("stops on every step and cancel", func() {
			for _, ev := range []playback.Event{playback.StepBack, playback.StepForward, playback.CancelPlayback} {
				ctrl.Handle(playback.TogglePlay)
				Expect(ctrl.Playing()).To(BeTrue())
				ctrl.Handle(ev)
				Expect(ctrl.Playing()).To(BeFalse(), "after %v", ev)
			}
			Expect(sched.live()).To(Equal(0))
		})

		It("leaves the frame alone on cancel", func() {
			ctrl.Handle(playback.StepForward)
			ctrl.Handle(playback.StepForward)
			ctrl.Handle(playback.CancelPlayback)
			Expect(ctrl.Frame()).To(Equal(2))
		})

		It("ignores ticks from a replaced timer", func() {
			ctrl.Handle(playback.TogglePlay)
			first := ctrl.Armed()
			Expect(ctrl.SetSpeed(8)).To(Succeed())

			Expect(sched.timers).To(HaveLen(2))
			Expect(sched.timers[0].stopped).To(BeTrue())
			Expect(sched.timers[1].interval).To(Equal(125 * time.Millisecond))
			Expect(ctrl.Tick(first)).To(BeFalse())
			Expect(fire(ctrl)).To(BeTrue())
			Expect(ctrl.Frame()).To(Equal(1))
		})

		It("rejects non-positive speeds", func() {
			Expect(ctrl.SetSpeed(0)).To(MatchError(playback.ErrInvalidSpeed))
			Expect(ctrl.SetSpeed(-1)).To(MatchError(playback.ErrInvalidSpeed))
			Expect(ctrl.Speed()).To(Equal(4.0))
		})

		It("rewinds and cancels on reload", func() {
			ctrl.Handle(playback.StepForward)
			ctrl.Handle(playback.TogglePlay)
			ctrl.Load(3)
			Expect(ctrl.Frame()).To(Equal(0))
			Expect(ctrl.Frames()).To(Equal(3))
			Expect(ctrl.Playing()).To(BeFalse())
			Expect(sched.live()).To(Equal(0))
		})

		It("stops on unload and close", func() {
			ctrl.Handle(playback.TogglePlay)
			ctrl.Unload()
			Expect(ctrl.Ready()).To(BeFalse())
			Expect(sched.live()).To(Equal(0))

			ctrl.Load(5)
			ctrl.Handle(playback.TogglePlay)
			ctrl.Close()
			Expect(sched.live()).To(Equal(0))
		})
	})
})

var _ = Describe("frame arithmetic", func() {
	DescribeTable("Advance",
		func(frame, n int, forced, repeat bool, next int, stop bool) {
			gotNext, gotStop := playback.Advance(frame, n, forced, repeat)
			Expect(gotNext).To(Equal(next))
			Expect(gotStop).To(Equal(stop))
		},
		Entry("middle", 1, 5, false, false, 2, false),
		Entry("end, plain tick", 4, 5, false, false, 4, true),
		Entry("end, forced", 4, 5, true, false, 0, false),
		Entry("end, repeat", 4, 5, false, true, 0, false),
		Entry("single frame", 0, 1, false, false, 0, true),
	)

	DescribeTable("Back",
		func(frame, n, want int) {
			Expect(playback.Back(frame, n)).To(Equal(want))
		},
		Entry("middle", 3, 5, 2),
		Entry("wrap", 0, 5, 4),
	)
})

var _ = Describe("TickerScheduler", func() {
	var (
		ticks chan playback.Timer
		ctrl  *playback.Controller
	)

	BeforeEach(func() {
		ticks = make(chan playback.Timer, 16)
		sched := playback.NewTickerScheduler(func(t playback.Timer) {
			select {
			case ticks <- t:
			default:
			}
		})
		ctrl = playback.NewController(sched, playback.Options{Speed: 100})
		ctrl.Load(5)
		DeferCleanup(ctrl.Close)
	})

	It("delivers ticks from the armed timer", func() {
		ctrl.Handle(playback.TogglePlay)

		var t playback.Timer
		Eventually(ticks).Should(Receive(&t))
		Expect(ctrl.Tick(t)).To(BeTrue())
		Expect(ctrl.Frame()).To(Equal(1))
	})

	It("delivers nothing after a double toggle", func() {
		ctrl.Handle(playback.TogglePlay)
		ctrl.Handle(playback.TogglePlay)

		// Drain anything that raced the stop; none of it may count.
		for len(ticks) > 0 {
			Expect(ctrl.Tick(<-ticks)).To(BeFalse())
		}
		Consistently(ticks, 100*time.Millisecond, 10*time.Millisecond).ShouldNot(Receive())
		Expect(ctrl.Frame()).To(Equal(0))
	})
})
