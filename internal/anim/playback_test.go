package anim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rigposer/internal/anim"
	"github.com/san-kum/rigposer/internal/rig"
)

var _ = Describe("Playback", func() {
	var tl *anim.Timeline

	BeforeEach(func() {
		tl = anim.New()
	})

	It("starts stopped at frame zero", func() {
		Expect(tl.State()).To(Equal(anim.Stopped))
		Expect(tl.CurrentFrame()).To(Equal(0))
		Expect(tl.AnimationTime()).To(BeZero())
	})

	It("ignores updates unless playing", func() {
		tl.Update(1.0)
		Expect(tl.AnimationTime()).To(BeZero())

		tl.Play()
		tl.Pause()
		tl.Update(1.0)
		Expect(tl.AnimationTime()).To(BeZero())
		Expect(tl.State().String()).To(Equal("paused"))
	})

	It("resumes without rewinding", func() {
		tl.Play()
		tl.Update(0.5)
		tl.Pause()
		tl.Play()
		tl.Update(0.25)
		Expect(tl.AnimationTime()).To(BeNumerically("~", 0.75, 1e-9))
		Expect(tl.CurrentFrame()).To(Equal(90))
	})

	It("rewinds on stop", func() {
		tl.Play()
		tl.Update(2)
		tl.Stop()
		Expect(tl.IsPlaying()).To(BeFalse())
		Expect(tl.CurrentFrame()).To(Equal(0))
		Expect(tl.AnimationTime()).To(BeZero())
	})

	Context("when looping", func() {
		It("wraps time at the duration", func() {
			tl.SetPlaybackSpeed(2.0)
			tl.Play()
			tl.Update(3.0)
			Expect(tl.Duration()).To(Equal(5.0))
			Expect(tl.AnimationTime()).To(BeNumerically("~", 1.0, 1e-9))
			Expect(tl.CurrentFrame()).To(Equal(120))
			Expect(tl.IsPlaying()).To(BeTrue())
		})
	})

	Context("when not looping", func() {
		BeforeEach(func() {
			tl.SetLoop(false)
		})

		It("pauses at the end without passing maxFrame", func() {
			tl.Play()
			tl.Update(4.9)
			Expect(tl.IsPlaying()).To(BeTrue())

			tl.Update(0.5)
			Expect(tl.IsPlaying()).To(BeFalse())
			Expect(tl.State()).To(Equal(anim.Paused))
			Expect(tl.AnimationTime()).To(Equal(tl.Duration()))
			Expect(tl.CurrentFrame()).To(BeNumerically("<=", tl.MaxFrame()))
		})

		It("caps the frame when the duration outruns the frame range", func() {
			doc := `{"version": "2.0", "maxFrame": 600, "duration": 20, "keyframesByBodyPart": {}}`
			Expect(tl.Import([]byte(doc))).To(Succeed())
			tl.SetKeyframe(0, rig.NewAngles())
			tl.Play()
			tl.Update(100)
			Expect(tl.AnimationTime()).To(Equal(20.0))
			Expect(tl.CurrentFrame()).To(Equal(600))
		})
	})

	Describe("SetFrame", func() {
		It("clamps and syncs time", func() {
			tl.SetFrame(240)
			Expect(tl.CurrentFrame()).To(Equal(240))
			Expect(tl.AnimationTime()).To(Equal(2.0))

			tl.SetFrame(-3)
			Expect(tl.CurrentFrame()).To(Equal(0))

			tl.SetFrame(10000)
			Expect(tl.CurrentFrame()).To(Equal(600))
		})
	})

	Describe("speed and rate", func() {
		It("floors negative speed at zero", func() {
			tl.SetPlaybackSpeed(-3)
			Expect(tl.PlaybackSpeed()).To(BeZero())
			tl.Play()
			tl.Update(1)
			Expect(tl.AnimationTime()).To(BeZero())
		})

		It("ignores non-positive frame rates", func() {
			tl.SetFrameRate(0)
			tl.SetFrameRate(-24)
			Expect(tl.FrameRate()).To(Equal(120.0))
		})

		It("recomputes the duration for a new rate", func() {
			tl.SetFrameRate(30)
			Expect(tl.Duration()).To(Equal(20.0))
		})
	})
})
