package stream

import (
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/darianrosebrook/animate-sub001/timeline"
	"github.com/darianrosebrook/animate-sub001/util"
)

// A Streamer publishes evaluated parameter frames over MQTT so a
// rendering consumer can drive effects from the timeline. Swapping in
// a new timeline crossfades the published values over the configured
// transition time.
type Streamer struct {
	config Config
	client mqtt.Client

	mu         sync.Mutex
	ctrl       *timeline.Controller
	next       *timeline.Controller
	transition float64
	increment  float64
	lut        []float64

	done chan struct{}
	once sync.Once
}

// NewStreamer creates a Streamer for a controller's timeline.
func NewStreamer(config Config, client mqtt.Client, ctrl *timeline.Controller) *Streamer {
	s := new(Streamer)
	s.config = config
	s.client = client
	s.ctrl = ctrl
	s.done = make(chan struct{})

	if s.config.FrameRate <= 0 {
		s.config.FrameRate = 30
	}
	if s.config.TransitionSecs <= 0 {
		s.config.TransitionSecs = 2
	}
	s.increment = 1.0 / (s.config.FrameRate * s.config.TransitionSecs)
	s.lut = util.CrossfadeLut(int(s.config.FrameRate * s.config.TransitionSecs))

	return s
}

// SetTimeline starts a crossfade from the current timeline's values to
// the next one's. The previous controller keeps running until the fade
// completes, then is destroyed.
func (s *Streamer) SetTimeline(next *timeline.Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next != nil {
		s.next.Destroy()
	}
	s.next = next
	s.transition = 0
}

// SendFrame captures the current frame, blending mid-transition, and
// publishes it.
func (s *Streamer) SendFrame() {
	s.mu.Lock()
	f := CaptureFrame(s.ctrl.Timeline())
	if s.next != nil {
		f2 := CaptureFrame(s.next.Timeline())
		eased := s.lut[int(util.Clamp01(s.transition)*float64(len(s.lut)-1))]
		f = f.InterpolateFrame(f2, eased)
		s.transition += s.increment

		if s.transition >= 1.0 {
			s.ctrl.Destroy()
			s.ctrl = s.next
			s.next = nil
			s.transition = 0
		}
	}
	s.mu.Unlock()

	b, err := f.MarshalPayload()
	if err != nil {
		log.Printf("frame marshal failed: %v", err)
		return
	}
	token := s.client.Publish(s.config.Mqtt.Topics.Frames, 0, false, b)
	token.Wait()
}

// Controller returns the controller currently being streamed.
func (s *Streamer) Controller() *timeline.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl
}

// Run publishes frames continuously until Stop is called.
func (s *Streamer) Run() {
	period := time.Duration(float64(time.Second) / s.config.FrameRate)
	publishTimer := time.NewTicker(period)
	defer publishTimer.Stop()
	for {
		select {
		case <-publishTimer.C:
			s.SendFrame()
		case <-s.done:
			return
		}
	}
}

// Stop ends the publish loop. Idempotent.
func (s *Streamer) Stop() {
	s.once.Do(func() {
		close(s.done)
	})
}
