package stream

import (
	"context"
	"log"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
)

// Streamer that streams RGB data frames to an ledrx device.
type Streamer struct {
	client        mqtt.Client
	controller    *Controller
	streamTopic   string
	programTopic  string
	frameInterval time.Duration
	clock         Clock
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, client mqtt.Client, controller *Controller, clock Clock) *Streamer {
	s := new(Streamer)
	s.client = client
	s.controller = controller
	s.streamTopic = config.Mqtt.Topics.Stream
	s.programTopic = config.Mqtt.Topics.Program
	s.frameInterval = time.Duration(float64(time.Second) / config.Strip.FrameRate)
	s.clock = clock
	return s
}

// SendFrame sends a frame as binary over MQTT to an ledrx device.
func (s *Streamer) SendFrame() error {
	f := s.controller.CalculateFrame(s.clock())
	b, err := f.MarshalBinary()
	if err != nil {
		publishErrors.Inc()
		return err
	}
	token := s.client.Publish(s.streamTopic, 0, false, b)
	token.Wait()
	if err := token.Error(); err != nil {
		publishErrors.Inc()
		return errors.Wrap(err, "publishing frame")
	}
	framesPublished.Inc()
	return nil
}

// Subscribe listens for program selections on the program topic.
func (s *Streamer) Subscribe() error {
	token := s.client.Subscribe(s.programTopic, 0, s.handleProgramMessage)
	token.Wait()
	return errors.Wrapf(token.Error(), "subscribing to %s", s.programTopic)
}

func (s *Streamer) handleProgramMessage(client mqtt.Client, msg mqtt.Message) {
	log.Printf("Received msg %d on %s: %s\n", msg.MessageID(), msg.Topic(), msg.Payload())
	if err := s.selectProgram(msg.Payload()); err != nil {
		log.Println(err)
	}
}

func (s *Streamer) selectProgram(payload []byte) error {
	name := strings.TrimSpace(string(payload))
	return s.controller.Select(name, s.clock())
}

// Run causes the Streamer to send Frames continuously until ctx is done.
func (s *Streamer) Run(ctx context.Context) {
	publishTimer := time.NewTicker(s.frameInterval)
	defer publishTimer.Stop()
	for {
		select {
		case <-publishTimer.C:
			if err := s.SendFrame(); err != nil {
				log.Println(err)
			}
		case <-ctx.Done():
			return
		}
	}
}
