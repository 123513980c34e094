package stream

import (
	"io"
	"os"

	"github.com/matt-g-everett/ledprog/animation"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topics   struct {
			Stream  string `yaml:"stream"`
			Program string `yaml:"program"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Strip StripConfig `yaml:"strip"`
	HTTP  struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Programs []ProgramConfig `yaml:"programs"`
	Playlist []PlaylistEntry `yaml:"playlist"`
}

// StripConfig describes the output strip and frame timing.
type StripConfig struct {
	Pixels         int     `yaml:"pixels"`
	FrameRate      float64 `yaml:"frameRate"`
	TransitionSecs float64 `yaml:"transitionSecs"`
	CycleSecs      float64 `yaml:"cycleSecs"`
	Bpm            float64 `yaml:"bpm"`
}

// PlaylistEntry shows a program for a number of cycles.
type PlaylistEntry struct {
	Program string `yaml:"program"`
	Cycles  int    `yaml:"cycles"`
}

// ProgramConfig describes one AnimatedProgram.
type ProgramConfig struct {
	Name       string          `yaml:"name"`
	Color      string          `yaml:"color"`
	Brightness *CurveConfig    `yaml:"brightness"`
	Segments   []SegmentConfig `yaml:"segments"`
}

type SegmentConfig struct {
	From CurveConfig `yaml:"from"`
	To   CurveConfig `yaml:"to"`
}

// CurveConfig is one of a constant, a keyframe animation or a sequence of
// keyframe animations.
type CurveConfig struct {
	Constant  *uint32                `yaml:"constant"`
	Keyframes []animation.Keyframe   `yaml:"keyframes"`
	Loop      bool                   `yaml:"loop"`
	Sequence  [][]animation.Keyframe `yaml:"sequence"`
	Repeat    bool                   `yaml:"repeat"`
}

func (c *Config) setDefaults() {
	if c.Mqtt.Topics.Stream == "" {
		c.Mqtt.Topics.Stream = "home/xmastree/stream"
	}
	if c.Mqtt.Topics.Program == "" {
		c.Mqtt.Topics.Program = "home/xmastree/program"
	}
	if c.Strip.Pixels <= 0 {
		c.Strip.Pixels = DefaultPixels
	}
	if c.Strip.FrameRate <= 0 {
		c.Strip.FrameRate = 30
	}
	if c.Strip.TransitionSecs < 0 {
		c.Strip.TransitionSecs = 0
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":3000"
	}
}

// ReadConfig decodes a YAML config and fills in defaults.
func ReadConfig(r io.Reader) (Config, error) {
	var c Config
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&c); err != nil && err != io.EOF {
		return c, errors.Wrap(err, "decoding config")
	}
	c.setDefaults()
	if err := c.validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.Strip.Pixels > MaxPixels {
		return errors.Errorf("strip.pixels is %d, at most %d supported", c.Strip.Pixels, MaxPixels)
	}
	for i, e := range c.Playlist {
		if e.Cycles < 0 {
			return errors.Errorf("playlist entry %d (%s): negative cycles", i, e.Program)
		}
	}
	return nil
}

// LoadConfig reads the YAML config file at path.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "opening config")
	}
	defer f.Close()

	c, err := ReadConfig(f)
	if err != nil {
		return c, errors.Wrapf(err, "reading %s", path)
	}
	return c, nil
}
