// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package face

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aamcrae/config"
)

// Config holds the face configuration, read from a configuration file.
type Config struct {
	Width      int           // Surface width
	Height     int           // Surface height
	Tick       time.Duration // Redraw interval in interactive mode
	Gauge      int           // Width of the battery gauge
	Diameter   int           // Glyph diameter, 0 to derive from the width
	Theme      string        // Colour of the gauge and glyphs as RRGGBB or RRGGBBAA
	LowBattery float64       // Fraction below which the low battery icon is shown
	Supply     string        // sysfs power supply directory
	Button     int           // GPIO for the tap button, -1 if none
	Backlight  int           // PWM unit for the backlight, -1 if none
	Active     int           // Backlight duty cycle percentage in interactive mode
	Dim        int           // Backlight duty cycle percentage in ambient mode
	Port       int           // Preview server port, 0 to disable
}

// DefaultConfig returns the configuration used for any value not
// present in the configuration file.
func DefaultConfig() *Config {
	return &Config{
		Width:      320,
		Height:     320,
		Tick:       DefaultTick,
		Gauge:      10,
		Theme:      "FFB020AA",
		LowBattery: 0.1,
		Supply:     "/sys/class/power_supply/BAT0",
		Button:     -1,
		Backlight:  -1,
		Active:     100,
		Dim:        10,
		Port:       8080,
	}
}

// ReadConfig reads the face configuration from the config sections,
// starting from the defaults.
// Sample config:
//  [face]
//  # Surface width and height
//  size=320,320
//  # Redraw interval in interactive mode
//  tick=50ms
//  # Battery gauge width
//  gauge=10
//  # Glyph diameter (0 = width/5)
//  diameter=0
//  # Gauge and glyph colour, RRGGBBAA
//  theme=FFB020AA
//  # Low battery threshold
//  low=0.1
//  [power]
//  supply=/sys/class/power_supply/BAT0
//  [button]
//  gpio=17
//  [backlight]
//  pwm=0
//  # Interactive and ambient duty cycle
//  duty=100,10
//  [server]
//  port=8080
func ReadConfig(conf *config.Config) (*Config, error) {
	c := DefaultConfig()
	if s := conf.GetSection("face"); s != nil {
		if err := parse(s, "size", "%d,%d", &c.Width, &c.Height); err != nil {
			return nil, err
		}
		if err := duration(s, "tick", &c.Tick); err != nil {
			return nil, err
		}
		if err := parse(s, "gauge", "%d", &c.Gauge); err != nil {
			return nil, err
		}
		if err := parse(s, "diameter", "%d", &c.Diameter); err != nil {
			return nil, err
		}
		if err := arg(s, "theme", &c.Theme); err != nil {
			return nil, err
		}
		if err := parse(s, "low", "%f", &c.LowBattery); err != nil {
			return nil, err
		}
	}
	if s := conf.GetSection("power"); s != nil {
		if err := arg(s, "supply", &c.Supply); err != nil {
			return nil, err
		}
	}
	if s := conf.GetSection("button"); s != nil {
		if err := parse(s, "gpio", "%d", &c.Button); err != nil {
			return nil, err
		}
	}
	if s := conf.GetSection("backlight"); s != nil {
		if err := parse(s, "pwm", "%d", &c.Backlight); err != nil {
			return nil, err
		}
		if err := parse(s, "duty", "%d,%d", &c.Active, &c.Dim); err != nil {
			return nil, err
		}
	}
	if s := conf.GetSection("server"); s != nil {
		if err := parse(s, "port", "%d", &c.Port); err != nil {
			return nil, err
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the configuration for values that cannot produce a face.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("size: invalid surface size %dx%d", c.Width, c.Height)
	}
	if c.Tick <= 0 {
		return fmt.Errorf("tick: invalid interval %s", c.Tick)
	}
	if c.Gauge < 0 {
		return fmt.Errorf("gauge: invalid width %d", c.Gauge)
	}
	if c.Diameter < 0 {
		return fmt.Errorf("diameter: invalid glyph diameter %d", c.Diameter)
	}
	if _, err := strconv.ParseUint(c.Theme, 16, 32); err != nil || (len(c.Theme) != 6 && len(c.Theme) != 8) {
		return fmt.Errorf("theme: %s is not a hex colour", c.Theme)
	}
	if c.LowBattery < 0 || c.LowBattery > 1 {
		return fmt.Errorf("low: %g is not a fraction", c.LowBattery)
	}
	if c.Active < 0 || c.Active > 100 || c.Dim < 0 || c.Dim > 100 {
		return fmt.Errorf("duty: invalid duty cycle percentage")
	}
	// Check that the surface can hold the ring.
	_, err := NewRing(c.Width, c.Height, c.Gauge, c.Diameter)
	return err
}

// parse parses an optional key. A missing key leaves the default in place.
func parse(s *config.Section, key, format string, args ...interface{}) error {
	if !s.Has(key) {
		return nil
	}
	n, err := s.Parse(key, format, args...)
	if err != nil {
		return fmt.Errorf("%s: %v", key, err)
	}
	if n != len(args) {
		return fmt.Errorf("%s: argument count", key)
	}
	return nil
}

// arg reads an optional single value key.
func arg(s *config.Section, key string, v *string) error {
	if !s.Has(key) {
		return nil
	}
	a, err := s.GetArg(key)
	if err != nil {
		return fmt.Errorf("%s: %v", key, err)
	}
	*v = a
	return nil
}

func duration(s *config.Section, key string, d *time.Duration) error {
	if !s.Has(key) {
		return nil
	}
	v, err := s.GetArg(key)
	if err == nil {
		*d, err = time.ParseDuration(v)
	}
	if err != nil {
		return fmt.Errorf("%s: %v", key, err)
	}
	return nil
}
