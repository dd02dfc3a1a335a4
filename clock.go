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

// Ring clock face program

package main

import (
	"flag"
	"image/png"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aamcrae/config"

	"github.com/aamcrae/timeoclock/face"
	"github.com/aamcrae/timeoclock/io"
	"github.com/aamcrae/timeoclock/render"
)

var configFile = flag.String("config", "", "Configuration file")
var port = flag.Int("port", -1, "Web server port number (overrides config, 0 disables)")
var snapshot = flag.String("snapshot", "", "Write a single frame to this PNG file and exit")
var startTime = flag.String("time", "", "Time of the snapshot frame e.g 10:08:30")
var ambient = flag.Bool("ambient", false, "Start in ambient mode")

func main() {
	flag.Parse()
	conf := face.DefaultConfig()
	if *configFile != "" {
		c, err := config.ParseFile(*configFile)
		if err != nil {
			log.Fatalf("%s: %v", *configFile, err)
		}
		conf, err = face.ReadConfig(c)
		if err != nil {
			log.Fatalf("%s: %v", *configFile, err)
		}
	}
	if *port >= 0 {
		conf.Port = *port
	}
	canvas := render.NewCanvas(conf.Theme)
	power := io.NewBattery(conf.Supply)
	if *snapshot != "" {
		if err := writeSnapshot(*snapshot, conf, canvas, power); err != nil {
			log.Fatalf("%s: %v", *snapshot, err)
		}
		return
	}
	h, err := newHost(conf, canvas, power)
	if err != nil {
		log.Fatalf("face: %v", err)
	}
	if conf.Button >= 0 {
		if err := h.watchButton(conf.Button); err != nil {
			log.Fatalf("button: gpio %d: %v", conf.Button, err)
		}
	}
	if conf.Backlight >= 0 {
		if err := h.openBacklight(conf); err != nil {
			log.Fatalf("backlight: pwm %d: %v", conf.Backlight, err)
		}
	}
	if conf.Port > 0 {
		go func() {
			log.Fatal(render.Serve(conf.Port, canvas, h))
		}()
	}
	go h.timeTicks()
	h.SetAmbient(*ambient)
	h.SetVisible(true)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sig
		log.Printf("%s: shutting down", s)
		h.Close()
	}()
	h.loop.Run()
	h.Close()
}

// writeSnapshot draws a single frame and saves it as a PNG.
func writeSnapshot(name string, conf *face.Config, canvas *render.Canvas, power face.PowerSource) error {
	t := time.Now()
	if *startTime != "" {
		st, err := time.Parse("15:04:05", *startTime)
		if err != nil {
			return err
		}
		t = time.Date(t.Year(), t.Month(), t.Day(), st.Hour(), st.Minute(), st.Second(), 0, time.Local)
	}
	e := face.NewEngine(conf, face.NewLoopTimer(face.NewLooper()), face.SystemClock{}, localZone, power, canvas)
	defer e.Close()
	if err := e.SurfaceChanged(conf.Width, conf.Height); err != nil {
		return err
	}
	e.SetAmbient(*ambient)
	e.DrawAt(t, face.BatteryFraction(power))
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, canvas.Frame()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func localZone() *time.Location {
	return time.Local
}
