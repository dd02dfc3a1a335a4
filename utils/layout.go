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


// Layout utility: prints the hand placements for times entered on stdin.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aamcrae/config"

	"github.com/aamcrae/timeoclock/face"
	"github.com/aamcrae/timeoclock/io"
)

var configFile = flag.String("config", "", "Configuration file")

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
	r, err := face.NewRing(conf.Width, conf.Height, conf.Gauge, conf.Diameter)
	if err != nil {
		log.Fatalf("Ring: %v", err)
	}
	fmt.Printf("Surface %dx%d, glyph diameter %.0f, ring radius %.1f\n", r.Width, r.Height, r.Diameter, r.Radius)
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Enter time or command ('help' for help) ")
		text, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		text = strings.TrimSuffix(text, "\n")
		switch text {
		case "help":
			fmt.Println("  help - print help")
			fmt.Println("  HH:MM:SS - print the layout at that time")
			fmt.Println("  b - print the battery level")
			fmt.Println("  q - quit")
		case "q":
			return
		case "b":
			f := face.BatteryFraction(io.NewBattery(conf.Supply))
			start, sweep := face.BatteryArc(f)
			fmt.Printf("Battery %.0f%%, gauge from %.0f sweeping %.1f degrees\n", f*100, start, sweep)
		default:
			t, err := time.Parse("15:04:05", text)
			if err != nil {
				fmt.Printf("Unrecognised input\n")
				continue
			}
			l := r.Place(face.TimeOf(t))
			for h := face.Seconds; h <= face.Hours; h++ {
				p := l[h]
				fmt.Printf("  %-7s angle %6.1f displacement %3.0f centre (%.1f, %.1f)\n",
					h, (p.Angle-face.RotationOffset)*face.RadiansToDegrees, p.Displacement, p.Center.X, p.Center.Y)
			}
		}
	}
}
