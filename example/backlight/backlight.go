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


// Program to demonstrate the backlight switching between display modes

package main

import (
	"flag"
	"log"
	"time"

	"github.com/aamcrae/timeoclock/io"
)

var pwmUnit = flag.Int("pwm", 0, "PWM unit for the backlight")
var active = flag.Int("active", 100, "Duty cycle percentage in interactive mode")
var dim = flag.Int("dim", 10, "Duty cycle percentage in ambient mode")
var cycles = flag.Int("cycles", 5, "Number of mode changes")
var hold = flag.Duration("hold", 2*time.Second, "Time in each mode")

func main() {
	flag.Parse()
	pwm, err := io.NewHwPWM(*pwmUnit)
	if err != nil {
		log.Fatalf("PWM unit %d: %v", *pwmUnit, err)
	}
	bl, err := io.NewBacklight(pwm, *active, *dim)
	if err != nil {
		pwm.Close()
		log.Fatalf("PWM unit %d: %v", *pwmUnit, err)
	}
	defer bl.Close()
	ambient := false
	for i := 0; i < *cycles; i++ {
		time.Sleep(*hold)
		ambient = !ambient
		log.Printf("ambient %v", ambient)
		bl.SetAmbient(ambient)
	}
}
