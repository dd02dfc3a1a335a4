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

// HTTP server for face images and display mode notifications.

package render

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aamcrae/timeoclock/face"
)

// Notifier delivers display mode changes to the face.
type Notifier interface {
	SetVisible(bool)
	SetAmbient(bool)
	Tap()
	SetZone(*time.Location)
	Status() face.Status
}

// Framer provides the last drawn frame.
type Framer interface {
	Frame() image.Image
}

// status is the JSON form of face.Status.
type status struct {
	Visible bool      `json:"visible"`
	Ambient bool      `json:"ambient"`
	State   string    `json:"state"`
	Battery float64   `json:"battery"`
	Frames  int       `json:"frames"`
	Time    time.Time `json:"time"`
	Hands   []hand    `json:"hands"`
}

type hand struct {
	Name         string  `json:"name"`
	Angle        float64 `json:"angle"`
	Displacement float64 `json:"displacement"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
}

// NewRouter returns the routes for the face server:
//  GET  /face.png          last drawn frame
//  GET  /status            engine status as JSON
//  POST /visible/{on}      show or hide the face
//  POST /ambient/{on}      enter or leave ambient mode
//  POST /tap               tap the face
//  POST /zone?name=        change the time zone e.g /zone?name=Australia/Sydney
func NewRouter(f Framer, n Notifier) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Get("/face.png", frameHandler(f))
	r.Get("/status", statusHandler(n))
	r.Post("/visible/{on}", flagHandler(n.SetVisible))
	r.Post("/ambient/{on}", flagHandler(n.SetAmbient))
	r.Post("/tap", func(w http.ResponseWriter, r *http.Request) {
		n.Tap()
		w.WriteHeader(http.StatusNoContent)
	})
	r.Post("/zone", func(w http.ResponseWriter, r *http.Request) {
		loc, err := time.LoadLocation(r.URL.Query().Get("name"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		n.SetZone(loc)
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

// Serve runs the face server on port until it fails.
func Serve(port int, f Framer, n Notifier) error {
	url := fmt.Sprintf(":%d", port)
	log.Printf("Starting server on %s", url)
	server := &http.Server{
		Addr:              url,
		Handler:           NewRouter(f, n),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
	return server.ListenAndServe()
}

func frameHandler(f Framer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		img := f.Frame()
		if img == nil {
			http.Error(w, "no frame drawn", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		if err := png.Encode(w, img); err != nil {
			log.Printf("Error writing image: %v", err)
		}
	}
}

func statusHandler(n Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := n.Status()
		st := status{
			Visible: s.Visible,
			Ambient: s.Ambient,
			State:   s.State.String(),
			Battery: s.Battery,
			Frames:  s.Frames,
			Time:    s.Time,
		}
		for h := face.Seconds; h <= face.Hours; h++ {
			p := s.Layout[h]
			st.Hands = append(st.Hands, hand{h.String(), p.Angle, p.Displacement, p.Center.X, p.Center.Y})
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(st); err != nil {
			log.Printf("Error writing status: %v", err)
		}
	}
}

func flagHandler(set func(bool)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		on, err := strconv.ParseBool(chi.URLParam(r, "on"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		set(on)
		w.WriteHeader(http.StatusNoContent)
	}
}
