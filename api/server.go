package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/darianrosebrook/animate-sub001/timeline"
)

type Api struct {
	ctrl *timeline.Controller
}

func NewApi(ctrl *timeline.Controller) *Api {
	a := new(Api)
	a.ctrl = ctrl
	return a
}

type status struct {
	State       string  `json:"state"`
	CurrentTime float64 `json:"currentTime"`
	Duration    float64 `json:"duration"`
	FrameRate   float64 `json:"frameRate"`
	Tracks      int     `json:"tracks"`
	CanUndo     bool    `json:"canUndo"`
	CanRedo     bool    `json:"canRedo"`
}

func (a *Api) handleStatus(w http.ResponseWriter, r *http.Request) {
	tl := a.ctrl.Timeline()
	s := status{
		State:       string(tl.State()),
		CurrentTime: tl.CurrentTime(),
		Duration:    tl.Duration(),
		FrameRate:   tl.FrameRate(),
		Tracks:      len(tl.Tracks()),
		CanUndo:     a.ctrl.CanUndo(),
		CanRedo:     a.ctrl.CanRedo(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

func (a *Api) Serve(addr string) {
	http.HandleFunc("/status", a.handleStatus)
	fs := http.FileServer(http.Dir("client/dist"))
	http.Handle("/", fs)

	log.Println("Listening...")
	http.ListenAndServe(addr, nil)
}
