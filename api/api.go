// Package api serves the operator-facing status endpoints: an embedded HTML
// overview of the room table plus JSON views of rooms and replay histories.
package api

import (
	_ "embed"
	"encoding/json"
	"html/template"
	"net/http"
	_ "net/http/pprof"
	"strconv"

	l4g "github.com/alecthomas/log4go"

	"lockstep-arena/room"
)

//go:embed index.html
var index string

// WebAPI is the http status api.
type WebAPI struct {
	rooms    room.Table
	registry *room.Registry
	tmpl     *template.Template
}

// NewWebAPI registers the handlers on the default mux and serves them on
// addr in the background.
func NewWebAPI(addr string, rooms room.Table, registry *room.Registry) *WebAPI {
	a := &WebAPI{
		rooms:    rooms,
		registry: registry,
		tmpl:     template.Must(template.New("index").Parse(index)),
	}

	http.HandleFunc("/", a.index)
	http.HandleFunc("/rooms", a.listRooms)
	http.HandleFunc("/history", a.history)

	go func() {
		l4g.Info("[api] listen addr=[%s]", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			panic(err)
		}
	}()

	return a
}

type roomView struct {
	ID      int    `json:"roomId"`
	Status  string `json:"status"`
	Tick    int    `json:"currentTick"`
	Clients int    `json:"clients"`
	Size    int    `json:"size"`
}

func (a *WebAPI) snapshot() []roomView {
	views := make([]roomView, 0, len(a.rooms))
	for _, r := range a.rooms {
		views = append(views, roomView{
			ID:      r.ID(),
			Status:  r.Status().String(),
			Tick:    r.CurrentTick(),
			Clients: r.ClientCount(),
			Size:    r.Size(),
		})
	}
	return views
}

func (a *WebAPI) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := struct {
		Connected int
		Rooms     []roomView
	}{
		Connected: a.registry.Count(),
		Rooms:     a.snapshot(),
	}
	if err := a.tmpl.Execute(w, data); err != nil {
		l4g.Error("[api] render index: %v", err)
	}
}

func (a *WebAPI) listRooms(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a.snapshot())
}

// history returns the replay payload captured when the room last closed.
// 404 until a session has closed, or again after the room restarted.
func (a *WebAPI) history(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("room"))
	if err != nil {
		http.Error(w, "bad room id", http.StatusBadRequest)
		return
	}

	rm := a.rooms.Get(id)
	if rm == nil {
		http.Error(w, "no such room", http.StatusNotFound)
		return
	}

	history := rm.History()
	if history == nil {
		http.Error(w, "no history", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(history)
}
