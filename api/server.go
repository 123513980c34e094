package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/matt-g-everett/ledprog/stream"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Selector switches between named programs.
type Selector interface {
	Current() string
	Select(name string, runtimeMs int64) error
}

type programsResponse struct {
	Programs []string `json:"programs"`
	Current  string   `json:"current"`
}

type selectRequest struct {
	Name string `json:"name"`
}

// Api serves program control, metrics and the web client.
type Api struct {
	library   *stream.Library
	selector  Selector
	clock     stream.Clock
	staticDir string
	router    *mux.Router
}

func NewApi(library *stream.Library, selector Selector, clock stream.Clock, staticDir string) *Api {
	a := new(Api)
	a.library = library
	a.selector = selector
	a.clock = clock
	a.staticDir = staticDir

	r := mux.NewRouter()
	r.HandleFunc("/programs", a.handleList).Methods(http.MethodGet)
	r.HandleFunc("/programs/current", a.handleSelect).Methods(http.MethodPut)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))
	a.router = r

	return a
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *Api) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, programsResponse{
		Programs: a.library.Names(),
		Current:  a.selector.Current(),
	})
}

func (a *Api) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := a.selector.Select(req.Name, a.clock()); err != nil {
		if errors.Is(err, stream.ErrUnknownProgram) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, programsResponse{
		Programs: a.library.Names(),
		Current:  a.selector.Current(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Writing response: %v", err)
	}
}

// Serve listens on addr until the server fails.
func (a *Api) Serve(addr string) error {
	log.Printf("Listening on %s...", addr)
	return http.ListenAndServe(addr, a)
}
