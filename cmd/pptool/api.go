package main

import (
	"encoding/json"
	"errors"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"path/filepath"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gorilla/mux"
	"github.com/santanalab/pptool/artifact"
	"github.com/santanalab/pptool/gcode"
	"github.com/santanalab/pptool/toolpath"
)

// eventsGenerated carries a Result for every artifact written by the API.
const eventsGenerated = "/events/generated"

type api struct {
	http.Handler
	app *app
	sse *sse.Server
}

func newAPI(a *app) *api {
	r := mux.NewRouter()

	srv := &api{
		Handler: r,
		app:     a,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(ioutil.Discard, "", 0),
		}),
	}

	r.HandleFunc("/api/line", srv.line).Methods("POST")
	r.HandleFunc("/api/circle", srv.circle).Methods("POST")
	r.HandleFunc("/api/gradient", srv.gradient).Methods("POST")

	r.HandleFunc("/data/{name}", srv.getFile).Methods("GET", "HEAD")
	r.HandleFunc("/data/{name}", srv.deleteFile).Methods("DELETE")

	r.PathPrefix("/events/").Handler(srv.sse)

	return srv
}

// artifactPath resolves a /data/{name} request to an artifact file. Only the
// well-known artifact names are served.
func (a *api) artifactPath(w http.ResponseWriter, req *http.Request) (string, bool) {
	name := mux.Vars(req)["name"]
	k, err := artifact.ParseKind(name)
	if err != nil {
		log.Printf("reject data request '%s': %v", name, err)
		http.NotFound(w, req)
		return "", false
	}
	return a.app.writer.Path(k), true
}

func decode(w http.ResponseWriter, req *http.Request, v interface{}) bool {
	err := json.NewDecoder(req.Body).Decode(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (a *api) line(w http.ResponseWriter, req *http.Request) {
	r := newLineRequest()
	if !decode(w, req, &r) {
		return
	}
	seq, err := a.app.line(r)
	a.respond(w, artifact.Line, seq, err)
}

func (a *api) circle(w http.ResponseWriter, req *http.Request) {
	r := newCircleRequest()
	if !decode(w, req, &r) {
		return
	}
	seq, err := a.app.circle(r)
	a.respond(w, artifact.Circle, seq, err)
}

func (a *api) gradient(w http.ResponseWriter, req *http.Request) {
	r := newGradientRequest()
	if !decode(w, req, &r) {
		return
	}
	seq, err := a.app.gradient(r)
	a.respond(w, artifact.Gradient, seq, err)
}

func (a *api) respond(w http.ResponseWriter, kind artifact.Kind, seq toolpath.Sequence, err error) {
	if errors.Is(err, toolpath.ErrInvalidParameter) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Printf("ERROR: generate %s: %+v", kind, err)
		http.Error(w, err.Error(), 500)
		return
	}

	res, err := a.app.save(kind, seq)
	if err != nil {
		log.Printf("ERROR: save %s: %+v", kind, err)
		http.Error(w, err.Error(), 500)
		return
	}

	data, err := json.Marshal(res)
	if err != nil {
		log.Printf("ERROR: marshal json: %+v", err)
	} else {
		a.sse.SendMessage(eventsGenerated, sse.SimpleMessage(string(data)))
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Artifact", filepath.Base(res.File))
	_, err = io.Copy(w, gcode.NewBufferPrecision(&gcode.BlocksReader{Blocks: seq}, a.app.writer.Precision))
	if err != nil {
		log.Println("ERROR: write response:", err)
	}
}

func (a *api) getFile(w http.ResponseWriter, req *http.Request) {
	name, ok := a.artifactPath(w, req)
	if !ok {
		return
	}
	http.ServeFile(w, req, name)
}

func (a *api) deleteFile(w http.ResponseWriter, req *http.Request) {
	name, ok := a.artifactPath(w, req)
	if !ok {
		return
	}
	err := os.Remove(name)
	if os.IsNotExist(err) {
		http.NotFound(w, req)
		return
	}
	if err != nil {
		log.Printf("ERROR: delete '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
