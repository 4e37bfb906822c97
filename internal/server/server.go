// Package server exposes frame layout over HTTP.
//
// Routes:
//
//	GET  /catalog/{kind}  pipe or corner catalog rows
//	POST /frames          frame layout and cut list as JSON
//	POST /frames.stl      frame model as binary STL
//	GET  /metrics         prometheus metrics
//	GET  /healthz         liveness
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ose-d3d/frame"
	"github.com/ose-d3d/frame/catalog"
	"github.com/ose-d3d/frame/mesh"
)

// RequestIDHeader carries the request id in responses.
const RequestIDHeader = "X-Request-ID"

// maxBody limits request bodies.
const maxBody = 1 << 16

// Server serves frame layouts built from catalog parts.
type Server struct {
	logger  *log.Logger
	pipes   *catalog.Table
	corners *catalog.Table
	mesh    mesh.Options
	metrics *metrics
	router  chi.Router
}

// New returns a Server using the given catalogs. opts are the default
// tessellation options of STL requests; the zero Options means
// mesh.DefaultOptions.
func New(logger *log.Logger, pipes, corners *catalog.Table, opts mesh.Options) *Server {
	if opts == (mesh.Options{}) {
		opts = mesh.DefaultOptions
	}
	s := &Server{
		logger:  logger,
		pipes:   pipes,
		corners: corners,
		mesh:    opts,
		metrics: newMetrics(),
	}
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})
	r.Get("/catalog/{kind}", s.instrument("catalog", s.handleCatalog))
	r.Post("/frames", s.instrument("frames", s.handleFrame))
	r.Post("/frames.stl", s.instrument("frames.stl", s.handleFrameSTL))
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return err
		}
		return ctx.Err()
	}
}

type ctxKey int

const loggerKey ctxKey = 0

// requestID tags every request with a uuid and a logger carrying it.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		l := s.logger.With("request_id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), loggerKey, l)))
	})
}

func (s *Server) loggerFrom(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return s.logger
}

func (s *Server) instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		h(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.recordRequest(route, strconv.Itoa(status), time.Since(start))
		s.loggerFrom(r.Context()).Debug("request", "method", r.Method, "path", r.URL.Path,
			"status", status, "elapsed", time.Since(start).Round(time.Microsecond))
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	var t *catalog.Table
	switch kind := chi.URLParam(r, "kind"); kind {
	case "pipes":
		t = s.pipes
	case "corners":
		t = s.corners
	default:
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown catalog %q", kind))
		return
	}
	rows := make([]catalog.Row, t.Len())
	copy(rows, t.Rows())
	writeJSON(w, http.StatusOK, rows)
}

// FrameRequest is the body of frame requests. Lengths accept units.
type FrameRequest struct {
	LX     string `json:"lx"`
	LY     string `json:"ly"`
	LZ     string `json:"lz"`
	Pipe   string `json:"pipe"`
	Corner string `json:"corner"`
}

// FrameResponse describes a laid out frame.
type FrameResponse struct {
	ID      string       `json:"id"`
	Box     frame.Box    `json:"box"`
	Objects []ObjectInfo `json:"objects"`
	CutList []CutItem    `json:"cut_list"`
	Total   float64      `json:"total_pipe_length"`
}

// ObjectInfo is an assembly object and where it sits.
type ObjectInfo struct {
	Label    string     `json:"label"`
	Kind     string     `json:"kind"`
	Original string     `json:"original,omitempty"`
	Position [3]float64 `json:"position"`
}

// CutItem is a cut list line.
type CutItem struct {
	Count  int     `json:"count"`
	Length float64 `json:"length"`
	OD     float64 `json:"od"`
	Thk    float64 `json:"thk"`
}

// build decodes a frame request and lays out the frame. The returned
// status is the HTTP status of a failure.
func (s *Server) build(w http.ResponseWriter, r *http.Request) (frame.Box, *frame.Assembly, int, error) {
	var req FrameRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return frame.Box{}, nil, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err)
	}
	bt := catalog.NewBoxFromTable(s.pipes, s.corners)
	for _, f := range []struct {
		name, text string
		dst        *float64
	}{{"lx", req.LX, &bt.LX}, {"ly", req.LY, &bt.LY}, {"lz", req.LZ, &bt.LZ}} {
		if f.text == "" {
			continue
		}
		v, err := frame.ParseQuantity(f.text)
		if err != nil {
			return frame.Box{}, nil, http.StatusBadRequest, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}
	b, err := bt.Box(req.Pipe, req.Corner)
	if err == nil {
		var a *frame.Assembly
		if a, err = frame.Layout(b); err == nil {
			s.metrics.framesBuilt.WithLabelValues("ok").Inc()
			return b, a, 0, nil
		}
	}
	l := s.loggerFrom(r.Context())
	switch {
	case errors.Is(err, catalog.ErrPartNotFound):
		part := "pipe"
		if _, ok := s.corners.FindPart(req.Corner); !ok {
			part = "corner"
		}
		s.metrics.partMisses.WithLabelValues(part).Inc()
		s.metrics.framesBuilt.WithLabelValues("not_found").Inc()
		l.Error("part not found", "pipe", req.Pipe, "corner", req.Corner)
		return frame.Box{}, nil, http.StatusNotFound, err
	case errors.Is(err, frame.ErrImplausibleDimensions):
		s.metrics.framesBuilt.WithLabelValues("invalid").Inc()
		l.Warn("implausible dimensions", "err", err)
		return frame.Box{}, nil, http.StatusUnprocessableEntity, err
	}
	return frame.Box{}, nil, http.StatusInternalServerError, err
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	b, a, status, err := s.build(w, r)
	if err != nil {
		writeError(w, status, err)
		return
	}
	resp := FrameResponse{
		ID:    w.Header().Get(RequestIDHeader),
		Box:   b,
		Total: a.TotalPipeLength(),
	}
	for _, o := range a.Objects() {
		p := o.Placement.Base
		info := ObjectInfo{Label: o.Label, Kind: o.Kind.String(), Position: [3]float64{p.X, p.Y, p.Z}}
		if o.IsClone() {
			info.Original = o.Original().Label
		}
		resp.Objects = append(resp.Objects, info)
	}
	for _, it := range a.CutList() {
		resp.CutList = append(resp.CutList, CutItem{Count: it.Count, Length: it.Length, OD: it.OD, Thk: it.Thk})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFrameSTL(w http.ResponseWriter, r *http.Request) {
	opts := s.mesh
	q := r.URL.Query()
	if v := q.Get("segments"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < mesh.MinSegments || n > 512 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("segments must be an integer in [%d, 512]", mesh.MinSegments))
			return
		}
		opts.Segments = n
	}
	if v := q.Get("solid"); v != "" {
		solid, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("solid: %w", err))
			return
		}
		opts.Solid = solid
	}
	_, a, status, err := s.build(w, r)
	if err != nil {
		writeError(w, status, err)
		return
	}
	rd, err := mesh.NewAssemblyRenderer(a, opts)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	model, err := mesh.RenderAll(rd)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "model/stl")
	w.Header().Set("Content-Disposition", `attachment; filename="frame.stl"`)
	if err := mesh.WriteSTL(w, model); err != nil {
		s.loggerFrom(r.Context()).Error("writing stl", "err", err)
		return
	}
	s.metrics.triangles.Add(float64(len(model)))
}
