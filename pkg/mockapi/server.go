package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/getmockd/restapi/pkg/httputil"
	"github.com/getmockd/restapi/pkg/logging"
	"github.com/getmockd/restapi/pkg/query"
	"github.com/getmockd/restapi/pkg/schema"
)

// maxBodySize caps request bodies accepted by POST and PUT.
const maxBodySize = 1 << 20

// ServerConfig configures a Server.
type ServerConfig struct {
	// Store holds the served collections. When nil a store with
	// Resources (or DefaultResources) is created.
	Store *Store
	// Resources names the collections of a newly created store.
	Resources []string
	// Logger receives one line per request. Nil disables logging.
	Logger *slog.Logger
}

// Server exposes a Store as a REST API.
type Server struct {
	store  *Store
	router chi.Router
	log    *slog.Logger

	mu   sync.Mutex
	http *http.Server
}

// NewServer builds the router for every collection in the store.
func NewServer(cfg ServerConfig) *Server {
	st := cfg.Store
	if st == nil {
		st = NewStore(cfg.Resources...)
	}
	s := &Server{
		store: st,
		log:   logging.OrNop(cfg.Logger),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(chimw.Recoverer)

	r.Route("/_admin", func(r chi.Router) {
		r.Post("/reset", s.handleReset)
		r.Get("/state", s.handleState)
	})

	for _, name := range s.store.Names() {
		c, _ := s.store.Collection(name)
		r.Route("/"+name, func(r chi.Router) {
			r.Get("/", s.handleList(c))
			r.Post("/", s.handleCreate(c))
			r.Get("/{id}", s.handleGet(c))
			r.Head("/{id}", s.handleHead(c))
			r.Put("/{id}", s.handleUpdate(c))
			r.Delete("/{id}", s.handleDelete(c))
		})
	}
	return r
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Store returns the backing store.
func (s *Server) Store() *Store {
	return s.store
}

// Reset empties every collection and restarts ids.
func (s *Server) Reset() {
	s.store.Reset()
}

// Start listens on addr and serves in the background. It returns the
// bound address, which differs from addr when addr uses port 0.
func (s *Server) Start(addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", err
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.http = srv
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("server stopped", "error", err)
		}
	}()
	s.log.Info("mock resource server listening", "addr", ln.Addr().String(), "resources", s.store.Names())
	return ln.Addr().String(), nil
}

// Shutdown gracefully stops a server started with Start.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.http
	s.http = nil
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (s *Server) handleList(c *Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := query.Parse(r.URL.Query().Get(query.Param))
		if err != nil {
			s.writeError(w, &ValidationError{Message: err.Error()})
			return
		}
		httputil.WriteOK(w, c.All(q))
	}
}

func (s *Server) handleGet(c *Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := s.find(c, r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		httputil.WriteOK(w, rec)
	}
}

func (s *Server) handleHead(c *Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.find(c, r); err != nil {
			var sc StatusCodeError
			if errors.As(err, &sc) {
				httputil.WriteStatus(w, sc.StatusCode())
				return
			}
			httputil.WriteStatus(w, http.StatusInternalServerError)
			return
		}
		httputil.WriteStatus(w, http.StatusOK)
	}
}

func (s *Server) handleCreate(c *Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := readRecord(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		httputil.WriteCreated(w, c.Create(rec))
	}
}

func (s *Server) handleUpdate(c *Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := recordID(c, r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		fields, err := readRecord(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		rec, err := c.Update(id, fields)
		if err != nil {
			s.writeError(w, err)
			return
		}
		httputil.WriteOK(w, rec)
	}
}

func (s *Server) handleDelete(c *Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := recordID(c, r)
		if err == nil {
			err = c.Delete(id)
		}
		if err != nil {
			s.writeError(w, err)
			return
		}
		httputil.WriteStatus(w, http.StatusOK)
	}
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.store.Reset()
	httputil.WriteOK(w, map[string]any{"reset": true, "resources": s.store.Names()})
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteOK(w, s.store.Overview())
}

func (s *Server) find(c *Collection, r *http.Request) (schema.Record, error) {
	id, err := recordID(c, r)
	if err != nil {
		return nil, err
	}
	return c.Find(id)
}

// recordID parses the {id} path segment. An id that is not an integer
// cannot name a record, so it is reported as not found.
func recordID(c *Collection, r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &NotFoundError{Resource: c.Name(), ID: raw}
	}
	return id, nil
}

// readRecord decodes a JSON object body. An empty body is an empty record.
func readRecord(r *http.Request) (schema.Record, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, &ValidationError{Message: "failed to read request body"}
	}
	rec := make(schema.Record)
	if len(data) == 0 {
		return rec, nil
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, &ValidationError{Message: "request body must be a JSON object"}
	}
	if rec == nil {
		rec = make(schema.Record)
	}
	return rec, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		nf *NotFoundError
		ve *ValidationError
	)
	switch {
	case errors.As(err, &nf):
		httputil.WriteNotFound(w, err.Error())
	case errors.As(err, &ve):
		httputil.WriteBadRequest(w, err.Error())
	default:
		s.log.Error("request failed", "error", err)
		httputil.WriteInternalError(w, err.Error())
	}
}
