package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"mocktable/pkg/dberrors"
	"mocktable/pkg/ikey"
	"mocktable/pkg/table"
	"mocktable/pkg/table/mock"
	"mocktable/pkg/types"

	"github.com/go-chi/chi/v5"
)

const (
	contentTypeJSON        = "application/json"
	defaultHTTPPort        = "8080"
	defaultShutdownTimeout = time.Second * 5
)

// iTableFactory is the part of the mock factory the server inspects.
type iTableFactory interface {
	table.Factory

	Snapshot() []mock.Table
	Lookup(id types.TableID) (*mock.Contents, bool)
}

// Server exposes the sealed tables of a factory for inspection.
type Server struct {
	factory    iTableFactory
	dataDir    string
	httpServer *http.Server
	URL        string
	addr       string
}

// NewServer creates a server over factory. Table files are opened from dataDir.
func NewServer(factory iTableFactory, dataDir string, port string) *Server {
	if port == "" {
		port = defaultHTTPPort
	}
	return &Server{
		factory: factory,
		dataDir: dataDir,
		URL:     "http://localhost:" + port,
		addr:    ":" + port,
	}
}

// Start starts the server
func (s *Server) Start() error {
	if err := s.startHTTPServer(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop stops the server
func (s *Server) Stop() error {
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}
	return nil
}

// createRouter builds chi router
func (s *Server) createRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.handleHealth)
	r.Get("/tables", s.handleTables)
	r.Get("/tables/{id}", s.handleTable)
	r.Get("/files/{name}/get", s.handleFileGet)

	return r
}

func (s *Server) startHTTPServer() error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.createRouter(),
		ReadHeaderTimeout: time.Second,
	}

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("HTTP server started", "addr", s.URL)
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("Error encoding response", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, NewOKResponse())
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	tables := s.factory.Snapshot()

	resp := TablesResponse{
		Status: StatusSuccess,
		Tables: make([]TableSummary, 0, len(tables)),
	}
	for _, t := range tables {
		resp.Tables = append(resp.Tables, TableSummary{ID: uint32(t.ID), Entries: t.Contents.Len()})
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, NewErrorResponse("Invalid table id"))
		return
	}

	contents, ok := s.factory.Lookup(types.TableID(id))
	if !ok {
		s.writeJSON(w, http.StatusNotFound, NewErrorResponse("Table not found"))
		return
	}

	resp := TableResponse{
		Status:  StatusSuccess,
		ID:      uint32(id),
		Entries: make([]EntryView, 0, contents.Len()),
	}
	for i := 0; i < contents.Len(); i++ {
		view := EntryView{Key: fmt.Sprintf("%q", contents.Key(i)), Value: string(contents.Value(i))}
		if parsed, err := ikey.Parse(contents.Key(i)); err == nil {
			view.Key = parsed.String()
			view.Valid = true
		}
		resp.Entries = append(resp.Entries, view)
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handleFileGet opens a table file from the data dir and looks up a user key in it.
func (s *Server) handleFileGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" || filepath.Base(name) != name {
		s.writeJSON(w, http.StatusBadRequest, NewErrorResponse("Invalid file name"))
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		s.writeJSON(w, http.StatusBadRequest, NewErrorResponse("Missing key"))
		return
	}

	seq := ikey.MaxSequenceNumber
	if raw := r.URL.Query().Get("seq"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || types.SequenceNumber(n) > ikey.MaxSequenceNumber {
			s.writeJSON(w, http.StatusBadRequest, NewErrorResponse("Invalid seq"))
			return
		}
		seq = types.SequenceNumber(n)
	}

	file, err := os.Open(filepath.Join(s.dataDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			s.writeJSON(w, http.StatusNotFound, NewErrorResponse("File not found"))
			return
		}
		s.writeJSON(w, http.StatusInternalServerError, NewErrorResponse(err.Error()))
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			slog.Warn("failed to close table file", "name", name, "error", cerr)
		}
	}()

	reader, err := s.factory.NewTableReader(file)
	if err != nil {
		if errors.Is(err, dberrors.ErrNotFound) {
			s.writeJSON(w, http.StatusNotFound, NewErrorResponse(err.Error()))
			return
		}
		s.writeJSON(w, http.StatusInternalServerError, NewErrorResponse(err.Error()))
		return
	}
	defer reader.Close()

	gc := table.NewGetContext(nil, []byte(key))
	if err := reader.Get(ikey.LookupKey([]byte(key), seq), gc.SaveValue); err != nil {
		s.writeJSON(w, http.StatusInternalServerError, NewErrorResponse(err.Error()))
		return
	}

	switch gc.State() {
	case table.GetFound:
		s.writeJSON(w, http.StatusOK, NewValueResponse(string(gc.Value())))
	case table.GetMerge:
		s.writeJSON(w, http.StatusOK, Response{Status: StatusSuccess, Value: string(gc.Value()), State: gc.State().String()})
	default:
		resp := NewErrorResponse("Key not found")
		resp.State = gc.State().String()
		s.writeJSON(w, http.StatusNotFound, resp)
	}
}
