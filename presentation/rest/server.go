package rest

import (
	"net/http"

	"taskpilot/application/command"
	"taskpilot/domain/interfaces"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// Server exposes the command entry point and the task CRUD operations over
// HTTP. It is a transport adapter only: interpretation and execution live
// in the command layer, storage rules in the store.
type Server struct {
	processor *command.Processor
	store     interfaces.TaskStore
	logger    *logrus.Logger
}

func NewServer(processor *command.Processor, store interfaces.TaskStore, logger *logrus.Logger) *Server {
	return &Server{processor: processor, store: store, logger: logger}
}

// Handler builds the full middleware/route stack.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /tasks/process", s.handleProcess)
	mux.HandleFunc("GET /tasks", s.handleList)
	mux.HandleFunc("POST /tasks", s.handleCreate)
	mux.HandleFunc("GET /tasks/{id}", s.handleGet)
	mux.HandleFunc("PUT /tasks/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /tasks/{id}", s.handleDelete)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	return s.withRequestLogging(c.Handler(mux))
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.WithField("addr", addr).Info("API server is running")
	return http.ListenAndServe(addr, s.Handler())
}
