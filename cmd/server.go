package cmd

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// APIServer serves the routes on the given port. It blocks until the
// listener fails.
func APIServer(route *chi.Mux, port string, log *zap.Logger) {
	addr := fmt.Sprintf(":%s", port)
	log.Info("Server listening", zap.String("addr", addr))

	if err := http.ListenAndServe(addr, route); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
