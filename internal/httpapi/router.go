package httpapi

import (
	"net/http"
	"time"
)

func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"ok":   true,
				"time": time.Now().UTC().Format(time.RFC3339),
			})
		},
	}))

	sh := SignalsHandler{Run: d.Run, Resolve: d.Resolve, Hub: d.Hub}
	mux.HandleFunc("/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.RunBatch,
	}))
	mux.HandleFunc("/resolve", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.ResolveOne,
	}))

	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
