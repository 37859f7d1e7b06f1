package feed

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Failed snapshots go out as a named event so EventSource.onmessage only
// ever sees order arrays.
const eventError = "error"

// Handler serves GET /orders/stream. Each connection gets an immediate
// snapshot and then one per interval until the client goes away or the
// stop channel closes.
type Handler struct {
	store    Store
	interval time.Duration
	limit    int32
	logger   *zap.Logger
	stop     <-chan struct{}
}

// NewHandler creates a new feed Handler.
func NewHandler(store Store, interval time.Duration, limit int32, logger *zap.Logger) *Handler {
	return &Handler{
		store:    store,
		interval: interval,
		limit:    limit,
		logger:   logger,
	}
}

// StopOn ends every open stream once done is closed. http.Server.Shutdown
// waits for active requests and never cancels them, so the server wires its
// shutdown hook here.
func (h *Handler) StopOn(done <-chan struct{}) *Handler {
	h.stop = done
	return h
}

// ServeHTTP implements http.Handler for the SSE endpoint.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, `{"error":"streaming unsupported"}`, http.StatusInternalServerError)
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"
	subscriberID := uuid.New().String()
	log := h.logger.With(zap.String("subscriber_id", subscriberID), zap.Bool("active_only", activeOnly))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	fmt.Fprint(w, ": connected\n\n")
	fmt.Fprintf(w, "retry: %d\n\n", h.interval.Milliseconds())
	flusher.Flush()

	log.Info("order feed connected")
	defer log.Info("order feed disconnected")

	// The poll runs inside the loop, so a slow query delays the next tick
	// instead of overlapping it.
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		h.push(w, r, activeOnly, log)
		flusher.Flush()

		select {
		case <-ctx.Done():
			return
		case <-h.stop:
			return
		case <-ticker.C:
		}
	}
}

func (h *Handler) push(w http.ResponseWriter, r *http.Request, activeOnly bool, log *zap.Logger) {
	views, err := Snapshot(r.Context(), h.store, h.limit, activeOnly)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		log.Error("order feed snapshot", zap.Error(err))
		writeEvent(w, eventError, map[string]string{"error": "failed to load orders"})
		return
	}
	writeEvent(w, "", views)
}

// writeEvent writes one SSE frame. An empty event name produces a plain
// message.
func writeEvent(w http.ResponseWriter, event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if event != "" {
		fmt.Fprintf(w, "event: %s\n", event)
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
}
