package expense

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MrJamesThe3rd/smartexpense/internal/expense"
)

// stream sends the current snapshot as a server-sent event, then one more
// after every applied mutation. Slow clients only get the latest snapshot.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)

	// The server write timeout would otherwise end the stream.
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Debug("cannot clear write deadline", "error", err)
	}

	updates := make(chan expense.Snapshot, 1)

	cancel := h.store.Subscribe(func(snap expense.Snapshot) {
		select {
		case <-updates:
		default:
		}

		updates <- snap
	})
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	send := func(snap expense.Snapshot) error {
		data, err := json.Marshal(snap)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "id: %d\nevent: snapshot\ndata: %s\n\n", snap.Version, data); err != nil {
			return err
		}

		return rc.Flush()
	}

	if err := send(h.store.List()); err != nil {
		h.logger.Warn("stream write failed", "error", err)
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case snap := <-updates:
			if err := send(snap); err != nil {
				h.logger.Debug("stream closed", "error", err)
				return
			}
		}
	}
}
