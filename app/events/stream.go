package events

import (
	"net/http"
	"time"

	"github.com/prakashraj/godown/pkg/sse"
)

const heartbeatInterval = 25 * time.Second

// StreamHandler serves catalog change events over Server-Sent Events,
// for clients that cannot hold a WebSocket. Each event is named by its
// kind (product.created etc.) with the JSON event as data.
func StreamHandler(p *Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stream := sse.New(w, r)
		if stream == nil {
			return
		}

		ch, cancel := p.Subscribe()
		defer cancel()

		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case e := <-ch:
				if err := stream.Send(e.Kind, e); err != nil {
					return
				}
			case <-heartbeat.C:
				stream.Comment("keepalive")
			}

			if stream.IsClosed() {
				return
			}
		}
	}
}
