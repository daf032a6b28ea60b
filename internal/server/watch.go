package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"sparse-life/internal/core"
	pcore "sparse-life/pkg/core"
	"sparse-life/pkg/sims/life"
)

const (
	writeWait       = 10 * time.Second
	defaultWatchTPS = 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// frame is one generation pushed to a watcher.
type frame struct {
	Generation  int           `json:"generation"`
	Coordinates []pcore.Coord `json:"coordinates"`
	IsFinished  bool          `json:"is_finished"`
}

func newFrame(gen int, s life.State) frame {
	return frame{Generation: gen, Coordinates: s.Coordinates, IsFinished: s.IsFinished}
}

// handleWatch streams the board one generation per frame until it finishes
// or the requested number of steps has been sent.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	steps, ok := s.queryInt(w, r, "steps", s.svc.MaxIterations())
	if !ok {
		return
	}
	if steps < 0 || steps > s.svc.MaxIterations() {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("steps must be between 0 and %d", s.svc.MaxIterations()))
		return
	}
	tps, ok := s.queryInt(w, r, "tps", defaultWatchTPS)
	if !ok {
		return
	}

	state, err := s.svc.Get(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("watch %s: upgrade: %v", id, err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	if err := s.stream(ctx, conn, id, state, steps, tps); err != nil {
		s.logger.Printf("watch %s: %v", id, err)
		return
	}
	deadline := time.Now().Add(writeWait)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done")
	if err := conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
		s.logger.Printf("watch %s: close: %v", id, err)
	}
}

func (s *Server) stream(ctx context.Context, conn *websocket.Conn, id string, state life.State, steps, tps int) error {
	pacer := core.NewFixedStep(tps)
	if err := writeFrame(conn, newFrame(0, state)); err != nil {
		return err
	}
	for gen := 1; gen <= steps && !state.IsFinished; gen++ {
		if err := pacer.Wait(ctx); err != nil {
			return err
		}
		next, err := s.svc.Advance(ctx, id, 1)
		if err != nil {
			return err
		}
		state = next
		if err := writeFrame(conn, newFrame(gen, state)); err != nil {
			return err
		}
	}
	return nil
}

func writeFrame(conn *websocket.Conn, f frame) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(f)
}
