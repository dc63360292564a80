// Package stream serves simulation snapshots to browsers over a websocket.
package stream

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/akmonengine/sweep/scene"
	"github.com/akmonengine/sweep/sim"
	"github.com/gorilla/websocket"
)

// Source is the simulation side of the server
type Source interface {
	Snapshots() *sim.Latest[sim.Snapshot]
	Pause()
	Resume()
	Reset()
}

type Server struct {
	addr     string
	interval time.Duration
	source   Source
	meshes   MeshesMessage
	upgrader websocket.Upgrader

	clients      map[*websocket.Conn]*sync.Mutex
	clientsMutex sync.RWMutex

	// Logger receives connection errors, nil discards them
	Logger *log.Logger
}

// NewServer creates a server broadcasting rate snapshots per second.
// def describes the meshes sent to every client on connection.
func NewServer(addr string, rate float64, def scene.Definition, source Source) *Server {
	return &Server{
		addr:     addr,
		interval: time.Duration(float64(time.Second) / rate),
		source:   source,
		meshes:   createMeshesMessage(def),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Run listens on the server address and broadcasts until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{Addr: s.addr, Handler: s.Handler()}

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.ListenAndServe()
	}()
	go s.broadcastLoop(ctx)

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.closeClients()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}

	// the mesh message goes out before the connection is visible to broadcasts
	if err := conn.WriteJSON(s.meshes); err != nil {
		s.logf("websocket write error: %v", err)
		return
	}

	s.clientsMutex.Lock()
	s.clients[conn] = connMutex
	s.clientsMutex.Unlock()
	defer func() {
		s.clientsMutex.Lock()
		delete(s.clients, conn)
		s.clientsMutex.Unlock()
	}()

	for {
		var msg ControlMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logf("websocket read error: %v", err)
			}
			return
		}

		if msg.Pause != nil {
			if *msg.Pause {
				s.source.Pause()
			} else {
				s.source.Resume()
			}
		}
		if msg.Reset {
			s.source.Reset()
		}
	}
}

func (s *Server) broadcastLoop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snapshot, fresh, ok := s.source.Snapshots().Load()
			if !ok || !fresh {
				continue
			}
			s.broadcast(createSnapshotMessage(snapshot))
		}
	}
}

func (s *Server) broadcast(msg SnapshotMessage) {
	s.clientsMutex.RLock()
	clientsToRemove := []*websocket.Conn{}
	for client, mutex := range s.clients {
		mutex.Lock()
		err := client.WriteJSON(msg)
		mutex.Unlock()
		if err != nil {
			s.logf("websocket write error: %v", err)
			clientsToRemove = append(clientsToRemove, client)
		}
	}
	s.clientsMutex.RUnlock()

	if len(clientsToRemove) == 0 {
		return
	}

	s.clientsMutex.Lock()
	for _, client := range clientsToRemove {
		delete(s.clients, client)
		client.Close()
	}
	s.clientsMutex.Unlock()
}

func (s *Server) closeClients() {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()

	for client := range s.clients {
		client.Close()
	}
}

// ClientCount returns the number of connected clients
func (s *Server) ClientCount() int {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	return len(s.clients)
}
