package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"star-rush/server/internal/persist"
	"star-rush/server/internal/protocol"
	"star-rush/server/logging"
	"star-rush/server/logging/sinks"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

func main() {
	cfg := loadConfig()

	publisher, closeLogging := buildPublisher(cfg)
	defer closeLogging()

	store := buildStore(cfg)
	recorder := persist.NewRecorder(store, publisher)
	defer recorder.Close()

	hub := newHub(cfg.World, publisher, newTelemetryCounters(), store, recorder)

	stop := make(chan struct{})
	simDone := make(chan struct{})
	go func() {
		defer close(simDone)
		hub.RunSimulation(stop)
	}()
	// Stop the tick loop and wait it out before the deferred recorder and
	// logging shutdowns run, so an in-flight tick never races them.
	defer func() {
		close(stop)
		<-simDone
	}()

	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	http.HandleFunc("/diagnostics", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(hub.DiagnosticsSnapshot()); err != nil {
			log.Printf("failed to encode diagnostics: %v", err)
		}
	})

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, w, r)
	})

	http.Handle("/", http.FileServer(http.Dir(cfg.ClientDir)))

	ctx, cancelSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancelSignals()

	srv := &http.Server{Addr: cfg.Addr}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("http shutdown incomplete: %v", err)
		}
	}()

	log.Printf("server listening on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
	log.Printf("shutting down")
}

// serveWS upgrades one connection and pumps its messages into the hub until
// the socket dies.
func serveWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	shipID, err := hub.Connect(conn)
	if err != nil {
		log.Printf("join failed: %v", err)
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			hub.Disconnect(shipID, "read failed")
			return
		}

		var msg protocol.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("malformed message from %s: %v", shipID, err)
			continue
		}

		switch msg.Type {
		case protocol.TypePlayerInput:
			if msg.Input == nil {
				log.Printf("input message from %s missing payload", shipID)
				continue
			}
			hub.QueueInput(shipID, *msg.Input)
		case protocol.TypeSetPlayerName:
			hub.QueueName(shipID, msg.Name)
		case protocol.TypeChooseClass:
			hub.QueueClass(shipID, msg.ClassKey)
		case protocol.TypePing:
			hub.notePing(shipID)
			pong := protocol.PongMessage{
				Type:       protocol.TypePong,
				SentAt:     msg.SentAt,
				ServerTime: time.Now().UnixMilli(),
			}
			if err := hub.sendTo(shipID, pong); err != nil {
				log.Printf("pong to %s failed: %v", shipID, err)
			}
		default:
			log.Printf("unknown message type %q from %s", msg.Type, shipID)
		}
	}
}

func buildPublisher(cfg serverConfig) (logging.Publisher, func()) {
	var named []logging.NamedSink
	if cfg.Logging.HasSink("console") {
		named = append(named, logging.NamedSink{
			Name: "console",
			Sink: sinks.NewConsoleSink(os.Stdout, cfg.Logging.Console),
		})
	}
	if cfg.Logging.HasSink("json") && cfg.Logging.JSON.FilePath != "" {
		file, err := os.OpenFile(cfg.Logging.JSON.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Printf("cannot open json log %s: %v", cfg.Logging.JSON.FilePath, err)
		} else {
			named = append(named, logging.NamedSink{Name: "json", Sink: sinks.NewJSON(file)})
		}
	}
	if len(named) == 0 {
		return logging.NopPublisher{}, func() {}
	}

	router := logging.NewRouter(cfg.Logging, named)
	return router, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := router.Close(ctx); err != nil {
			log.Printf("logging shutdown incomplete: %v", err)
		}
	}
}

func buildStore(cfg serverConfig) persist.Store {
	if cfg.ProfilePath == "" {
		return persist.NewMemoryStore()
	}
	store, err := persist.NewFileStore(cfg.ProfilePath)
	if err != nil {
		log.Printf("profile store at %s unavailable, using memory: %v", cfg.ProfilePath, err)
		return persist.NewMemoryStore()
	}
	return store
}
