package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"strings"
	"sync"

	"github.com/mallard-db/mallard/core"
	"github.com/mallard-db/mallard/db"
)

// Server exposes a Mallard engine over TCP: one statement per line, one
// JSON response per statement.
type Server struct {
	listener net.Listener
	engine   *db.Engine
	auth     *AuthConfig
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewServer creates a server over the given engine. A nil auth config
// disables the handshake.
func NewServer(engine *db.Engine, auth *AuthConfig) *Server {
	return &Server{
		engine: engine,
		auth:   auth,
		done:   make(chan struct{}),
	}
}

// Start begins listening on addr.
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	s.listener = listener

	log.Printf("SQL server listening on %s", listener.Addr())

	go s.acceptLoop()
	return nil
}

// Stop shuts the server down and waits for connections to drain.
func (s *Server) Stop() error {
	close(s.done)
	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	return nil
}

// Addr returns the listening address.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				log.Printf("Accept error: %v", err)
				continue
			}
		}

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	log.Printf("Client connected: %s", conn.RemoteAddr())

	var state connState
	reader := bufio.NewReader(conn)

	for {
		select {
		case <-s.done:
			return
		default:
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				log.Printf("Read error from %s: %v", conn.RemoteAddr(), err)
			}
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "quit", "exit":
			log.Printf("Client disconnected: %s", conn.RemoteAddr())
			return
		}

		var response Response
		switch {
		case strings.HasPrefix(strings.ToUpper(input), "AUTH "):
			response = s.handleAuth(input, &state)
		case s.auth != nil && s.auth.Enabled && !state.authenticated:
			response = Response{Success: false, Error: "authentication required: AUTH JWT <token>"}
		default:
			response = s.executeStatement(input)
		}

		data, err := EncodeResponse(response)
		if err != nil {
			log.Printf("Failed to encode response: %v", err)
			continue
		}
		if _, err := conn.Write(data); err != nil {
			log.Printf("Write error to %s: %v", conn.RemoteAddr(), err)
			return
		}
	}
}

func (s *Server) executeStatement(sqlText string) Response {
	result, err := s.engine.Run(sqlText, core.Bindings{})
	if err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	switch r := result.(type) {
	case db.QueryResult:
		data, _ := json.Marshal(QueryResponse{
			Columns: r.Columns,
			Rows:    r.Rows,
			TimeMs:  r.ElapsedSec * 1000,
		})
		return Response{Success: true, Type: "query", Result: data}

	case db.ExecResult:
		data, _ := json.Marshal(ExecResponse{
			RowsAffected: r.RowsAffected,
			TimeMs:       r.ElapsedSec * 1000,
		})
		return Response{Success: true, Type: "exec", Result: data}

	case db.SchemaResult:
		data, _ := json.Marshal(SchemaResponse{
			OK:     r.OK,
			TimeMs: r.ElapsedSec * 1000,
		})
		return Response{Success: true, Type: "schema", Result: data}

	default:
		return Response{Success: true, Type: "unknown"}
	}
}
