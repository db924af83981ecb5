// Package server composes the session engine with its transports: a
// websocket endpoint for browser clients, a KCP endpoint for native ones,
// one hub fanning events out to both, and the two periodic loops.
package server

import (
	l4g "github.com/alecthomas/log4go"

	"lockstep-arena/config"
	"lockstep-arena/pkg/kcp_server"
	"lockstep-arena/pkg/network"
	"lockstep-arena/pkg/packet/json_packet"
	"lockstep-arena/room"
)

// Server is the composition root of the lockstep arena.
type Server struct {
	cfg config.Config

	hub         *Hub
	registry    *room.Registry
	rooms       room.Table
	matchMaker  *room.MatchMaker
	monitor     *room.Monitor
	broadcaster *room.Broadcaster
	router      *Router

	kcpServer *network.Server
}

// New builds the engine from the configuration. Nothing runs until Start.
func New(cfg config.Config) *Server {
	hub := NewHub()
	rooms := room.NewTable(cfg.RoomNumber, cfg.RoomSize, cfg.Arena())
	registry := room.NewRegistry(cfg.MaxClients(), hub)
	matchMaker := room.NewMatchMaker(rooms, hub)

	s := &Server{
		cfg:         cfg,
		hub:         hub,
		registry:    registry,
		rooms:       rooms,
		matchMaker:  matchMaker,
		monitor:     room.NewMonitor(rooms, hub, cfg.MonitorInterval()),
		broadcaster: room.NewBroadcaster(rooms, hub, cfg.FPS),
	}
	s.router = NewRouter(hub, registry, rooms, matchMaker)

	return s
}

// Start opens the KCP listener and runs the lifecycle and tick loops. The
// websocket endpoint is served separately through WebSocketHandler.
func (s *Server) Start() error {
	kcpServer, err := kcp_server.ListenAndServe(s.cfg.KCPAddress, &kcpGate{
		hub:    s.hub,
		router: s.router,
	}, &json_packet.EventProtocol{})
	if err != nil {
		return err
	}
	s.kcpServer = kcpServer
	l4g.Info("[server] kcp listen addr=[%s]", s.cfg.KCPAddress)

	s.monitor.Start()
	s.broadcaster.Start()

	l4g.Info("[server] %d rooms of %d, %d fps", s.cfg.RoomNumber, s.cfg.RoomSize, s.cfg.FPS)
	return nil
}

// Stop halts the loops and listeners.
func (s *Server) Stop() {
	s.broadcaster.Stop()
	s.monitor.Stop()
	if s.kcpServer != nil {
		s.kcpServer.Stop()
	}
	l4g.Info("[server] stopped")
}

// Rooms exposes the room table for the status api.
func (s *Server) Rooms() room.Table {
	return s.rooms
}

// Registry exposes the connection registry for the status api.
func (s *Server) Registry() *room.Registry {
	return s.registry
}
