// rpc/rpc.go
package rpc

import (
	"net"
	"net/rpc"

	"github.com/wfunc/bingoserver/logger"
	"github.com/wfunc/bingoserver/room"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// RoomService exposes read-only room queries over net/rpc,
// for admin tooling and sibling services.
type RoomService struct {
	machine *room.Machine
}

func NewRoomService(m *room.Machine) *RoomService {
	return &RoomService{machine: m}
}

type RoomInfoArgs struct {
	RoomID string
}

type RoomInfoReply struct {
	Info *room.RoomInfoView
}

func (rs *RoomService) GetRoomInfo(args *RoomInfoArgs, reply *RoomInfoReply) error {
	info, err := rs.machine.GetRoomInfo(args.RoomID)
	if err != nil {
		return err
	}
	reply.Info = info
	return nil
}

type RoomStateArgs struct {
	RoomID   string
	PlayerID string
}

type RoomStateReply struct {
	State *room.RoomStateView
}

func (rs *RoomService) GetRoomState(args *RoomStateArgs, reply *RoomStateReply) error {
	state, err := rs.machine.GetRoomState(args.RoomID, args.PlayerID)
	if err != nil {
		return err
	}
	reply.State = state
	return nil
}
