// server/server.go
package server

import (
	"net/http"
	"net/rpc"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wfunc/bingoserver/game"
	"github.com/wfunc/bingoserver/logger"
	"github.com/wfunc/bingoserver/monitor"
	"github.com/wfunc/bingoserver/network"
	"github.com/wfunc/bingoserver/room"
	bingoserver_rpc "github.com/wfunc/bingoserver/rpc"
	"github.com/wfunc/bingoserver/session"
	"github.com/wfunc/bingoserver/timer"
)

const (
	heartbeatInterval = 30 * time.Second
	sessionIdleLimit  = 2 * time.Minute
)

type GameServer struct {
	addr           string
	upgrader       websocket.Upgrader
	machine        *room.Machine
	sessionManager *session.Manager
	rpcServer      *bingoserver_rpc.Server
	monitor        *monitor.Monitor
	timers         *timer.TimerManager
	shutdownChan   chan struct{}
}

func NewGameServer(addr, rpcAddr string, machine *room.Machine, sessions *session.Manager, mon *monitor.Monitor) *GameServer {
	s := &GameServer{
		addr:           addr,
		machine:        machine,
		sessionManager: sessions,
		monitor:        mon,
		timers:         timer.NewTimerManager(),
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有跨域请求
			},
		},
	}

	// 初始化RPC服务器
	rpcServer, err := bingoserver_rpc.NewServer(rpcAddr)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer

	// 注册RPC服务
	roomService := bingoserver_rpc.NewRoomService(machine)
	rpc.Register(roomService)

	// 定时清理空闲连接
	s.timers.AddTimer(heartbeatInterval, heartbeatInterval, s.sweepIdleSessions)

	return s
}

// Handler 返回 websocket 入口，由外层路由挂载到 /ws
func (s *GameServer) Handler() http.HandlerFunc {
	return s.handleWebSocket
}

// Start 启动RPC监听，websocket 入口由外层HTTP路由托管
func (s *GameServer) Start() {
	go s.rpcServer.Start()
	logger.Log.Infof("Game server ready, websocket endpoint bound at %s/ws", s.addr)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.timers.Stop()
	s.rpcServer.Stop()
}

// sweepIdleSessions 关闭超过空闲上限的连接
func (s *GameServer) sweepIdleSessions() {
	for _, sess := range s.sessionManager.All() {
		if sess.IdleSince() > sessionIdleLimit {
			logger.Log.Infof("Closing idle session %s", sess.GetID())
			sess.Close()
		}
	}
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	s.serveConn(network.NewWSConnection(conn))
}

func (s *GameServer) serveConn(conn network.Connection) {
	conn.SetHeartbeat(heartbeatInterval)

	sess := session.NewSession(uuid.New().String(), conn)
	s.sessionManager.Add(sess)
	s.monitor.IncConnectedClients()
	s.monitor.SetActiveRooms(s.sessionManager.ActiveRooms())

	logger.Log.Infof("New connection from %s, session ID: %s", conn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", conn.RemoteAddr(), sess.GetID())
		if roomID, playerID := sess.Binding(); roomID != "" {
			s.machine.PlayerLeft(roomID, playerID)
		}
		s.sessionManager.Remove(sess.GetID())
		s.monitor.DecConnectedClients()
		s.monitor.SetActiveRooms(s.sessionManager.ActiveRooms())
		conn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := conn.ReadPacket()
			if err != nil {
				return
			}
			s.handlePacket(sess, packet)
		}
	}
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	if packet.MsgID == network.MsgTypeHeartbeat {
		sess.Touch()
		return
	}

	start := time.Now()
	s.monitor.IncActionsProcessed()

	switch packet.MsgID {
	case network.MsgTypeCreateRoom:
		s.handleCreateRoom(sess, packet)
	case network.MsgTypeJoinRoom:
		s.handleJoinRoom(sess, packet)
	case network.MsgTypeStartGame:
		s.handleStartGame(sess, packet)
	case network.MsgTypeLeaveRoom:
		s.handleLeaveRoom(sess, packet)
	case network.MsgTypeRejoinRoom:
		s.handleRejoinRoom(sess, packet)
	case network.MsgTypeProposeNumber:
		s.handleProposeNumber(sess, packet)
	case network.MsgTypeConfirmProposal:
		s.handleConfirmProposal(sess, packet)
	case network.MsgTypeStrike:
		s.handleStrike(sess, packet)
	case network.MsgTypeCallBingo:
		s.handleCallBingo(sess, packet)
	case network.MsgTypeRoomState:
		s.handleRoomState(sess, packet)
	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
	}

	s.monitor.ObserveActionLatency(time.Since(start))
}

func (s *GameServer) handleCreateRoom(sess *session.Session, packet *network.Packet) {
	var req createRoomRequest
	if !decode(sess, network.MsgTypeCreateRoom, packet.Data, &req) {
		return
	}

	r, player, err := s.machine.CreateRoom(req.Name, game.BoardType(req.BoardType))
	if err != nil {
		sendError(sess, network.MsgTypeCreateRoom, err)
		return
	}

	sess.Bind(r.RoomID, player.ID)
	s.monitor.SetActiveRooms(s.sessionManager.ActiveRooms())
	sendOK(sess, network.MsgTypeCreateRoom, createRoomResponse{
		RoomID:    r.RoomID,
		BoardType: string(r.BoardType),
		Player:    player,
	})
}

func (s *GameServer) handleJoinRoom(sess *session.Session, packet *network.Packet) {
	var req joinRoomRequest
	if !decode(sess, network.MsgTypeJoinRoom, packet.Data, &req) {
		return
	}

	player, err := s.machine.JoinRoom(req.RoomID, req.Name)
	if err != nil {
		sendError(sess, network.MsgTypeJoinRoom, err)
		return
	}

	sess.Bind(req.RoomID, player.ID)
	s.monitor.SetActiveRooms(s.sessionManager.ActiveRooms())
	sendOK(sess, network.MsgTypeJoinRoom, joinRoomResponse{RoomID: req.RoomID, Player: player})
}

func (s *GameServer) handleStartGame(sess *session.Session, packet *network.Packet) {
	var req roomRequest
	if !decode(sess, network.MsgTypeStartGame, packet.Data, &req) {
		return
	}

	if err := s.machine.StartGame(req.RoomID); err != nil {
		sendError(sess, network.MsgTypeStartGame, err)
		return
	}
	sendOK(sess, network.MsgTypeStartGame, nil)
}

func (s *GameServer) handleLeaveRoom(sess *session.Session, packet *network.Packet) {
	roomID, playerID := sess.Binding()
	if roomID == "" {
		sendError(sess, network.MsgTypeLeaveRoom, room.ErrRoomNotFound)
		return
	}

	s.machine.PlayerLeft(roomID, playerID)
	sess.Bind("", "")
	s.monitor.SetActiveRooms(s.sessionManager.ActiveRooms())
	sendOK(sess, network.MsgTypeLeaveRoom, nil)
}

func (s *GameServer) handleRejoinRoom(sess *session.Session, packet *network.Packet) {
	var req playerRequest
	if !decode(sess, network.MsgTypeRejoinRoom, packet.Data, &req) {
		return
	}

	player, err := s.machine.RejoinRoom(req.RoomID, req.PlayerID)
	if err != nil {
		sendError(sess, network.MsgTypeRejoinRoom, err)
		return
	}

	sess.Bind(req.RoomID, player.ID)
	s.monitor.SetActiveRooms(s.sessionManager.ActiveRooms())
	sendOK(sess, network.MsgTypeRejoinRoom, joinRoomResponse{RoomID: req.RoomID, Player: player})
}

func (s *GameServer) handleProposeNumber(sess *session.Session, packet *network.Packet) {
	var req proposeRequest
	if !decode(sess, network.MsgTypeProposeNumber, packet.Data, &req) {
		return
	}

	if err := s.machine.ProposeNumber(req.RoomID, req.PlayerID, req.Number); err != nil {
		sendError(sess, network.MsgTypeProposeNumber, err)
		return
	}
	sendOK(sess, network.MsgTypeProposeNumber, nil)
}

func (s *GameServer) handleConfirmProposal(sess *session.Session, packet *network.Packet) {
	var req playerRequest
	if !decode(sess, network.MsgTypeConfirmProposal, packet.Data, &req) {
		return
	}

	if err := s.machine.ConfirmProposal(req.RoomID, req.PlayerID); err != nil {
		sendError(sess, network.MsgTypeConfirmProposal, err)
		return
	}
	sendOK(sess, network.MsgTypeConfirmProposal, nil)
}

func (s *GameServer) handleStrike(sess *session.Session, packet *network.Packet) {
	var req strikeRequest
	if !decode(sess, network.MsgTypeStrike, packet.Data, &req) {
		return
	}

	result, err := s.machine.Strike(req.RoomID, req.PlayerID, room.StrikeType(req.StrikeType), req.Index)
	if err != nil {
		sendError(sess, network.MsgTypeStrike, err)
		return
	}

	sendOK(sess, network.MsgTypeStrike, strikeResponse{
		StruckLetter: result.StruckLetter,
		HasBingo:     result.HasBingo,
	})
}

func (s *GameServer) handleCallBingo(sess *session.Session, packet *network.Packet) {
	var req playerRequest
	if !decode(sess, network.MsgTypeCallBingo, packet.Data, &req) {
		return
	}

	if err := s.machine.CallBingo(req.RoomID, req.PlayerID); err != nil {
		sendError(sess, network.MsgTypeCallBingo, err)
		return
	}
	sendOK(sess, network.MsgTypeCallBingo, nil)
}

func (s *GameServer) handleRoomState(sess *session.Session, packet *network.Packet) {
	var req playerRequest
	if !decode(sess, network.MsgTypeRoomState, packet.Data, &req) {
		return
	}

	state, err := s.machine.GetRoomState(req.RoomID, req.PlayerID)
	if err != nil {
		sendError(sess, network.MsgTypeRoomState, err)
		return
	}
	sendOK(sess, network.MsgTypeRoomState, state)
}
