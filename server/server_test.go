package server

import (
	"encoding/json"
	"io"
	"net"
	"testing"
	"time"

	"github.com/wfunc/bingoserver/monitor"
	"github.com/wfunc/bingoserver/network"
	"github.com/wfunc/bingoserver/persistence"
	"github.com/wfunc/bingoserver/room"
	"github.com/wfunc/bingoserver/session"
)

// MockConnection is a test double for the network.Connection interface.
// ReadPacket feeds the queued packets, then fails like a dropped connection.
type MockConnection struct {
	packets   []*network.Packet
	sent      []sentMessage
	heartbeat time.Duration
	closed    bool
}

type sentMessage struct {
	msgID uint16
	data  []byte
}

func (m *MockConnection) ReadPacket() (*network.Packet, error) {
	if len(m.packets) == 0 {
		return nil, io.EOF
	}
	p := m.packets[0]
	m.packets = m.packets[1:]
	return p, nil
}

func (m *MockConnection) Send(msgID uint16, data []byte) error {
	m.sent = append(m.sent, sentMessage{msgID: msgID, data: data})
	return nil
}

func (m *MockConnection) Close() error {
	m.closed = true
	return nil
}

func (m *MockConnection) RemoteAddr() net.Addr                { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration) { m.heartbeat = interval }

func packetFor(t *testing.T, msgID uint16, payload interface{}) *network.Packet {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	return &network.Packet{MsgID: msgID, Data: data, Length: uint16(len(data))}
}

// 单个测试函数：NewGameServer 会向全局的 net/rpc 和 prometheus 注册，只能构造一次
func TestServeConn(t *testing.T) {
	machine := room.NewMachine(persistence.NewMemoryStore(), nil, nil)
	sessions := session.NewManager()
	srv := NewGameServer(":0", "127.0.0.1:0", machine, sessions, monitor.NewMonitor("bingoserver_test"))
	defer srv.Shutdown()

	conn := &MockConnection{
		packets: []*network.Packet{
			packetFor(t, network.MsgTypeCreateRoom, map[string]string{
				"name": "alice", "boardType": "5x5",
			}),
		},
	}

	srv.serveConn(conn)

	if conn.heartbeat != heartbeatInterval {
		t.Errorf("Heartbeat deadline = %v, want %v", conn.heartbeat, heartbeatInterval)
	}
	if !conn.closed {
		t.Error("Connection should be closed when the read loop exits")
	}
	if len(sessions.All()) != 0 {
		t.Error("Session should be removed after disconnect")
	}

	if len(conn.sent) != 1 {
		t.Fatalf("Got %d replies, want 1", len(conn.sent))
	}
	reply := conn.sent[0]
	if reply.msgID != network.MsgTypeCreateRoom {
		t.Errorf("Reply msgID = %d, want MsgTypeCreateRoom", reply.msgID)
	}

	var parsed struct {
		OK   bool `json:"ok"`
		Data struct {
			RoomID string `json:"roomId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(reply.data, &parsed); err != nil {
		t.Fatalf("Reply is not JSON: %s", reply.data)
	}
	if !parsed.OK || parsed.Data.RoomID == "" {
		t.Errorf("Reply = %s", reply.data)
	}

	// 房间在连接断开后仍然存在
	if _, err := machine.GetRoomInfo(parsed.Data.RoomID); err != nil {
		t.Errorf("Room should survive the disconnect: %v", err)
	}
}
