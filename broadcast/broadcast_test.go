package broadcast

import (
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/wfunc/bingoserver/network"
	"github.com/wfunc/bingoserver/session"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct {
	sent    [][]byte
	msgIDs  []uint16
	sendErr error
}

func (m *MockConnection) Send(msgID uint16, data []byte) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.msgIDs = append(m.msgIDs, msgID)
	m.sent = append(m.sent, data)
	return nil
}
func (m *MockConnection) Close() error                         { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration)  {}
func (m *MockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

func TestNotifyRoomFansOutToRoomSessions(t *testing.T) {
	sessions := session.NewManager()

	inRoom1 := &MockConnection{}
	inRoom2 := &MockConnection{}
	elsewhere := &MockConnection{}

	s1 := session.NewSession("s1", inRoom1)
	s1.Bind("ROOMA234", "p1")
	s2 := session.NewSession("s2", inRoom2)
	s2.Bind("ROOMA234", "p2")
	s3 := session.NewSession("s3", elsewhere)
	s3.Bind("ROOMB234", "p3")
	sessions.Add(s1)
	sessions.Add(s2)
	sessions.Add(s3)

	notifier := NewRoomNotifier(sessions)
	notifier.NotifyRoom("ROOMA234", "gameStarted", map[string]string{"turn": "p1"})

	for _, conn := range []*MockConnection{inRoom1, inRoom2} {
		if len(conn.sent) != 1 {
			t.Fatalf("Room member received %d messages, want 1", len(conn.sent))
		}
		if conn.msgIDs[0] != network.MsgTypeRoomEvent {
			t.Errorf("Message ID = %d, want MsgTypeRoomEvent", conn.msgIDs[0])
		}

		var env Envelope
		if err := json.Unmarshal(conn.sent[0], &env); err != nil {
			t.Fatalf("Envelope should be valid JSON: %v", err)
		}
		if env.Event != "gameStarted" {
			t.Errorf("Event = %q, want gameStarted", env.Event)
		}
	}

	if len(elsewhere.sent) != 0 {
		t.Error("Sessions in other rooms must not receive the event")
	}
}

func TestNotifyRoomToleratesSendFailures(t *testing.T) {
	sessions := session.NewManager()

	broken := &MockConnection{sendErr: errors.New("connection reset")}
	healthy := &MockConnection{}

	s1 := session.NewSession("s1", broken)
	s1.Bind("ROOMA234", "p1")
	s2 := session.NewSession("s2", healthy)
	s2.Bind("ROOMA234", "p2")
	sessions.Add(s1)
	sessions.Add(s2)

	notifier := NewRoomNotifier(sessions)
	notifier.NotifyRoom("ROOMA234", "playerStruck", nil)

	if len(healthy.sent) != 1 {
		t.Error("A failing connection must not block delivery to the others")
	}
}
