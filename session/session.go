// session/session.go
package session

import (
	"sync"
	"time"

	"github.com/wfunc/bingoserver/network"
)

// Session 一条活跃的客户端连接
// RoomID 和 PlayerID 在连接完成创建/加入/重连后绑定
type Session struct {
	ID         string
	Conn       network.Connection
	RoomID     string
	PlayerID   string
	CreatedAt  time.Time
	LastActive time.Time
	mutex      sync.RWMutex
}

func NewSession(id string, conn network.Connection) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		Conn:       conn,
		CreatedAt:  now,
		LastActive: now,
	}
}

// Bind 把连接绑定到某个房间里的某名玩家
func (s *Session) Bind(roomID, playerID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.RoomID = roomID
	s.PlayerID = playerID
}

// Binding 返回当前绑定的房间和玩家
func (s *Session) Binding() (roomID, playerID string) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.RoomID, s.PlayerID
}

func (s *Session) Send(msgID uint16, data []byte) error {
	s.mutex.Lock()
	s.LastActive = time.Now()
	s.mutex.Unlock()
	return s.Conn.Send(msgID, data)
}

func (s *Session) Touch() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.LastActive = time.Now()
}

// IdleSince 最后一次活动到现在的时长
func (s *Session) IdleSince() time.Duration {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return time.Since(s.LastActive)
}

func (s *Session) GetID() string {
	return s.ID
}

func (s *Session) Close() error {
	return s.Conn.Close()
}

// Session管理器
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

// GetByRoomID 返回绑定到某个房间的所有连接
func (m *Manager) GetByRoomID(roomID string) []*Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var result []*Session
	for _, session := range m.sessions {
		if bound, _ := session.Binding(); bound == roomID {
			result = append(result, session)
		}
	}
	return result
}

// All 返回所有连接的快照
func (m *Manager) All() []*Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	result := make([]*Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

// ActiveRooms 当前有活跃连接的房间数
func (m *Manager) ActiveRooms() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	rooms := make(map[string]bool)
	for _, session := range m.sessions {
		if roomID, _ := session.Binding(); roomID != "" {
			rooms[roomID] = true
		}
	}
	return len(rooms)
}
