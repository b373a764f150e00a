// persistence/memory.go
package persistence

import (
	"sync"

	"github.com/wfunc/bingoserver/room"
)

// MemoryStore 内存实现，用于开发和单机部署
// 所有读写都经过深拷贝，和数据库实现保持一致的隔离语义
type MemoryStore struct {
	mu      sync.RWMutex
	rooms   map[string]*room.Room
	records []room.MatchResult
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: make(map[string]*room.Room),
	}
}

// Load 按房间短码加载快照
func (m *MemoryStore) Load(roomID string) (*room.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rooms[roomID]
	if !ok {
		return nil, room.ErrRoomNotFound
	}
	return r.Clone(), nil
}

// Create 创建新房间，短码已存在时失败
func (m *MemoryStore) Create(r *room.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rooms[r.RoomID]; ok {
		return room.ErrRoomExists
	}
	m.rooms[r.RoomID] = r.Clone()
	return nil
}

// Save 按版本号CAS提交，成功后版本号加一
func (m *MemoryStore) Save(r *room.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.rooms[r.RoomID]
	if !ok {
		return room.ErrRoomNotFound
	}
	if cur.Version != r.Version {
		return room.ErrVersionConflict
	}

	r.Version++
	m.rooms[r.RoomID] = r.Clone()
	return nil
}

// Exists 检查房间短码是否被占用
func (m *MemoryStore) Exists(roomID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.rooms[roomID]
	return ok, nil
}

// SaveMatchRecord 追加一条完赛记录
func (m *MemoryStore) SaveMatchRecord(result room.MatchResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, result)
	return nil
}

// MatchRecords 返回全部完赛记录的副本
func (m *MemoryStore) MatchRecords() []room.MatchResult {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]room.MatchResult(nil), m.records...)
}

// Close 实现 Store 接口，内存实现无需清理
func (m *MemoryStore) Close() error {
	return nil
}
