// room/interfaces.go
package room

// Repository 是房间持久化契约
// 在这里定义接口以避免 room 和 persistence 之间的循环引用
type Repository interface {
	// Load 按短码读取房间，不存在时返回 ErrRoomNotFound
	Load(roomID string) (*Room, error)
	// Create 写入一个新房间，短码已占用时返回 ErrRoomExists
	Create(r *Room) error
	// Save 按版本号做 compare-and-swap 提交：
	// 存储中的版本必须等于 r.Version，成功后 r.Version 加一，
	// 版本不匹配时返回 ErrVersionConflict 且不做任何修改
	Save(r *Room) error
	// Exists 检查短码是否已被占用
	Exists(roomID string) (bool, error)
}

// Notifier 把状态变更事件扇出给房间内的所有连接
// 只在持久化成功之后调用，发送失败不回滚已提交的变更
type Notifier interface {
	NotifyRoom(roomID, event string, payload interface{})
}

// Recorder 在对局结束时落一条比赛记录，尽力而为
type Recorder interface {
	RecordMatch(result MatchResult)
}

// MatchResult 一局结束后的存档数据
type MatchResult struct {
	RoomID      string   `json:"roomId"`
	BoardType   string   `json:"boardType"`
	Winner      string   `json:"winner"`
	WinnerName  string   `json:"winnerName"`
	PlayerNames []string `json:"playerNames"`
	CalledCount int      `json:"calledCount"`
	Reason      string   `json:"reason"`
}
