// broadcast/broadcast.go
package broadcast

import (
	"encoding/json"

	"github.com/wfunc/bingoserver/logger"
	"github.com/wfunc/bingoserver/monitor"
	"github.com/wfunc/bingoserver/network"
	"github.com/wfunc/bingoserver/session"
)

// Envelope 房间事件的线上格式
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// RoomNotifier 把房间事件扇出到该房间的所有连接，实现 room.Notifier
// 发送是尽力而为的：单个连接失败只计数，不影响其余连接也不回传错误
type RoomNotifier struct {
	sessions *session.Manager
}

func NewRoomNotifier(sessions *session.Manager) *RoomNotifier {
	return &RoomNotifier{sessions: sessions}
}

func (b *RoomNotifier) NotifyRoom(roomID, event string, payload interface{}) {
	data, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		logger.Log.Errorf("Failed to marshal %s event for room %s: %v", event, roomID, err)
		monitor.BroadcastFailures.Inc()
		return
	}

	for _, s := range b.sessions.GetByRoomID(roomID) {
		if err := s.Send(network.MsgTypeRoomEvent, data); err != nil {
			logger.Log.Warnf("Failed to deliver %s to session %s: %v", event, s.GetID(), err)
			monitor.BroadcastFailures.Inc()
			continue
		}
	}
}
