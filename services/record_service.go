// services/record_service.go
package services

import (
	"github.com/wfunc/bingoserver/logger"
	"github.com/wfunc/bingoserver/monitor"
	"github.com/wfunc/bingoserver/persistence"
	"github.com/wfunc/bingoserver/room"
)

// RecordService 对局结束后的存档服务，实现 room.Recorder
// 落库失败只记日志，不影响已经提交的对局状态
type RecordService struct {
	store persistence.Store
}

func NewRecordService(store persistence.Store) *RecordService {
	return &RecordService{store: store}
}

// RecordMatch 尽力而为地保存一条完赛记录
func (s *RecordService) RecordMatch(result room.MatchResult) {
	if err := s.store.SaveMatchRecord(result); err != nil {
		logger.Log.Errorf("Failed to save match record for room %s: %v", result.RoomID, err)
		monitor.RecordFailures.Inc()
		return
	}
	logger.Log.Infof("Match record saved: room %s winner %s (%s)", result.RoomID, result.Winner, result.Reason)
}
