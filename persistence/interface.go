// persistence/interface.go
package persistence

import (
	"github.com/wfunc/bingoserver/room"
)

// Store 持久化接口：房间仓库加完赛记录
type Store interface {
	room.Repository
	SaveMatchRecord(result room.MatchResult) error
	Close() error
}
