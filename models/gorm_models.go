// models/gorm_models.go
package models

import (
	"gorm.io/gorm"
)

// GormRoom 房间文档模型
// 整个房间状态作为JSON文档存储在doc列，version列做乐观锁
type GormRoom struct {
	gorm.Model
	RoomID    string `gorm:"uniqueIndex;not null"`
	BoardType string `gorm:"not null"`
	Status    string `gorm:"not null"`
	Doc       string `gorm:"type:jsonb;not null"`
	Version   int64  `gorm:"not null;default:0"`
}

// GormMatchRecord 完赛记录模型
type GormMatchRecord struct {
	gorm.Model
	RoomID      string `gorm:"index;not null"`
	BoardType   string `gorm:"not null"`
	Winner      string `gorm:"not null"`
	WinnerName  string
	Players     string `gorm:"type:jsonb"`
	CalledCount int    `gorm:"default:0"`
	Reason      string
}

// WinnerStats 玩家战绩统计
type WinnerStats struct {
	TotalMatches int `json:"total_matches"`
	Wins         int `json:"wins"`
}
