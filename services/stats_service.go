// services/stats_service.go
package services

import (
	"gorm.io/gorm"

	"github.com/wfunc/bingoserver/models"
	"github.com/wfunc/bingoserver/persistence"
)

// StatsService 战绩查询服务，只在 gorm 存储下可用
type StatsService struct {
	db *persistence.GormPostgreSQL
}

func NewStatsService(db *persistence.GormPostgreSQL) *StatsService {
	return &StatsService{db: db}
}

// PlayerStats 获取某玩家名下的参赛和获胜场次，以及最近一局
func (s *StatsService) PlayerStats(playerName string) (map[string]interface{}, error) {
	var result map[string]interface{}

	// 使用事务确保两个查询看到一致的数据
	err := s.db.Transaction(func(tx *gorm.DB) error {
		stats, err := s.db.WinnerStats(playerName)
		if err != nil {
			return err
		}

		var latest models.GormMatchRecord
		err = tx.Where("winner_name = ?", playerName).
			Order("created_at DESC").
			First(&latest).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}

		result = map[string]interface{}{
			"player": playerName,
			"stats":  stats,
		}
		if err == nil {
			result["lastWin"] = latest
		}
		return nil
	})

	return result, err
}
