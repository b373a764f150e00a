// persistence/gorm_postgresql.go
package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wfunc/bingoserver/models"
	"github.com/wfunc/bingoserver/room"
)

// GormPostgreSQL 使用GORM的PostgreSQL实现
type GormPostgreSQL struct {
	db *gorm.DB
}

// NewGormPostgreSQL 创建GORM PostgreSQL数据库连接
func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	// 配置GORM日志
	dbLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold: time.Second,
			LogLevel:      gormlogger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// 自动迁移表结构
	if err := db.AutoMigrate(&models.GormRoom{}, &models.GormMatchRecord{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

// Load 按短码读取房间文档
func (p *GormPostgreSQL) Load(roomID string) (*room.Room, error) {
	var rec models.GormRoom
	if err := p.db.Where("room_id = ?", roomID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, room.ErrRoomNotFound
		}
		return nil, err
	}

	var r room.Room
	if err := json.Unmarshal([]byte(rec.Doc), &r); err != nil {
		return nil, err
	}

	// version 列是权威版本
	r.Version = rec.Version
	return &r, nil
}

// Create 写入新房间，短码已占用时返回 ErrRoomExists
func (p *GormPostgreSQL) Create(r *room.Room) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return err
	}

	var count int64
	if err := p.db.Model(&models.GormRoom{}).Where("room_id = ?", r.RoomID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return room.ErrRoomExists
	}

	rec := models.GormRoom{
		RoomID:    r.RoomID,
		BoardType: string(r.BoardType),
		Status:    string(r.GameStatus),
		Doc:       string(doc),
		Version:   r.Version,
	}
	return p.db.Create(&rec).Error
}

// Save 乐观锁提交：只有版本号匹配的行会被更新
func (p *GormPostgreSQL) Save(r *room.Room) error {
	next := r.Version + 1
	doc, err := json.Marshal(roomDocWithVersion(r, next))
	if err != nil {
		return err
	}

	result := p.db.Model(&models.GormRoom{}).
		Where("room_id = ? AND version = ?", r.RoomID, r.Version).
		Updates(map[string]interface{}{
			"doc":     string(doc),
			"status":  string(r.GameStatus),
			"version": next,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		exists, err := p.Exists(r.RoomID)
		if err != nil {
			return err
		}
		if !exists {
			return room.ErrRoomNotFound
		}
		return room.ErrVersionConflict
	}

	r.Version = next
	return nil
}

// roomDocWithVersion 序列化前把版本号对齐到即将写入的值
func roomDocWithVersion(r *room.Room, version int64) *room.Room {
	cp := r.Clone()
	cp.Version = version
	return cp
}

// Exists 检查短码是否已被占用
func (p *GormPostgreSQL) Exists(roomID string) (bool, error) {
	var count int64
	if err := p.db.Model(&models.GormRoom{}).Where("room_id = ?", roomID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveMatchRecord 落一条完赛记录
func (p *GormPostgreSQL) SaveMatchRecord(result room.MatchResult) error {
	players, err := json.Marshal(result.PlayerNames)
	if err != nil {
		return err
	}

	rec := models.GormMatchRecord{
		RoomID:      result.RoomID,
		BoardType:   result.BoardType,
		Winner:      result.Winner,
		WinnerName:  result.WinnerName,
		Players:     string(players),
		CalledCount: result.CalledCount,
		Reason:      result.Reason,
	}
	return p.db.Create(&rec).Error
}

// playerNameOperand 构造 JSONB 包含查询的右操作数
// 名字可能含引号等任意字符，必须经过JSON编码
func playerNameOperand(playerName string) (string, error) {
	operand, err := json.Marshal([]string{playerName})
	if err != nil {
		return "", err
	}
	return string(operand), nil
}

// WinnerStats 统计某玩家名下的参赛和获胜场次
func (p *GormPostgreSQL) WinnerStats(playerName string) (*models.WinnerStats, error) {
	operand, err := playerNameOperand(playerName)
	if err != nil {
		return nil, err
	}

	var stats models.WinnerStats
	err = p.db.Raw(
		`
        SELECT
            COUNT(*) as total_matches,
            SUM(CASE WHEN winner_name = ? THEN 1 ELSE 0 END) as wins
        FROM gorm_match_records
        WHERE players @> ?`,
		playerName,
		operand,
	).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Transaction 事务支持
func (p *GormPostgreSQL) Transaction(fn func(tx *gorm.DB) error) error {
	return p.db.Transaction(fn)
}

// Close 关闭数据库连接
func (p *GormPostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
