// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/wfunc/bingoserver/room"
)

// PostgreSQL 基于 database/sql 的原生实现，不经过ORM
type PostgreSQL struct {
	db *sql.DB
}

// NewPostgreSQL 创建 PostgreSQL 数据库连接
func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	// 设置连接池参数
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 初始化表结构
	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

// initTables 初始化数据库表结构
func initTables(db *sql.DB) error {
	// 房间表：整个房间状态存成JSONB文档
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS rooms (
            id SERIAL PRIMARY KEY,
            room_id VARCHAR(16) UNIQUE NOT NULL,
            board_type VARCHAR(16) NOT NULL,
            status VARCHAR(16) NOT NULL,
            doc JSONB NOT NULL,
            version BIGINT NOT NULL DEFAULT 0,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	// 完赛记录表
	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS match_records (
            id SERIAL PRIMARY KEY,
            room_id VARCHAR(16) NOT NULL,
            board_type VARCHAR(16) NOT NULL,
            winner VARCHAR(64) NOT NULL,
            winner_name VARCHAR(255),
            players JSONB NOT NULL,
            called_count INT NOT NULL DEFAULT 0,
            reason VARCHAR(255),
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	return err
}

// Load 按短码读取房间文档
func (p *PostgreSQL) Load(roomID string) (*room.Room, error) {
	var doc []byte
	var version int64

	err := p.db.QueryRow(
		`SELECT doc, version FROM rooms WHERE room_id = $1`,
		roomID,
	).Scan(&doc, &version)
	if err == sql.ErrNoRows {
		return nil, room.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}

	var r room.Room
	if err := json.Unmarshal(doc, &r); err != nil {
		return nil, err
	}
	r.Version = version
	return &r, nil
}

// Create 写入新房间，唯一索引冲突时返回 ErrRoomExists
func (p *PostgreSQL) Create(r *room.Room) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return err
	}

	_, err = p.db.Exec(
		`INSERT INTO rooms (room_id, board_type, status, doc, version)
         VALUES ($1, $2, $3, $4, $5)`,
		r.RoomID, string(r.BoardType), string(r.GameStatus), doc, r.Version,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return room.ErrRoomExists
	}
	return err
}

// Save 乐观锁提交：UPDATE 带版本号条件，没命中任何行说明版本过期
func (p *PostgreSQL) Save(r *room.Room) error {
	next := r.Version + 1
	doc, err := json.Marshal(roomDocWithVersion(r, next))
	if err != nil {
		return err
	}

	result, err := p.db.Exec(
		`UPDATE rooms
         SET doc = $1, status = $2, version = $3, updated_at = CURRENT_TIMESTAMP
         WHERE room_id = $4 AND version = $5`,
		doc, string(r.GameStatus), next, r.RoomID, r.Version,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
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

// Exists 检查短码是否已被占用
func (p *PostgreSQL) Exists(roomID string) (bool, error) {
	var exists bool
	err := p.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM rooms WHERE room_id = $1)`,
		roomID,
	).Scan(&exists)
	return exists, err
}

// SaveMatchRecord 落一条完赛记录
func (p *PostgreSQL) SaveMatchRecord(result room.MatchResult) error {
	players, err := json.Marshal(result.PlayerNames)
	if err != nil {
		return err
	}

	_, err = p.db.Exec(
		`INSERT INTO match_records (room_id, board_type, winner, winner_name, players, called_count, reason)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		result.RoomID, result.BoardType, result.Winner, result.WinnerName,
		players, result.CalledCount, result.Reason,
	)
	return err
}

// Close 关闭数据库连接
func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
