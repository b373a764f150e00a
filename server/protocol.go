// server/protocol.go
package server

import (
	"encoding/json"

	"github.com/wfunc/bingoserver/game"
	"github.com/wfunc/bingoserver/logger"
	"github.com/wfunc/bingoserver/session"
)

// 请求体

type createRoomRequest struct {
	Name      string `json:"name"`
	BoardType string `json:"boardType"`
}

type joinRoomRequest struct {
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
}

type roomRequest struct {
	RoomID string `json:"roomId"`
}

type playerRequest struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

type proposeRequest struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
	Number   int    `json:"number"`
}

type strikeRequest struct {
	RoomID     string `json:"roomId"`
	PlayerID   string `json:"playerId"`
	StrikeType string `json:"strikeType"`
	Index      int    `json:"index"`
}

// 响应体

type createRoomResponse struct {
	RoomID    string       `json:"roomId"`
	BoardType string       `json:"boardType"`
	Player    *game.Player `json:"player"`
}

type joinRoomResponse struct {
	RoomID string       `json:"roomId"`
	Player *game.Player `json:"player"`
}

type strikeResponse struct {
	StruckLetter string `json:"struckLetter"`
	HasBingo     bool   `json:"hasBingo"`
}

type okEnvelope struct {
	OK   bool        `json:"ok"`
	Data interface{} `json:"data,omitempty"`
}

type errorEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// decode 解包请求，失败时直接回错误包
func decode(sess *session.Session, msgID uint16, data []byte, v interface{}) bool {
	if err := json.Unmarshal(data, v); err != nil {
		logger.Log.Warnf("Session %s sent malformed payload for msg %d: %v", sess.GetID(), msgID, err)
		sendError(sess, msgID, err)
		return false
	}
	return true
}

func sendOK(sess *session.Session, msgID uint16, payload interface{}) {
	data, err := json.Marshal(okEnvelope{OK: true, Data: payload})
	if err != nil {
		logger.Log.Errorf("Failed to marshal reply for msg %d: %v", msgID, err)
		return
	}
	if err := sess.Send(msgID, data); err != nil {
		logger.Log.Warnf("Failed to send reply to session %s: %v", sess.GetID(), err)
	}
}

func sendError(sess *session.Session, msgID uint16, cause error) {
	data, err := json.Marshal(errorEnvelope{OK: false, Error: cause.Error()})
	if err != nil {
		return
	}
	if err := sess.Send(msgID, data); err != nil {
		logger.Log.Warnf("Failed to send error to session %s: %v", sess.GetID(), err)
	}
}
