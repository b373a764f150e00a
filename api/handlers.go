package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wfunc/bingoserver/game"
	"github.com/wfunc/bingoserver/room"
	"github.com/wfunc/bingoserver/services"
)

// statusFor 把业务错误翻译成HTTP状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, room.ErrRoomNotFound), errors.Is(err, room.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, room.ErrRoomExists),
		errors.Is(err, room.ErrVersionConflict),
		errors.Is(err, room.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, room.ErrRoomFull),
		errors.Is(err, room.ErrInsufficientPlayers),
		errors.Is(err, room.ErrGameAlreadyStarted),
		errors.Is(err, room.ErrNotYourTurn),
		errors.Is(err, room.ErrInvalidNumber),
		errors.Is(err, room.ErrPendingProposalExists),
		errors.Is(err, room.ErrNoPendingProposal),
		errors.Is(err, room.ErrGameNotStarted),
		errors.Is(err, room.ErrInvalidStrikeType),
		errors.Is(err, room.ErrNoValidBingo),
		errors.Is(err, game.ErrInvalidBoardType),
		errors.Is(err, game.ErrInvalidIndex),
		errors.Is(err, game.ErrAlreadyStruck),
		errors.Is(err, game.ErrLineIncomplete):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func ok(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "data": data})
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"success": false, "message": err.Error()})
}

// CreateRoomHandler 创建房间
func CreateRoomHandler(m *room.Machine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name      string `json:"name"`
			BoardType string `json:"boardType"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}

		r, player, err := m.CreateRoom(req.Name, game.BoardType(req.BoardType))
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, "room created", gin.H{
			"roomId":    r.RoomID,
			"boardType": r.BoardType,
			"player":    player,
		})
	}
}

// JoinRoomHandler 加入房间
func JoinRoomHandler(m *room.Machine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RoomID string `json:"roomId"`
			Name   string `json:"name"`
		}
		if err := c.BindJSON(&req); err != nil || req.RoomID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "roomId required"})
			return
		}

		player, err := m.JoinRoom(req.RoomID, req.Name)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, "joined room", gin.H{"roomId": req.RoomID, "player": player})
	}
}

// StartGameHandler 开始对局
func StartGameHandler(m *room.Machine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RoomID string `json:"roomId"`
		}
		if err := c.BindJSON(&req); err != nil || req.RoomID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "roomId required"})
			return
		}

		if err := m.StartGame(req.RoomID); err != nil {
			fail(c, err)
			return
		}
		ok(c, "game started", nil)
	}
}

// RejoinRoomHandler 掉线重连
func RejoinRoomHandler(m *room.Machine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RoomID   string `json:"roomId"`
			PlayerID string `json:"playerId"`
		}
		if err := c.BindJSON(&req); err != nil || req.RoomID == "" || req.PlayerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "roomId and playerId required"})
			return
		}

		player, err := m.RejoinRoom(req.RoomID, req.PlayerID)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, "rejoined room", gin.H{"roomId": req.RoomID, "player": player})
	}
}

// PlayersHandler 列出房间内的玩家
func PlayersHandler(m *room.Machine) gin.HandlerFunc {
	return func(c *gin.Context) {
		players, err := m.ListPlayers(c.Param("roomId"))
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, "players", gin.H{"players": players})
	}
}

// ProposeNumberHandler 提议一个数字
func ProposeNumberHandler(m *room.Machine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RoomID   string `json:"roomId"`
			PlayerID string `json:"playerId"`
			Number   int    `json:"number"`
		}
		if err := c.BindJSON(&req); err != nil || req.RoomID == "" || req.PlayerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "roomId and playerId required"})
			return
		}

		if err := m.ProposeNumber(req.RoomID, req.PlayerID, req.Number); err != nil {
			fail(c, err)
			return
		}
		ok(c, "number proposed", gin.H{"number": req.Number})
	}
}

// ConfirmProposalHandler 确认对手提议的数字
func ConfirmProposalHandler(m *room.Machine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RoomID   string `json:"roomId"`
			PlayerID string `json:"playerId"`
		}
		if err := c.BindJSON(&req); err != nil || req.RoomID == "" || req.PlayerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "roomId and playerId required"})
			return
		}

		if err := m.ConfirmProposal(req.RoomID, req.PlayerID); err != nil {
			fail(c, err)
			return
		}
		ok(c, "proposal confirmed", nil)
	}
}

// StrikeHandler 划掉一整行或一整列
func StrikeHandler(m *room.Machine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RoomID     string `json:"roomId"`
			PlayerID   string `json:"playerId"`
			StrikeType string `json:"strikeType"`
			Index      int    `json:"index"`
		}
		if err := c.BindJSON(&req); err != nil || req.RoomID == "" || req.PlayerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "roomId and playerId required"})
			return
		}

		result, err := m.Strike(req.RoomID, req.PlayerID, room.StrikeType(req.StrikeType), req.Index)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, "line struck", gin.H{
			"struckLetter": result.StruckLetter,
			"hasBingo":     result.HasBingo,
		})
	}
}

// CallBingoHandler 按标记盘宣告获胜
func CallBingoHandler(m *room.Machine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RoomID   string `json:"roomId"`
			PlayerID string `json:"playerId"`
		}
		if err := c.BindJSON(&req); err != nil || req.RoomID == "" || req.PlayerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "roomId and playerId required"})
			return
		}

		if err := m.CallBingo(req.RoomID, req.PlayerID); err != nil {
			fail(c, err)
			return
		}
		ok(c, "bingo", gin.H{"winner": req.PlayerID})
	}
}

// RoomStateHandler 房间全量状态，playerId 参数可选
func RoomStateHandler(m *room.Machine) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := m.GetRoomState(c.Param("roomId"), c.Query("playerId"))
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, "room state", state)
	}
}

// RoomInfoHandler 加入前的房间公开信息
func RoomInfoHandler(m *room.Machine) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := m.GetRoomInfo(c.Param("roomId"))
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, "room info", info)
	}
}

// PlayerStatsHandler 玩家战绩
func PlayerStatsHandler(s *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := s.PlayerStats(c.Param("playerName"))
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, "player stats", stats)
	}
}
