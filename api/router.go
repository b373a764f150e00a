package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wfunc/bingoserver/room"
	"github.com/wfunc/bingoserver/services"
)

// NewRouter 组装HTTP路由：REST接口加websocket入口
// stats 只在 gorm 存储下可用，传 nil 时不挂统计路由
func NewRouter(machine *room.Machine, ws http.HandlerFunc, stats *services.StatsService) *gin.Engine {
	r := gin.Default()

	// WebSocket 实时通道
	if ws != nil {
		r.GET("/ws", gin.WrapF(ws))
	}

	v1 := r.Group("/api/v1/bingo")
	{
		v1.POST("/create-room", CreateRoomHandler(machine))
		v1.POST("/join-room", JoinRoomHandler(machine))
		v1.POST("/start-game", StartGameHandler(machine))
		v1.POST("/rejoin-room", RejoinRoomHandler(machine))
		v1.GET("/players/:roomId", PlayersHandler(machine))

		v1.POST("/propose-number", ProposeNumberHandler(machine))
		v1.POST("/confirm-proposal", ConfirmProposalHandler(machine))
		v1.POST("/strike", StrikeHandler(machine))
		v1.POST("/call-bingo", CallBingoHandler(machine))

		v1.GET("/room/:roomId/state", RoomStateHandler(machine))
		v1.GET("/room/:roomId/info", RoomInfoHandler(machine))

		if stats != nil {
			v1.GET("/stats/:playerName", PlayerStatsHandler(stats))
		}
	}

	return r
}
