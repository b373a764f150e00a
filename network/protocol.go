package network

// 消息ID约定：1xx 为房间请求，2xx 为对局动作，3xx 为服务端推送
const (
	MsgTypeHeartbeat = 1

	MsgTypeCreateRoom = 101
	MsgTypeJoinRoom   = 102
	MsgTypeStartGame  = 103
	MsgTypeLeaveRoom  = 104
	MsgTypeRejoinRoom = 105

	MsgTypeProposeNumber   = 201
	MsgTypeConfirmProposal = 202
	MsgTypeStrike          = 203
	MsgTypeCallBingo       = 204

	MsgTypeRoomState = 301
	MsgTypeRoomEvent = 302
	MsgTypeAck       = 303
	MsgTypeError     = 304
)
