package main

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	MsgTypeCreateRoom      = 101
	MsgTypeJoinRoom        = 102
	MsgTypeStartGame       = 103
	MsgTypeLeaveRoom       = 104
	MsgTypeRejoinRoom      = 105
	MsgTypeProposeNumber   = 201
	MsgTypeConfirmProposal = 202
	MsgTypeStrike          = 203
	MsgTypeCallBingo       = 204
	MsgTypeRoomState       = 301
)

// send formats and sends a message to the WebSocket server.
func send(c *websocket.Conn, msgID uint16, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	packet := make([]byte, 4+len(data))
	binary.BigEndian.PutUint16(packet[0:2], msgID)
	binary.BigEndian.PutUint16(packet[2:4], uint16(len(data)))
	copy(packet[4:], data)

	return c.WriteMessage(websocket.BinaryMessage, packet)
}

// session state captured from server replies
var (
	roomID   string
	playerID string
)

// capture remembers roomId/playerId from create/join/rejoin replies.
func capture(msgID uint16, data []byte) {
	if msgID != MsgTypeCreateRoom && msgID != MsgTypeJoinRoom && msgID != MsgTypeRejoinRoom {
		return
	}

	var reply struct {
		OK   bool `json:"ok"`
		Data struct {
			RoomID string `json:"roomId"`
			Player struct {
				ID string `json:"id"`
			} `json:"player"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &reply); err != nil || !reply.OK {
		return
	}

	roomID = reply.Data.RoomID
	playerID = reply.Data.Player.ID
	log.Printf("Bound to room %s as player %s", roomID, playerID)
}

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: "localhost:8080", Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			if len(message) < 4 {
				log.Printf("Received invalid packet of size %d", len(message))
				continue
			}
			msgID := binary.BigEndian.Uint16(message[0:2])
			data := message[4:]
			log.Printf("<- RECV (ID: %d): %s", msgID, string(data))
			capture(msgID, data)
		}
	}()

	log.Println("Commands: create [name] [5x5|5x10] | join <roomId> [name] | start | propose <n> | confirm | strike <row|column> <i> | bingo | state | rejoin <roomId> <playerId> | leave")

	// Write loop
	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		default:
			text, _ := reader.ReadString('\n')
			fields := strings.Fields(strings.TrimSpace(text))
			if len(fields) == 0 {
				continue
			}

			var err error
			switch fields[0] {
			case "create":
				req := map[string]string{"boardType": "5x5"}
				if len(fields) > 1 {
					req["name"] = fields[1]
				}
				if len(fields) > 2 {
					req["boardType"] = fields[2]
				}
				err = send(c, MsgTypeCreateRoom, req)
			case "join":
				if len(fields) < 2 {
					log.Println("Usage: join <roomId> [name]")
					continue
				}
				req := map[string]string{"roomId": fields[1]}
				if len(fields) > 2 {
					req["name"] = fields[2]
				}
				err = send(c, MsgTypeJoinRoom, req)
			case "start":
				err = send(c, MsgTypeStartGame, map[string]string{"roomId": roomID})
			case "propose":
				if len(fields) < 2 {
					log.Println("Usage: propose <number>")
					continue
				}
				n, convErr := strconv.Atoi(fields[1])
				if convErr != nil {
					log.Println("Not a number:", fields[1])
					continue
				}
				err = send(c, MsgTypeProposeNumber, map[string]interface{}{
					"roomId": roomID, "playerId": playerID, "number": n,
				})
			case "confirm":
				err = send(c, MsgTypeConfirmProposal, map[string]string{
					"roomId": roomID, "playerId": playerID,
				})
			case "strike":
				if len(fields) < 3 {
					log.Println("Usage: strike <row|column> <index>")
					continue
				}
				i, convErr := strconv.Atoi(fields[2])
				if convErr != nil {
					log.Println("Not a number:", fields[2])
					continue
				}
				err = send(c, MsgTypeStrike, map[string]interface{}{
					"roomId": roomID, "playerId": playerID,
					"strikeType": fields[1], "index": i,
				})
			case "bingo":
				err = send(c, MsgTypeCallBingo, map[string]string{
					"roomId": roomID, "playerId": playerID,
				})
			case "state":
				err = send(c, MsgTypeRoomState, map[string]string{
					"roomId": roomID, "playerId": playerID,
				})
			case "rejoin":
				if len(fields) < 3 {
					log.Println("Usage: rejoin <roomId> <playerId>")
					continue
				}
				err = send(c, MsgTypeRejoinRoom, map[string]string{
					"roomId": fields[1], "playerId": fields[2],
				})
			case "leave":
				err = send(c, MsgTypeLeaveRoom, map[string]string{"roomId": roomID})
			default:
				log.Println("Unknown command:", fields[0])
				continue
			}

			if err != nil {
				log.Println("Write error:", err)
				return
			}
		}
	}
}
