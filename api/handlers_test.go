package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wfunc/bingoserver/persistence"
	"github.com/wfunc/bingoserver/room"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	machine := room.NewMachine(persistence.NewMemoryStore(), nil, nil)
	return NewRouter(machine, nil, nil)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("Response is not JSON: %s", w.Body.String())
	}
	return w, parsed
}

func TestCreateJoinStartFlow(t *testing.T) {
	router := newTestRouter()

	w, resp := doJSON(t, router, http.MethodPost, "/api/v1/bingo/create-room",
		map[string]string{"name": "alice", "boardType": "5x5"})
	if w.Code != http.StatusOK {
		t.Fatalf("create-room status = %d, body %s", w.Code, w.Body.String())
	}

	data := resp["data"].(map[string]interface{})
	roomID := data["roomId"].(string)
	if roomID == "" {
		t.Fatal("create-room should return a roomId")
	}
	// 请求体里的 name 字段必须被绑定，不能落回默认名
	if got := data["player"].(map[string]interface{})["name"].(string); got != "alice" {
		t.Errorf("player name = %q, want alice", got)
	}

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/bingo/join-room",
		map[string]string{"roomId": roomID, "name": "bob"})
	if w.Code != http.StatusOK {
		t.Fatalf("join-room status = %d, body %s", w.Code, w.Body.String())
	}

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/bingo/start-game",
		map[string]string{"roomId": roomID})
	if w.Code != http.StatusOK {
		t.Fatalf("start-game status = %d, body %s", w.Code, w.Body.String())
	}

	w, resp = doJSON(t, router, http.MethodGet, "/api/v1/bingo/room/"+roomID+"/state", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("room state status = %d", w.Code)
	}
	state := resp["data"].(map[string]interface{})
	if state["playerCount"].(float64) != 2 {
		t.Errorf("playerCount = %v, want 2", state["playerCount"])
	}
}

func TestErrorStatusMapping(t *testing.T) {
	router := newTestRouter()

	// 未知房间 → 404
	w, _ := doJSON(t, router, http.MethodGet, "/api/v1/bingo/room/NOSUCHRM/info", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Unknown room info status = %d, want 404", w.Code)
	}

	// 非法棋盘规格 → 400
	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/bingo/create-room",
		map[string]string{"name": "alice", "boardType": "9x9"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Invalid board type status = %d, want 400", w.Code)
	}

	// 人数不足开局 → 400
	_, resp := doJSON(t, router, http.MethodPost, "/api/v1/bingo/create-room",
		map[string]string{"name": "alice", "boardType": "5x5"})
	roomID := resp["data"].(map[string]interface{})["roomId"].(string)

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/bingo/start-game",
		map[string]string{"roomId": roomID})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Insufficient players status = %d, want 400", w.Code)
	}

	// 不在回合内提议 → 400
	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/bingo/propose-number",
		map[string]interface{}{"roomId": roomID, "playerId": "ghost", "number": 5})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Out of turn proposal status = %d, want 400", w.Code)
	}
}

func TestFullMatchOverREST(t *testing.T) {
	router := newTestRouter()

	_, resp := doJSON(t, router, http.MethodPost, "/api/v1/bingo/create-room",
		map[string]string{"name": "alice", "boardType": "5x5"})
	data := resp["data"].(map[string]interface{})
	roomID := data["roomId"].(string)
	player := data["player"].(map[string]interface{})
	playerID := player["id"].(string)
	board := player["board"].([]interface{})
	firstRow := board[0].([]interface{})

	doJSON(t, router, http.MethodPost, "/api/v1/bingo/join-room",
		map[string]string{"roomId": roomID, "name": "bob"})
	doJSON(t, router, http.MethodPost, "/api/v1/bingo/start-game",
		map[string]string{"roomId": roomID})

	// 自提自确认叫满第一行
	for _, cell := range firstRow {
		n := int(cell.(float64))
		w, _ := doJSON(t, router, http.MethodPost, "/api/v1/bingo/propose-number",
			map[string]interface{}{"roomId": roomID, "playerId": playerID, "number": n})
		if w.Code != http.StatusOK {
			t.Fatalf("propose %d status = %d", n, w.Code)
		}
		w, _ = doJSON(t, router, http.MethodPost, "/api/v1/bingo/confirm-proposal",
			map[string]string{"roomId": roomID, "playerId": playerID})
		if w.Code != http.StatusOK {
			t.Fatalf("confirm %d status = %d", n, w.Code)
		}
	}

	w, resp := doJSON(t, router, http.MethodPost, "/api/v1/bingo/strike",
		map[string]interface{}{"roomId": roomID, "playerId": playerID, "strikeType": "row", "index": 0})
	if w.Code != http.StatusOK {
		t.Fatalf("strike status = %d, body %s", w.Code, w.Body.String())
	}
	struck := resp["data"].(map[string]interface{})
	if struck["struckLetter"].(string) != "B" {
		t.Errorf("struckLetter = %v, want B", struck["struckLetter"])
	}

	// 标记盘上第一行已满，旧式宣告也应当成立
	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/bingo/call-bingo",
		map[string]string{"roomId": roomID, "playerId": playerID})
	if w.Code != http.StatusOK {
		t.Fatalf("call-bingo status = %d, body %s", w.Code, w.Body.String())
	}

	w, resp = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/bingo/room/%s/state?playerId=%s", roomID, playerID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("room state status = %d", w.Code)
	}
	roomView := resp["data"].(map[string]interface{})["room"].(map[string]interface{})
	if roomView["gameStatus"].(string) != "completed" {
		t.Errorf("gameStatus = %v, want completed", roomView["gameStatus"])
	}
	if roomView["winner"].(string) != playerID {
		t.Errorf("winner = %v, want %s", roomView["winner"], playerID)
	}
}
