// room/machine.go
package room

import (
	"errors"
	"time"

	"github.com/wfunc/bingoserver/game"
	"github.com/wfunc/bingoserver/logger"
)

// StrikeType 划线类型
type StrikeType string

const (
	StrikeRow    StrikeType = "row"
	StrikeColumn StrikeType = "column"
)

// saveRetries CAS 冲突时整个操作从重新加载开始重试的上限
const saveRetries = 3

// createRetries 房间短码撞号时重新生成的上限
const createRetries = 5

// Machine 是房间状态机，负责所有房间和玩家的状态变迁
// 每个变更操作都是：加载快照 → 校验并在副本上修改 → CAS 提交 → 成功后广播
// notifier 和 recorder 可以为 nil（例如只读部署和测试）
type Machine struct {
	repo     Repository
	notifier Notifier
	recorder Recorder
}

// NewMachine 创建房间状态机
func NewMachine(repo Repository, notifier Notifier, recorder Recorder) *Machine {
	return &Machine{
		repo:     repo,
		notifier: notifier,
		recorder: recorder,
	}
}

// update 以 CAS 重试循环执行一次房间变更
// fn 在深拷贝上运行，返回错误时本次不持久化任何东西
func (m *Machine) update(roomID string, fn func(r *Room) error) (*Room, error) {
	for attempt := 0; attempt < saveRetries; attempt++ {
		current, err := m.repo.Load(roomID)
		if err != nil {
			return nil, err
		}

		next := current.Clone()
		if err := fn(next); err != nil {
			return nil, err
		}
		next.UpdatedAt = time.Now()

		if err := m.repo.Save(next); err != nil {
			if errors.Is(err, ErrVersionConflict) {
				continue
			}
			return nil, err
		}
		return next, nil
	}
	return nil, ErrConflict
}

func (m *Machine) notify(roomID, event string, payload interface{}) {
	if m.notifier == nil {
		return
	}
	m.notifier.NotifyRoom(roomID, event, payload)
}

func (m *Machine) record(r *Room, reason string) {
	if m.recorder == nil {
		return
	}

	result := MatchResult{
		RoomID:      r.RoomID,
		BoardType:   string(r.BoardType),
		Winner:      r.Winner,
		CalledCount: len(r.CalledNumbers),
		Reason:      reason,
	}
	for _, p := range r.Players {
		result.PlayerNames = append(result.PlayerNames, p.Name)
		if p.ID == r.Winner {
			result.WinnerName = p.Name
		}
	}
	m.recorder.RecordMatch(result)
}

// CreateRoom 创建房间并加入第一名玩家，先手轮到创建者
func (m *Machine) CreateRoom(name string, boardType game.BoardType) (*Room, *game.Player, error) {
	if !boardType.Valid() {
		return nil, nil, game.ErrInvalidBoardType
	}
	if name == "" {
		name = "Player1"
	}

	player, err := game.NewPlayer(name, boardType)
	if err != nil {
		return nil, nil, err
	}

	for attempt := 0; attempt < createRetries; attempt++ {
		roomID := NewRoomID()
		taken, err := m.repo.Exists(roomID)
		if err != nil {
			return nil, nil, err
		}
		if taken {
			continue
		}

		now := time.Now()
		r := &Room{
			RoomID:        roomID,
			BoardType:     boardType,
			Players:       []*game.Player{player},
			Turn:          player.ID,
			CalledNumbers: []int{},
			GameStatus:    StatusPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := m.repo.Create(r); err != nil {
			if errors.Is(err, ErrRoomExists) {
				continue
			}
			return nil, nil, err
		}

		logger.Log.Infof("Room %s created by player %s (%s)", roomID, player.ID, name)
		return r, player, nil
	}
	return nil, nil, ErrConflict
}

// JoinRoom 第二名玩家加入，使用房间的棋盘规格生成新棋盘
func (m *Machine) JoinRoom(roomID, name string) (*game.Player, error) {
	if name == "" {
		name = "Player2"
	}

	var joined *game.Player
	r, err := m.update(roomID, func(r *Room) error {
		if len(r.Players) >= MaxPlayers {
			return ErrRoomFull
		}

		p, err := game.NewPlayer(name, r.BoardType)
		if err != nil {
			return err
		}
		r.Players = append(r.Players, p)
		joined = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Infof("Player %s (%s) joined room %s", joined.ID, name, roomID)
	m.notify(roomID, EventPlayerJoined, PlayerJoinedEvent{Players: r.Players})
	return joined, nil
}

// StartGame 两人到齐后开局
func (m *Machine) StartGame(roomID string) error {
	r, err := m.update(roomID, func(r *Room) error {
		if len(r.Players) < MaxPlayers {
			return ErrInsufficientPlayers
		}
		// completed 是终态，已开始的对局也不允许重新开局
		if r.Started || r.GameStatus == StatusCompleted {
			return ErrGameAlreadyStarted
		}
		r.Started = true
		r.GameStatus = StatusOngoing
		return nil
	})
	if err != nil {
		return err
	}

	event := GameStartedEvent{
		CalledNumbers: r.CalledNumbers,
		Turn:          r.Turn,
	}
	for _, p := range r.Players {
		event.Players = append(event.Players, PlayerStrikesView{ID: p.ID, Name: p.Name, Strikes: p.Strikes})
	}

	logger.Log.Infof("Room %s game started, turn %s", roomID, r.Turn)
	m.notify(roomID, EventGameStarted, event)
	return nil
}

// ProposeNumber 轮到的玩家提议一个数字，等待确认
// 已有待确认数字时禁止再次提议
func (m *Machine) ProposeNumber(roomID, playerID string, number int) error {
	_, err := m.update(roomID, func(r *Room) error {
		// 数字取值 1..max，0 同时是"无待确认数字"的哨兵值
		if number < 1 || number > r.BoardType.Max() {
			return ErrInvalidNumber
		}
		if r.Turn != playerID {
			return ErrNotYourTurn
		}
		if r.PendingNumber != 0 {
			return ErrPendingProposalExists
		}
		r.PendingNumber = number
		r.PendingBy = playerID
		return nil
	})
	if err != nil {
		return err
	}

	m.notify(roomID, EventOpponentProposed, OpponentProposedEvent{Number: number, By: playerID})
	return nil
}

// ConfirmProposal 确认待定数字：在所有玩家的棋盘上标记，
// 追加到已叫号列表（已存在则不重复追加），并把回合交给确认者
func (m *Machine) ConfirmProposal(roomID, playerID string) error {
	var confirmed int
	r, err := m.update(roomID, func(r *Room) error {
		if r.PendingNumber == 0 {
			return ErrNoPendingProposal
		}
		confirmed = r.PendingNumber

		for _, p := range r.Players {
			p.MarkNumber(confirmed)
		}

		if !r.HasCalled(confirmed) {
			r.CalledNumbers = append(r.CalledNumbers, confirmed)
		}

		r.PendingNumber = 0
		r.PendingBy = ""
		r.Turn = playerID
		return nil
	})
	if err != nil {
		return err
	}

	event := ProposalConfirmedEvent{
		Number:        confirmed,
		By:            playerID,
		CalledNumbers: r.CalledNumbers,
		Turn:          r.Turn,
	}
	for _, p := range r.Players {
		event.Players = append(event.Players, PlayerMarkedView{ID: p.ID, Marked: p.Marked})
	}

	m.notify(roomID, EventProposalConfirmed, event)
	return nil
}

// StrikeResult Strike 操作的结果
type StrikeResult struct {
	Room         *Room
	StruckLetter string
	HasBingo     bool
}

// Strike 玩家声明划掉一整行或一整列
// 校验通过后记录划线、点亮下一个 BINGO 字母，并做划线驱动的获胜判定
func (m *Machine) Strike(roomID, playerID string, strikeType StrikeType, index int) (*StrikeResult, error) {
	if strikeType != StrikeRow && strikeType != StrikeColumn {
		return nil, ErrInvalidStrikeType
	}

	var struckLetter string
	var hasBingo bool
	r, err := m.update(roomID, func(r *Room) error {
		if !r.Started {
			return ErrGameNotStarted
		}

		player, ok := r.Player(playerID)
		if !ok {
			return ErrPlayerNotFound
		}

		if strikeType == StrikeRow {
			if err := game.ValidateRowStrike(player, index); err != nil {
				return err
			}
			player.Strikes.Rows[index] = true
		} else {
			if err := game.ValidateColumnStrike(player, index); err != nil {
				return err
			}
			player.Strikes.Columns[index] = true
		}

		struckLetter, _ = player.BingoWord.Advance()

		hasBingo = game.BingoWithStrikes(player)
		if hasBingo {
			r.GameStatus = StatusCompleted
			r.Winner = player.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := PlayerStruckEvent{
		RoomID:            r.RoomID,
		Turn:              r.Turn,
		StrikeType:        strikeType,
		StrikeIndex:       index,
		StrikedBy:         playerID,
		StruckBingoLetter: struckLetter,
		HasBingo:          hasBingo,
	}
	for _, p := range r.Players {
		event.Players = append(event.Players, PlayerStruckView{
			ID:        p.ID,
			Name:      p.Name,
			Marked:    p.Marked,
			Strikes:   p.Strikes,
			BingoWord: p.BingoWord,
			BoardType: p.BoardType,
		})
	}
	m.notify(roomID, EventPlayerStruck, event)

	if hasBingo {
		winner, _ := r.Player(playerID)
		logger.Log.Infof("Room %s won by %s via strike", roomID, playerID)
		m.notify(roomID, EventGameOver, GameOverEvent{
			Winner:     playerID,
			WinnerName: winner.Name,
			Reason:     "BINGO achieved",
		})
		m.record(r, "BINGO achieved")
	}

	return &StrikeResult{Room: r, StruckLetter: struckLetter, HasBingo: hasBingo}, nil
}

// CallBingo 旧式获胜入口：只看标记盘，不要求已开局也不参考划线
// 与 Strike 的判定是两条刻意独立的获胜路径，不要合并
func (m *Machine) CallBingo(roomID, playerID string) error {
	r, err := m.update(roomID, func(r *Room) error {
		player, ok := r.Player(playerID)
		if !ok {
			return ErrPlayerNotFound
		}
		if !game.MarkedBingo(player.Marked) {
			return ErrNoValidBingo
		}
		r.GameStatus = StatusCompleted
		r.Winner = playerID
		return nil
	})
	if err != nil {
		return err
	}

	logger.Log.Infof("Room %s won by %s via callBingo", roomID, playerID)
	m.notify(roomID, EventGameOver, GameOverEvent{Winner: playerID})
	m.record(r, "called bingo")
	return nil
}

// RejoinRoom 掉线玩家重新接入已有房间状态，只读不修改
func (m *Machine) RejoinRoom(roomID, playerID string) (*game.Player, error) {
	r, err := m.repo.Load(roomID)
	if err != nil {
		return nil, err
	}

	player, ok := r.Player(playerID)
	if !ok {
		return nil, ErrPlayerNotFound
	}

	m.notify(roomID, EventPlayerRejoined, PlayerRejoinedEvent{PlayerID: player.ID, Name: player.Name})
	return player, nil
}

// PlayerLeft 广播玩家离开，不修改房间文档
func (m *Machine) PlayerLeft(roomID, playerID string) {
	m.notify(roomID, EventPlayerLeft, PlayerLeftEvent{PlayerID: playerID})
}

// ListPlayers 返回房间内的所有玩家
func (m *Machine) ListPlayers(roomID string) ([]*game.Player, error) {
	r, err := m.repo.Load(roomID)
	if err != nil {
		return nil, err
	}
	return r.Players, nil
}

// GetRoomState 只读投影：房间全量状态，可选附带请求者自己的视角
func (m *Machine) GetRoomState(roomID, playerID string) (*RoomStateView, error) {
	r, err := m.repo.Load(roomID)
	if err != nil {
		return nil, err
	}

	view := &RoomStateView{
		Room:        newRoomView(r),
		PlayerCount: len(r.Players),
		CanStart:    r.CanStart(),
	}

	if playerID != "" {
		player, ok := r.Player(playerID)
		if !ok {
			return nil, ErrPlayerNotFound
		}
		view.CurrentPlayer = player
	}
	return view, nil
}

// GetRoomInfo 只读投影：加入大厅前展示用的轻量信息
func (m *Machine) GetRoomInfo(roomID string) (*RoomInfoView, error) {
	r, err := m.repo.Load(roomID)
	if err != nil {
		return nil, err
	}

	info := &RoomInfoView{
		RoomID:      r.RoomID,
		BoardType:   r.BoardType,
		PlayerCount: len(r.Players),
		Started:     r.Started,
		CanJoin:     r.CanJoin(),
	}
	for _, p := range r.Players {
		info.Players = append(info.Players, PlayerNameView{ID: p.ID, Name: p.Name})
	}
	return info, nil
}
