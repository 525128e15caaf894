package hub

import (
	"CourtsideApi/internal/engine"
)

// Command is one unit of work for the hub loop. Implementations mutate the
// game through the engine and broadcast the resulting state; a command the
// engine rejects is dropped without a broadcast.
type Command interface {
	execute(h *Hub)
}

type CommandType int

const (
	clockCommandType CommandType = iota
	swapCommandType
	foulOutCommandType
	injuryCommandType
	scoreCommandType
	teamScoreCommandType
	scoreNoteCommandType
	periodCommandType
	undoCommandType
	resetCommandType
	finishCommandType
	noteCommandType
	addPlayerCommandType
	updatePlayerCommandType
	removePlayerCommandType
)

type GenericCommand map[string]any

func (c GenericCommand) parseCommand() (Command, error) {
	commandType, err := checkAndAssertIntFromMap(c, "type")
	if err != nil {
		return nil, ErrCommandParseFailed
	}

	switch CommandType(commandType) {
	case clockCommandType:
		command := &ClockCommand{}
		start, err := checkAndAssertBoolFromMap(c, "start")
		if err != nil {
			return nil, ErrCommandParseFailed
		}
		command.Start = start
		return command, nil
	case swapCommandType:
		command := &SwapCommand{}
		command.In, _ = checkAndAssertStringFromMap(c, "in")
		command.Out, _ = checkAndAssertStringFromMap(c, "out")
		if command.In == "" && command.Out == "" {
			return nil, ErrCommandValidationFailed
		}
		return command, nil
	case foulOutCommandType:
		command := &FoulOutCommand{}
		playerID, err := checkAndAssertStringFromMap(c, "player_id")
		if err != nil {
			return nil, ErrCommandParseFailed
		}
		command.PlayerID = playerID
		return command, nil
	case injuryCommandType:
		command := &InjuryCommand{}
		playerID, err := checkAndAssertStringFromMap(c, "player_id")
		if err != nil {
			return nil, ErrCommandParseFailed
		}
		command.PlayerID = playerID
		return command, nil
	case scoreCommandType:
		command := &ScoreCommand{}
		playerID, err := checkAndAssertStringFromMap(c, "player_id")
		if err != nil {
			return nil, ErrCommandParseFailed
		}
		command.PlayerID = playerID

		points, err := checkAndAssertIntFromMap(c, "points")
		if err != nil {
			return nil, ErrCommandParseFailed
		}
		command.Points = points

		command.Correction, _ = checkAndAssertBoolFromMap(c, "correction")

		if command.Points <= 0 {
			return nil, ErrCommandValidationFailed
		}
		return command, nil
	case teamScoreCommandType:
		command := &TeamScoreCommand{}
		side, err := checkAndAssertStringFromMap(c, "side")
		if err != nil {
			return nil, ErrCommandParseFailed
		}
		command.Side = engine.Side(side)

		delta, err := checkAndAssertIntFromMap(c, "delta")
		if err != nil {
			return nil, ErrCommandParseFailed
		}
		command.Delta = delta

		if command.Side != engine.SideUs && command.Side != engine.SideThem {
			return nil, ErrCommandValidationFailed
		}
		return command, nil
	case scoreNoteCommandType:
		return &ScoreNoteCommand{}, nil
	case periodCommandType:
		command := &PeriodCommand{}
		command.KeepLineup, _ = checkAndAssertBoolFromMap(c, "keep_lineup")
		return command, nil
	case undoCommandType:
		return &UndoCommand{}, nil
	case resetCommandType:
		return &ResetCommand{}, nil
	case finishCommandType:
		command := &FinishCommand{}
		command.Name, _ = checkAndAssertStringFromMap(c, "name")
		return command, nil
	case noteCommandType:
		command := &NoteCommand{}
		action, err := checkAndAssertIntFromMap(c, "action")
		if err != nil {
			return nil, ErrCommandParseFailed
		}
		command.Action = NoteAction(action)

		index, err := checkAndAssertIntFromMap(c, "index")
		if err != nil {
			return nil, ErrCommandParseFailed
		}
		command.Index = index

		command.Text, _ = checkAndAssertStringFromMap(c, "text")

		if command.Action < noteUpdate || command.Action > noteRemove {
			return nil, ErrCommandValidationFailed
		}
		return command, nil
	case addPlayerCommandType:
		command := &AddPlayerCommand{}
		name, err := checkAndAssertStringFromMap(c, "name")
		if err != nil {
			return nil, ErrCommandParseFailed
		}
		command.Name = name

		number, err := checkAndAssertIntFromMap(c, "number")
		if err != nil {
			return nil, ErrCommandParseFailed
		}
		command.Number = number
		return command, nil
	case updatePlayerCommandType:
		command := &UpdatePlayerCommand{}
		playerID, err := checkAndAssertStringFromMap(c, "player_id")
		if err != nil {
			return nil, ErrCommandParseFailed
		}
		command.PlayerID = playerID

		name, err := checkAndAssertStringFromMap(c, "name")
		if err != nil {
			return nil, ErrCommandParseFailed
		}
		command.Name = name

		number, err := checkAndAssertIntFromMap(c, "number")
		if err != nil {
			return nil, ErrCommandParseFailed
		}
		command.Number = number
		return command, nil
	case removePlayerCommandType:
		command := &RemovePlayerCommand{}
		playerID, err := checkAndAssertStringFromMap(c, "player_id")
		if err != nil {
			return nil, ErrCommandParseFailed
		}
		command.PlayerID = playerID
		return command, nil
	}

	return nil, ErrCommandParseFailed
}

// tickCommand advances the clock by one second. Produced only by the hub's
// own ticker, never parsed from a client message.
type tickCommand struct{}

func (tickCommand) execute(h *Hub) {
	h.Game.Tick()
	h.broadcast()
}

// summaryRequest services synchronous reads from HTTP handlers through the
// same loop that applies writes.
type summaryRequest struct {
	reply chan *engine.Summary
}

func (r summaryRequest) execute(h *Hub) {
	r.reply <- h.Game.Summary()
}

type ClockCommand struct {
	Start bool
}

func (c *ClockCommand) execute(h *Hub) {
	if c.Start {
		h.Game.StartClock()
		h.clock.Start()
	} else {
		h.Game.PauseClock()
		h.clock.Stop()
	}
	h.broadcast()
}

type SwapCommand struct {
	In  string
	Out string
}

func (c *SwapCommand) execute(h *Hub) {
	if err := h.Game.Swap(c.In, c.Out); err != nil {
		return
	}
	h.broadcast()
}

type FoulOutCommand struct {
	PlayerID string
}

func (c *FoulOutCommand) execute(h *Hub) {
	if err := h.Game.MarkFouledOut(c.PlayerID); err != nil {
		return
	}
	h.broadcast()
}

type InjuryCommand struct {
	PlayerID string
}

func (c *InjuryCommand) execute(h *Hub) {
	if err := h.Game.ToggleInjury(c.PlayerID); err != nil {
		return
	}
	h.broadcast()
}

type ScoreCommand struct {
	PlayerID   string
	Points     int
	Correction bool
}

func (c *ScoreCommand) execute(h *Hub) {
	if err := h.Game.ScorePlayer(c.PlayerID, c.Points, c.Correction); err != nil {
		return
	}
	h.broadcast()
}

type TeamScoreCommand struct {
	Side  engine.Side
	Delta int
}

func (c *TeamScoreCommand) execute(h *Hub) {
	h.Game.AdjustScore(c.Side, c.Delta)
	h.broadcast()
}

type ScoreNoteCommand struct{}

func (c *ScoreNoteCommand) execute(h *Hub) {
	h.Game.LogScoreNote()
	h.broadcast()
}

type PeriodCommand struct {
	KeepLineup bool
}

func (c *PeriodCommand) execute(h *Hub) {
	h.Game.AdvancePeriod(c.KeepLineup)
	h.clock.Stop()
	h.broadcast()
}

type UndoCommand struct{}

func (c *UndoCommand) execute(h *Hub) {
	h.Game.Undo()
	// the ticker must mirror whatever running state the snapshot restored
	if h.Game.State().Running {
		h.clock.Start()
	} else {
		h.clock.Stop()
	}
	h.broadcast()
}

type ResetCommand struct{}

func (c *ResetCommand) execute(h *Hub) {
	h.Game.Reset()
	h.clock.Stop()
	h.broadcast()
}

type FinishCommand struct {
	Name string
}

func (c *FinishCommand) execute(h *Hub) {
	record := h.Game.Finish(c.Name)
	h.clock.Stop()
	h.persistRecord(record)
	h.broadcast()
}

type NoteAction int

const (
	noteUpdate NoteAction = iota
	noteInsert
	noteRemove
)

type NoteCommand struct {
	Action NoteAction
	Index  int
	Text   string
}

func (c *NoteCommand) execute(h *Hub) {
	switch c.Action {
	case noteUpdate:
		h.Game.UpdateNote(c.Index, c.Text)
	case noteInsert:
		h.Game.InsertNote(c.Index)
	case noteRemove:
		h.Game.RemoveNote(c.Index)
	}
	h.broadcast()
}

type AddPlayerCommand struct {
	Name   string
	Number int
}

func (c *AddPlayerCommand) execute(h *Hub) {
	if _, err := h.Game.AddPlayer(c.Name, c.Number); err != nil {
		return
	}
	h.broadcast()
}

type UpdatePlayerCommand struct {
	PlayerID string
	Name     string
	Number   int
}

func (c *UpdatePlayerCommand) execute(h *Hub) {
	if err := h.Game.UpdatePlayer(c.PlayerID, c.Name, c.Number); err != nil {
		return
	}
	h.broadcast()
}

type RemovePlayerCommand struct {
	PlayerID string
}

func (c *RemovePlayerCommand) execute(h *Hub) {
	if err := h.Game.RemovePlayer(c.PlayerID); err != nil {
		return
	}
	h.broadcast()
}
