package http

import (
	"encoding/json"
	"errors"

	"github.com/vovakirdan/doodle-lobby/internal/core"
	"github.com/vovakirdan/doodle-lobby/internal/lobby"
	"github.com/vovakirdan/doodle-lobby/internal/proto"
)

var errBadPayload = errors.New("bad payload")

// inboundToCommand maps a client frame to a hub command. A non-nil CoreError
// is reported to the client and the frame is dropped.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *core.CoreError) {
	switch inbound.Event {
	case proto.InboundCreateRoom:
		return &core.Command{Kind: core.CommandCreateRoom}, nil
	case proto.InboundJoinRoom:
		// An empty or missing room still runs the join, so the caller leaves
		// its current room before being told the room does not exist.
		var room string
		if len(inbound.Data) > 0 && string(inbound.Data) != "null" {
			var err error
			if room, err = decodeString(inbound.Data); err != nil {
				return nil, badRequest("room must be a string")
			}
		}
		return &core.Command{Kind: core.CommandJoinRoom, Room: room}, nil
	case proto.InboundChangeName:
		name, err := decodeString(inbound.Data)
		if err != nil {
			return nil, badRequest("name must be a string")
		}
		return &core.Command{Kind: core.CommandChangeName, Name: name}, nil
	case proto.InboundStartGame:
		room, err := decodeString(inbound.Data)
		if err != nil {
			return nil, badRequest("room must be a string")
		}
		return &core.Command{Kind: core.CommandStartGame, Room: room}, nil
	case proto.InboundUpdateSettings:
		var s proto.Settings
		if len(inbound.Data) == 0 || json.Unmarshal(inbound.Data, &s) != nil {
			return nil, badRequest("settings object is required")
		}
		return &core.Command{
			Kind: core.CommandUpdateSettings,
			Settings: lobby.Settings{
				Rounds:          s.Rounds,
				DrawingTime:     s.DrawingTime,
				CustomWords:     s.CustomWords,
				CustomWordsOnly: s.CustomWordsOnly,
			},
		}, nil
	case proto.InboundDisconnecting:
		return &core.Command{Kind: core.CommandDisconnecting}, nil
	default:
		return nil, badRequest("unknown event")
	}
}

func decodeString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", errBadPayload
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}

func badRequest(msg string) *core.CoreError {
	return &core.CoreError{Code: core.ErrCodeBadRequest, Message: msg}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventRoomJoined:
		return proto.Outbound{Event: proto.OutboundRoomJoined, Data: roomFromState(event.State)}
	case core.EventPlayers:
		return proto.Outbound{Event: proto.OutboundLobbyPlayerUpdate, Data: playersFrom(event.Players)}
	case core.EventOwnerChanged:
		return proto.Outbound{Event: proto.OutboundOwnerChanged, Data: event.Owner}
	case core.EventNameChanged:
		return proto.Outbound{Event: proto.OutboundNameChanged, Data: event.Name}
	case core.EventGameStarting:
		return proto.Outbound{Event: proto.OutboundGameStarting}
	case core.EventSettings:
		return proto.Outbound{Event: proto.OutboundSettingsUpdated, Data: settingsFrom(event.Settings)}
	case core.EventTurn:
		return proto.Outbound{
			Event: proto.OutboundTurnAdvanced,
			Data:  proto.Turn{Round: event.Round, PlayerIndex: event.PlayerIndex},
		}
	case core.EventGameEnded:
		return proto.Outbound{Event: proto.OutboundGameEnded, Data: playersFrom(event.Players)}
	case core.EventError:
		if event.Error == nil {
			return errorOutbound(&core.CoreError{Code: "unknown", Message: "unknown error"})
		}
		return errorOutbound(event.Error)
	default:
		return errorOutbound(&core.CoreError{Code: "unknown", Message: "unknown event"})
	}
}

func errorOutbound(err *core.CoreError) proto.Outbound {
	return proto.Outbound{Event: proto.OutboundError, Data: err.Message, Code: err.Code}
}

func roomFromState(st *lobby.RoomState) proto.Room {
	if st == nil {
		return proto.Room{Players: []proto.Player{}}
	}
	return proto.Room{
		Name:        st.Name,
		Players:     playersFrom(st.Players),
		Owner:       st.Owner,
		Settings:    settingsFrom(st.Settings),
		Round:       st.Round,
		PlayerIndex: st.PlayerIndex,
	}
}

func playersFrom(players []lobby.Player) []proto.Player {
	out := make([]proto.Player, 0, len(players))
	for _, p := range players {
		out = append(out, proto.Player{ID: p.ID, Name: p.Name, Points: p.Points})
	}
	return out
}

func settingsFrom(s lobby.Settings) proto.Settings {
	return proto.Settings{
		Rounds:          s.Rounds,
		DrawingTime:     s.DrawingTime,
		CustomWords:     s.CustomWords,
		CustomWordsOnly: s.CustomWordsOnly,
	}
}

func summaryFromState(st lobby.RoomState) proto.RoomSummary {
	return proto.RoomSummary{
		Name:    st.Name,
		Players: len(st.Players),
		Owner:   st.Owner,
		Round:   st.Round,
		Started: st.Round != 0,
	}
}
