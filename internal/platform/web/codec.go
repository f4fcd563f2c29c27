package web

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/lungbird/internal/core"
	"github.com/vovakirdan/lungbird/internal/games/lungbird"
	"github.com/vovakirdan/lungbird/internal/runner"
)

// Codec encodes server frames for one connection.
type Codec interface {
	Name() string
	MessageType() int
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type jsonCodec struct{}

func (jsonCodec) Name() string                       { return "json" }
func (jsonCodec) MessageType() int                   { return websocket.TextMessage }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

type msgpackCodec struct{}

func (msgpackCodec) Name() string                       { return "msgpack" }
func (msgpackCodec) MessageType() int                   { return websocket.BinaryMessage }
func (msgpackCodec) Marshal(v any) ([]byte, error)      { return msgpack.Marshal(v) }
func (msgpackCodec) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

// CodecByName returns the codec for a query value. Empty means msgpack.
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", "msgpack":
		return msgpackCodec{}, nil
	case "json":
		return jsonCodec{}, nil
	default:
		return nil, fmt.Errorf("web: unknown codec %q (want msgpack or json)", name)
	}
}

// ClientMessage is a command sent by a browser.
type ClientMessage struct {
	Action string `msgpack:"action" json:"action"`
}

// action maps a client command to a game action.
func (m ClientMessage) action() (core.Action, bool) {
	switch m.Action {
	case "gesture", "jump", "tap":
		return core.ActionJump, true
	case "restart":
		return core.ActionRestart, true
	case "pause":
		return core.ActionPause, true
	default:
		return core.ActionNone, false
	}
}

// EventMessage is the wire form of a core.Event.
type EventMessage struct {
	Kind  string `msgpack:"kind" json:"kind"`
	Tick  uint64 `msgpack:"tick" json:"tick"`
	Score int    `msgpack:"score" json:"score"`
}

// ServerMessage is one published frame.
type ServerMessage struct {
	Frame    uint64            `msgpack:"frame" json:"frame"`
	Events   []EventMessage    `msgpack:"events,omitempty" json:"events,omitempty"`
	Snapshot lungbird.Snapshot `msgpack:"snapshot" json:"snapshot"`
}

func newServerMessage(f runner.Frame) ServerMessage {
	msg := ServerMessage{Frame: f.Number, Snapshot: f.Snapshot}
	for _, ev := range f.Events {
		msg.Events = append(msg.Events, EventMessage{
			Kind:  ev.Kind.String(),
			Tick:  ev.Tick,
			Score: ev.Score,
		})
	}
	return msg
}
