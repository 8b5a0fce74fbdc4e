package server

import (
	"encoding/json"
	"fmt"

	"nlhe-lite/handlog"
	"nlhe-lite/storage"
)

// Client command types.
const (
	CmdAuth     = "auth"
	CmdNewHand  = "new_hand"
	CmdAction   = "action"
	CmdDraw     = "draw"
	CmdShowdown = "showdown"
	CmdState    = "state"
	CmdUndo     = "undo"
	CmdSave     = "save"
	CmdLoad     = "load"
	CmdList     = "list"
	CmdDelete   = "delete"
	CmdValidate = "validate"
)

// Server event types.
const (
	EvtWelcome  = "welcome"
	EvtSession  = "session"
	EvtSnapshot = "snapshot"
	EvtState    = "state"
	EvtSaved    = "saved"
	EvtHandList = "hand_list"
	EvtDeleted  = "deleted"
	EvtValidate = "validation"
	EvtError    = "error"
)

// ClientEnvelope is one websocket command from a visualizer or AI client.
type ClientEnvelope struct {
	Type  string `json:"type"`
	Token string `json:"token,omitempty"`

	// auth
	Password string `json:"password,omitempty"`

	// new_hand
	Hand *handlog.HandRecord `json:"hand,omitempty"`
	Seed *int64              `json:"seed,omitempty"`

	// action
	Action *handlog.ActionRecord `json:"action,omitempty"`

	// showdown
	Stacks []int64 `json:"stacks,omitempty"`

	// load / delete
	HandID string `json:"hand_id,omitempty"`
}

// ServerEnvelope is one websocket event. Snapshot carries the full record,
// State carries the legality view at the current position.
type ServerEnvelope struct {
	Type string `json:"type"`
	Seq  uint64 `json:"seq"`
	TsMs int64  `json:"ts_ms"`

	Token      string                    `json:"token,omitempty"`
	Snapshot   *handlog.HandRecord       `json:"snapshot,omitempty"`
	State      *handlog.ValidationEntry  `json:"state,omitempty"`
	HandID     string                    `json:"hand_id,omitempty"`
	Hands      []storage.HandSummary     `json:"hands,omitempty"`
	Validation *handlog.ValidationRecord `json:"validation,omitempty"`

	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func decodeCommand(data []byte) (*ClientEnvelope, error) {
	var cmd ClientEnvelope
	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil, fmt.Errorf("invalid message format")
	}
	if cmd.Type == "" {
		return nil, fmt.Errorf("missing command type")
	}
	return &cmd, nil
}

func (e *ServerEnvelope) encode() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		// Envelope fields are all marshalable types.
		panic(err)
	}
	return data
}
