package token

import (
	"encoding/json"
	"fmt"

	"github.com/tos-network/tokencore/common"
)

// ActionKind identifies the type of a recorded transfer action.
type ActionKind string

const (
	// ActionMaspSectionRef records that the transaction referenced a shielded
	// section.
	ActionMaspSectionRef ActionKind = "MASP_SECTION_REF"

	// ActionMaspAuthorizer records that an account authorized a shielded
	// movement backed by a transparent debit.
	ActionMaspAuthorizer ActionKind = "MASP_AUTHORIZER"
)

// Action is one entry of the transaction's write-log. Validity predicates
// replay the log after execution to learn what kind of transfer happened and
// who authorized it. The section-reference action for a shielded transfer is
// always pushed before its authorizer actions.
type Action struct {
	Kind       ActionKind     `json:"kind"`
	Section    common.Hash    `json:"section"`
	Authorizer common.Address `json:"authorizer"`
}

// MaspSectionRefAction builds the action recording a shielded section
// reference.
func MaspSectionRefAction(section common.Hash) Action {
	return Action{Kind: ActionMaspSectionRef, Section: section}
}

// MaspAuthorizerAction builds the action recording a shielded-movement
// authorizer.
func MaspAuthorizerAction(authorizer common.Address) Action {
	return Action{Kind: ActionMaspAuthorizer, Authorizer: authorizer}
}

// EncodeAction serializes an action for the persisted write-log.
func EncodeAction(a Action) ([]byte, error) {
	return json.Marshal(a)
}

// DecodeAction parses a persisted write-log entry.
func DecodeAction(raw []byte) (Action, error) {
	var a Action
	if err := json.Unmarshal(raw, &a); err != nil {
		return Action{}, fmt.Errorf("decode action: %w", err)
	}
	switch a.Kind {
	case ActionMaspSectionRef, ActionMaspAuthorizer:
		return a, nil
	}
	return Action{}, fmt.Errorf("unknown action kind: %q", a.Kind)
}
