package entity

import "time"

type Role string

const (
	RoleUser    Role = "user"
	RolePersona Role = "persona"
)

// ConversationTurn is one entry of a session's append-only history.
type ConversationTurn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
