package models

import "time"

// AuditEntry is a best-effort record of a booking action. Delivery failures
// never propagate to the booking outcome.
type AuditEntry struct {
	Action   string      `bson:"action" json:"action"`
	GroupID  string      `bson:"group_id,omitempty" json:"group_id,omitempty"`
	ActorRef string      `bson:"actor_ref,omitempty" json:"actor_ref,omitempty"`
	Before   interface{} `bson:"before,omitempty" json:"before,omitempty"`
	After    interface{} `bson:"after,omitempty" json:"after,omitempty"`
	Reason   string      `bson:"reason,omitempty" json:"reason,omitempty"`
	At       time.Time   `bson:"at" json:"at"`
}
