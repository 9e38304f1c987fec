package models

import "time"

// Client is a salon client record.
type Client struct {
	ID        string    `bson:"id" json:"id"`
	FirstName string    `bson:"first_name" json:"first_name"`
	LastName  string    `bson:"last_name" json:"last_name"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	Mobile    string    `bson:"mobile,omitempty" json:"mobile,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// ClientRef identifies the client a booking is for. When ID is empty the
// coordinator resolves or creates the record from the contact details.
type ClientRef struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Mobile    string `json:"mobile,omitempty"`
}
