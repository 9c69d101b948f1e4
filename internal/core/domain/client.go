package domain

import (
	"errors"
	"time"
)

var (
	ErrClientNotFound     = errors.New("client not found")
	ErrInvalidSpreadsheet = errors.New("invalid spreadsheet")
)

// Client is a customer site that service reports are filed against.
type Client struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Address   string    `json:"address" bson:"address"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
