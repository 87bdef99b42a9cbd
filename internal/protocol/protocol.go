// Package protocol defines the request and reply messages exchanged between
// the client and the query workers.
package protocol

import (
	"github.com/msto63/wishbrick/internal/wishlist"
)

// Command selects the operation a worker performs.
type Command string

const (
	SortLowToHigh Command = "sort_low_to_high"
	SortHighToLow Command = "sort_high_to_low"

	FilterByAge    Command = "filter_by_age"
	FilterByPieces Command = "filter_by_pieces"

	SearchByNumber Command = "search_by_number"
	SearchByName   Command = "search_by_name"

	TotalNumberOfSets Command = "total_number_of_sets"
	TotalCostOfSets   Command = "total_cost_of_sets"
	TotalPiecesOfSets Command = "total_pieces_of_sets"
)

// Reply statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// InvalidCommandMessage is the error message for an unrecognized command.
const InvalidCommandMessage = "Invalid command"

// Request is sent by the client. Only the fields its command needs are set.
type Request struct {
	Command   Command             `json:"command"`
	Wishlist  wishlist.Collection `json:"wishlist,omitempty"`
	MinAge    *int                `json:"min_age,omitempty"`
	MinPieces *int                `json:"min_pieces,omitempty"`
	SetNumber string              `json:"set_number,omitempty"`
	SetName   string              `json:"set_name,omitempty"`
}

// Reply is returned by a worker. Status is always set; the payload
// fields depend on the command.
type Reply struct {
	Status      string               `json:"status"`
	Message     string               `json:"message,omitempty"`
	Wishlist    *wishlist.Collection `json:"wishlist,omitempty"`
	TotalSets   *int                 `json:"total_sets,omitempty"`
	TotalCost   *float64             `json:"total_cost,omitempty"`
	TotalPieces *int                 `json:"total_pieces,omitempty"`
	Result      string               `json:"result,omitempty"`
}

// Success returns an empty success reply.
func Success() *Reply {
	return &Reply{Status: StatusSuccess}
}

// Error returns an error reply carrying message.
func Error(message string) *Reply {
	return &Reply{Status: StatusError, Message: message}
}

// WithWishlist sets the wishlist payload.
func (r *Reply) WithWishlist(c wishlist.Collection) *Reply {
	if c == nil {
		c = wishlist.Collection{}
	}
	r.Wishlist = &c
	return r
}

// OK reports whether the worker succeeded.
func (r *Reply) OK() bool {
	return r.Status == StatusSuccess
}

// Collection returns the wishlist payload, empty when absent.
func (r *Reply) Collection() wishlist.Collection {
	if r.Wishlist == nil {
		return wishlist.Collection{}
	}
	return *r.Wishlist
}

// Int returns a pointer to n, for the optional numeric fields.
func Int(n int) *int {
	return &n
}
