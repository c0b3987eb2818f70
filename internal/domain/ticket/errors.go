package ticket

import "errors"

var (
	ErrAlreadyClaimed = errors.New("ticket already claimed")
	ErrAlreadyClosed  = errors.New("ticket already closed")
	// ErrNumberTaken is returned by Repository.Create when another ticket in
	// the guild already holds the number.
	ErrNumberTaken = errors.New("ticket number already taken")
)
