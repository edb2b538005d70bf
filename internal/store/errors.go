package store

import "errors"

var (
	ErrSlotTaken   = errors.New("slot already booked")
	ErrUnavailable = errors.New("storage unavailable")
)
