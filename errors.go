package hidepng

import "errors"

var (
	ErrInvalidSize         = errors.New("hidepng: invalid size")
	ErrInputTooSmall       = errors.New("hidepng: input too small")
	ErrInvalidCharacterSet = errors.New("hidepng: chunk type not within valid ASCII set")
	ErrInvalidReservedBit  = errors.New("hidepng: reserved bit in chunk type should be 0")
	ErrCrcMismatch         = errors.New("hidepng: crc mismatch")
	ErrChunkTypeNotFound   = errors.New("hidepng: chunk type not found")
	ErrInvalidPngSignature = errors.New("hidepng: invalid png signature")
	ErrInvalidText         = errors.New("hidepng: chunk data is not valid UTF-8")
	ErrInvalidPayload      = errors.New("hidepng: invalid payload")
	ErrLimitExceeded       = errors.New("hidepng: limit exceeded")
)
