package service

import "errors"

var (
	ErrInvalidBatchSize = errors.New("batch size must be at least 1")
	ErrTokenAcquisition = errors.New("unable to acquire batch token")
)
