package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrUnknownTab    = goerr.New("unknown tab")
	ErrMonthNotFound = goerr.New("month not found")
	ErrUnknownModel  = goerr.New("unknown model")
)
