package common

import "fmt"

var (
	ErrInputUnreadable   = fmt.Errorf("input is not valid release JSON")
	ErrNoFeedsConfigured = fmt.Errorf("no feeds configured")
)
