package launch

import "errors"

var (
	ErrLaunch       = errors.New("launch failed")
	ErrExitedEarly  = errors.New("entry point exited before becoming ready")
	ErrStartTimeout = errors.New("listener did not come up in time")
)
