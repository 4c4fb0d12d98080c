package collector

import "errors"

// ErrUnsupportedAgent is returned by Get for an agent id with no registered collector.
var ErrUnsupportedAgent = errors.New("collector: unsupported agent id")
