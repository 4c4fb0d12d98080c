package sse

import "errors"

// ErrNoFlusher is returned when the ResponseWriter does not implement http.Flusher.
var ErrNoFlusher = errors.New("response writer does not implement http.Flusher")
