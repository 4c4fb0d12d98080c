package mqueue

import "errors"

var (
	// ErrChannelEmpty is returned when a channel_id argument is empty.
	ErrChannelEmpty = errors.New("mqueue: channel id cannot be empty")

	// ErrGroupEmpty is returned when a group_id argument is empty.
	ErrGroupEmpty = errors.New("mqueue: group id cannot be empty")

	// ErrConsumerEmpty is returned when a consumer_id argument is empty.
	ErrConsumerEmpty = errors.New("mqueue: consumer id cannot be empty")

	// ErrUnavailable is returned when the backing Redis connection cannot be reached.
	ErrUnavailable = errors.New("mqueue: redis unavailable")

	// ErrEncode is returned when a payload cannot be JSON-encoded.
	ErrEncode = errors.New("mqueue: failed to encode payload")

	// ErrDecode is returned when a stored payload cannot be JSON-decoded.
	ErrDecode = errors.New("mqueue: failed to decode payload")

	// ErrClosed is returned when Consume is called after the queue has been closed.
	ErrClosed = errors.New("mqueue: queue is closed")
)
