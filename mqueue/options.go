package mqueue

import "time"

// StreamMethod selects how Consume positions a new subscription's cursor.
type StreamMethod string

const (
	// FromBeginning replays every entry still retained in the stream, then tails new ones.
	// Group creation uses start-id "0". Corresponds to the external `method=s` query value.
	FromBeginning StreamMethod = "s"

	// NewOnly only delivers entries appended after the subscription starts.
	// Group creation uses start-id "$". Corresponds to the external `method=n` query value.
	NewOnly StreamMethod = "n"

	// PendingFirst first redelivers this consumer's own pending (unacked) entries,
	// then falls back to new-only delivery. Corresponds to `method=p`.
	PendingFirst StreamMethod = "p"
)

// Config configures a Queue instance.
type Config struct {
	// KeyPrefix is prepended to every channel_id to form the Redis key.
	// Defaults to "mq:channel:".
	KeyPrefix string

	// MaxLen is the approximate (MAXLEN ~) cap applied on every Send.
	MaxLen int64

	// TTL is refreshed via EXPIRE on every Send. Zero disables TTL refresh.
	TTL time.Duration

	// ReadBlock is how long a single XREADGROUP blocks waiting for new entries.
	ReadBlock time.Duration

	// ReadCount bounds how many entries a single XREADGROUP call may return.
	ReadCount int64
}

// withDefaults fills zero-valued fields with the package defaults.
func (c Config) withDefaults() Config {
	if c.KeyPrefix == "" {
		c.KeyPrefix = "mq:channel:"
	}
	if c.MaxLen == 0 {
		c.MaxLen = 10_000
	}
	if c.ReadBlock == 0 {
		c.ReadBlock = 15 * time.Second
	}
	if c.ReadCount == 0 {
		c.ReadCount = 10
	}
	return c
}

// ConsumeOptions configures one Consume/ConsumeWithDisconnectCheck call.
type ConsumeOptions struct {
	// GroupID determines fan-out semantics: consumers sharing a GroupID
	// distribute the stream; consumers in distinct groups each see it in full.
	// For true broadcast, callers MUST supply a unique GroupID per subscription
	// (e.g. "<prefix>-<consumer_id>").
	GroupID string

	// StreamMethod selects the replay/new-only/pending-first behavior.
	StreamMethod StreamMethod

	// BlockMs overrides Config.ReadBlock for this call, if non-zero.
	BlockMs time.Duration

	// AutoAck, when true, XACKs every yielded entry immediately after delivery.
	AutoAck bool
}

// withDefaults fills zero-valued fields with sane per-call defaults.
func (o ConsumeOptions) withDefaults(cfg Config) ConsumeOptions {
	if o.StreamMethod == "" {
		o.StreamMethod = NewOnly
	}
	if o.BlockMs == 0 {
		o.BlockMs = cfg.ReadBlock
	}
	return o
}
