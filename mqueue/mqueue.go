// Package mqueue implements a thin, typed abstraction over Redis Streams
// providing per-channel pub/sub with consumer groups, replay-from-beginning,
// at-least-once delivery, and disconnect-aware consumption.
//
// Broadcast semantics (critical): to give each subscriber the entire stream
// from the beginning, each subscriber MUST use a unique GroupID. Consumers
// sharing a GroupID instead partition the stream across themselves.
package mqueue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const payloadField = "payload"

// Entry is one decoded stream entry.
type Entry struct {
	ID   string
	Data map[string]any
}

// Queue is a Redis-Streams-backed channel abstraction.
type Queue struct {
	client redis.UniversalClient
	cfg    Config
	log    *slog.Logger
}

// Option configures a Queue at construction time.
type Option func(*Queue)

// WithLogger sets the logger used for backoff/retry diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(q *Queue) {
		if l != nil {
			q.log = l
		}
	}
}

// New creates a Queue over the given Redis client.
func New(client redis.UniversalClient, cfg Config, opts ...Option) *Queue {
	q := &Queue{
		client: client,
		cfg:    cfg.withDefaults(),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// key returns the Redis key backing a channel_id.
func (q *Queue) key(channelID string) string {
	return q.cfg.KeyPrefix + channelID
}

func encodePayload(obj any) (map[string]any, error) {
	b, err := json.Marshal(obj)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	return map[string]any{payloadField: string(b)}, nil
}

func decodePayload(values map[string]any) (map[string]any, error) {
	raw, ok := values[payloadField]
	if !ok {
		return nil, ErrDecode
	}
	s, ok := raw.(string)
	if !ok {
		return nil, ErrDecode
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, errors.Join(ErrDecode, err)
	}
	return obj, nil
}

// EnsureGroup creates the consumer group if it does not already exist.
// startID is "0" to replay the whole stream or "$" to only deliver entries
// appended after this call. Idempotent: BUSYGROUP errors are swallowed.
func (q *Queue) EnsureGroup(ctx context.Context, channelID, groupID, startID string) error {
	if channelID == "" {
		return ErrChannelEmpty
	}
	if groupID == "" {
		return ErrGroupEmpty
	}

	err := q.client.XGroupCreateMkStream(ctx, q.key(channelID), groupID, startID).Err()
	if err != nil && !isBusyGroup(err) {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

func isBusyGroup(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP")
}

// Send appends a JSON-encoded entry to channel_id, applying the approximate
// MAXLEN cap and refreshing the channel TTL. Returns the assigned entry_id.
func (q *Queue) Send(ctx context.Context, channelID string, obj any) (string, error) {
	if channelID == "" {
		return "", ErrChannelEmpty
	}

	values, err := encodePayload(obj)
	if err != nil {
		return "", err
	}

	id, err := q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.key(channelID),
		MaxLen: q.cfg.MaxLen,
		Approx: true,
		Values: values,
	}).Result()
	if err != nil {
		return "", errors.Join(ErrUnavailable, err)
	}

	if q.cfg.TTL > 0 {
		// Best-effort: a failed EXPIRE refresh does not lose data, it only
		// risks the channel outliving its configured TTL slightly.
		if err := q.client.Expire(ctx, q.key(channelID), q.cfg.TTL).Err(); err != nil {
			q.log.WarnContext(ctx, "mqueue: failed to refresh channel ttl", "channel", channelID, "error", err)
		}
	}

	return id, nil
}

// Broadcast is a convenience wrapper storing {type: eventType, payload: payload}.
func (q *Queue) Broadcast(ctx context.Context, channelID, eventType string, payload any) (string, error) {
	return q.Send(ctx, channelID, map[string]any{
		"type":    eventType,
		"payload": payload,
	})
}

// Length returns the number of entries currently retained in the channel.
func (q *Queue) Length(ctx context.Context, channelID string) (int64, error) {
	n, err := q.client.XLen(ctx, q.key(channelID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, errors.Join(ErrUnavailable, err)
	}
	return n, nil
}

// Trim applies an approximate MAXLEN trim immediately.
func (q *Queue) Trim(ctx context.Context, channelID string, maxLen int64) error {
	if err := q.client.XTrimMaxLenApprox(ctx, q.key(channelID), maxLen, 0).Err(); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

// Expire refreshes the channel's TTL.
func (q *Queue) Expire(ctx context.Context, channelID string, ttl time.Duration) error {
	if err := q.client.Expire(ctx, q.key(channelID), ttl).Err(); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

// Delete removes the channel entirely.
func (q *Queue) Delete(ctx context.Context, channelID string) (bool, error) {
	n, err := q.client.Del(ctx, q.key(channelID)).Result()
	if err != nil {
		return false, errors.Join(ErrUnavailable, err)
	}
	return n > 0, nil
}

// DeleteConsumer removes a consumer from a group, e.g. on SSE disconnect.
func (q *Queue) DeleteConsumer(ctx context.Context, channelID, groupID, consumerID string) error {
	if err := q.client.XGroupDelConsumer(ctx, q.key(channelID), groupID, consumerID).Err(); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

// Info reports XINFO STREAM for the channel.
func (q *Queue) Info(ctx context.Context, channelID string) (map[string]any, error) {
	info, err := q.client.XInfoStream(ctx, q.key(channelID)).Result()
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	return map[string]any{
		"length":           info.Length,
		"last_generated_id": info.LastGeneratedID,
		"first_entry_id":   firstEntryID(info),
		"max_deleted_id":   info.MaxDeletedEntryID,
	}, nil
}

func firstEntryID(info *redis.XInfoStream) string {
	if info.FirstEntry.ID != "" {
		return info.FirstEntry.ID
	}
	return ""
}

// GroupInfo reports XINFO GROUPS for the channel.
func (q *Queue) GroupInfo(ctx context.Context, channelID string) ([]redis.XInfoGroup, error) {
	groups, err := q.client.XInfoGroups(ctx, q.key(channelID)).Result()
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	return groups, nil
}

// ConsumersInfo reports XINFO CONSUMERS for one group of the channel.
func (q *Queue) ConsumersInfo(ctx context.Context, channelID, groupID string) ([]redis.XInfoConsumer, error) {
	consumers, err := q.client.XInfoConsumers(ctx, q.key(channelID), groupID).Result()
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	return consumers, nil
}

// PendingCount returns the number of not-yet-acked entries for a group.
func (q *Queue) PendingCount(ctx context.Context, channelID, groupID string) (int64, error) {
	summary, err := q.client.XPending(ctx, q.key(channelID), groupID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, errors.Join(ErrUnavailable, err)
	}
	return summary.Count, nil
}

// ClaimPending reclaims entries idle for at least minIdle in groupID and
// reassigns them to consumerID, for recovering work left behind by a
// consumer that crashed or stalled mid-processing. Built on XAUTOCLAIM, the
// idiomatic successor to XCLAIM + XPENDING scanning.
func (q *Queue) ClaimPending(ctx context.Context, channelID, groupID, consumerID string, minIdle time.Duration) ([]Entry, error) {
	if channelID == "" {
		return nil, ErrChannelEmpty
	}
	if groupID == "" {
		return nil, ErrGroupEmpty
	}
	if consumerID == "" {
		return nil, ErrConsumerEmpty
	}

	msgs, _, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   q.key(channelID),
		Group:    groupID,
		Consumer: consumerID,
		MinIdle:  minIdle,
		Start:    "0-0",
		Count:    100,
	}).Result()
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}

	entries := make([]Entry, 0, len(msgs))
	for _, m := range msgs {
		data, err := decodePayload(m.Values)
		if err != nil {
			q.log.WarnContext(ctx, "mqueue: dropping unparseable claimed entry", "channel", channelID, "entry_id", m.ID, "error", err)
			continue
		}
		entries = append(entries, Entry{ID: m.ID, Data: data})
	}
	return entries, nil
}

// Consume opens (or creates) the configured group and yields entries to fn
// until the context is cancelled or fn returns a terminal error. Each
// yielded entry is acked immediately when opts.AutoAck is set. On return,
// the consumer is removed from the group.
func (q *Queue) Consume(ctx context.Context, channelID, consumerID string, opts ConsumeOptions, fn func(Entry) error) error {
	return q.ConsumeWithDisconnectCheck(ctx, channelID, consumerID, opts, func() bool { return false }, fn)
}

// ConsumeWithDisconnectCheck is like Consume, but before every read
// iteration it invokes isDisconnected(); if true, it terminates cleanly
// without treating it as an error.
func (q *Queue) ConsumeWithDisconnectCheck(
	ctx context.Context,
	channelID, consumerID string,
	opts ConsumeOptions,
	isDisconnected func() bool,
	fn func(Entry) error,
) error {
	if channelID == "" {
		return ErrChannelEmpty
	}
	if consumerID == "" {
		return ErrConsumerEmpty
	}
	opts = opts.withDefaults(q.cfg)
	if opts.GroupID == "" {
		return ErrGroupEmpty
	}

	startID := "$"
	if opts.StreamMethod == FromBeginning || opts.StreamMethod == PendingFirst {
		startID = "0"
	}
	if err := q.EnsureGroup(ctx, channelID, opts.GroupID, startID); err != nil {
		return err
	}
	defer func() {
		// Best-effort: stale consumer metadata only causes bounded growth.
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = q.DeleteConsumer(cleanupCtx, channelID, opts.GroupID, consumerID)
	}()

	drainingPending := opts.StreamMethod == PendingFirst

	for {
		if isDisconnected() {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		readID := ">"
		if drainingPending {
			readID = "0"
		}

		streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    opts.GroupID,
			Consumer: consumerID,
			Streams:  []string{q.key(channelID), readID},
			Count:    q.cfg.ReadCount,
			Block:    opts.BlockMs,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// No entries ready within the block window; re-poll so the
				// caller's disconnect predicate and keepalive get a chance to run.
				if drainingPending {
					drainingPending = false
				}
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			q.log.WarnContext(ctx, "mqueue: read error, backing off", "channel", channelID, "error", err)
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return nil
			}
			continue
		}

		delivered := 0
		for _, stream := range streams {
			for _, msg := range stream.Messages {
				delivered++
				data, decErr := decodePayload(msg.Values)
				if decErr != nil {
					q.log.WarnContext(ctx, "mqueue: dropping unparseable entry", "channel", channelID, "entry_id", msg.ID, "error", decErr)
					continue
				}

				if err := fn(Entry{ID: msg.ID, Data: data}); err != nil {
					return err
				}

				if opts.AutoAck {
					if ackErr := q.client.XAck(ctx, q.key(channelID), opts.GroupID, msg.ID).Err(); ackErr != nil {
						q.log.WarnContext(ctx, "mqueue: ack failed", "channel", channelID, "entry_id", msg.ID, "error", ackErr)
					}
				}
			}
		}

		if drainingPending && delivered == 0 {
			// Pending list exhausted; fall through to new-only delivery.
			drainingPending = false
		}
	}
}

// EntryTimestamp extracts the millisecond timestamp embedded in an entry_id
// of the form "<millis>-<seq>".
func EntryTimestamp(entryID string) int64 {
	idx := strings.IndexByte(entryID, '-')
	if idx < 0 {
		return 0
	}
	ms, err := strconv.ParseInt(entryID[:idx], 10, 64)
	if err != nil {
		return 0
	}
	return ms
}

// SSEEvent is the module-level helper mirroring the source's `sse_event`
// convenience: it wraps obj into the envelope the SSE adapter emits.
func SSEEvent(entryID, channelID string, obj map[string]any) map[string]any {
	typ := "data"
	if t, _ := obj["type"].(string); t == "done" {
		typ = "done"
	}
	return map[string]any{
		"id":      entryID,
		"type":    typ,
		"data":    obj,
		"ts":      EntryTimestamp(entryID),
		"channel": channelID,
	}
}
