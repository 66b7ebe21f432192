package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/wardenlock/warden/pkg/clock"
	"github.com/wardenlock/warden/pkg/types"
)

const (
	lockKeyPrefix = "warden:lock:"
	fenceKey      = "warden:fence"
)

// record value layout: owner \n fencing token \n ttl millis
// scripts compare the owner before mutating so renew and release are atomic
// against competing acquisitions

var createScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
    return 0
end
local token = redis.call("INCR", KEYS[2])
redis.call("SET", KEYS[1], ARGV[1] .. "\n" .. token .. "\n" .. ARGV[2], "PX", ARGV[2])
return token
`)

var renewScript = redis.NewScript(`
local v = redis.call("GET", KEYS[1])
if not v then
    return -1
end
local sep = string.find(v, "\n")
if string.sub(v, 1, sep - 1) ~= ARGV[1] then
    return -2
end
local rest = string.sub(v, sep + 1)
local token = string.sub(rest, 1, string.find(rest, "\n") - 1)
redis.call("SET", KEYS[1], ARGV[1] .. "\n" .. token .. "\n" .. ARGV[2], "PX", ARGV[2])
return 1
`)

var releaseScript = redis.NewScript(`
local v = redis.call("GET", KEYS[1])
if not v then
    return -1
end
if string.sub(v, 1, string.find(v, "\n") - 1) ~= ARGV[1] then
    return -2
end
redis.call("DEL", KEYS[1])
return 1
`)

// Redis implements Store on a Redis backend. Record expiry rides on native
// key TTLs, fencing tokens come from a single INCR counter so they stay
// strictly monotonic across the whole keyspace.
type Redis struct {
	client *redis.Client
	clock  *clock.Clock
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client, clock: clock.New()}
}

func (r *Redis) TryCreate(ctx context.Context, resource, owner string, ttl time.Duration) (uint64, error) {
	if ttl <= 0 {
		return 0, types.ErrInvalidTTL
	}

	res, err := createScript.Run(ctx, r.client,
		[]string{lockKeyPrefix + resource, fenceKey},
		owner, ttl.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", types.ErrUnavailable, err)
	}

	if res == 0 {
		return 0, types.ErrBusy
	}

	return uint64(res), nil
}

func (r *Redis) Renew(ctx context.Context, resource, owner string, ttl time.Duration) (time.Duration, error) {
	if ttl <= 0 {
		return 0, types.ErrInvalidTTL
	}

	res, err := renewScript.Run(ctx, r.client,
		[]string{lockKeyPrefix + resource},
		owner, ttl.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", types.ErrUnavailable, err)
	}

	switch res {
	case -1:
		return 0, types.ErrExpired
	case -2:
		return 0, types.ErrNotOwner
	}

	return ttl, nil
}

func (r *Redis) Release(ctx context.Context, resource, owner string) error {
	res, err := releaseScript.Run(ctx, r.client,
		[]string{lockKeyPrefix + resource},
		owner).Int64()
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrUnavailable, err)
	}

	if res < 0 {
		return types.ErrNotOwner
	}

	return nil
}

func (r *Redis) Get(ctx context.Context, resource string) (*types.Record, bool, error) {
	val, err := r.client.Get(ctx, lockKeyPrefix+resource).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", types.ErrUnavailable, err)
	}

	owner, token, ttl, err := parseRecordValue(val)
	if err != nil {
		return nil, false, err
	}

	remaining, err := r.client.PTTL(ctx, lockKeyPrefix+resource).Result()
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", types.ErrUnavailable, err)
	}
	if remaining < 0 {
		return nil, false, nil
	}

	return &types.Record{
		Resource:     resource,
		Owner:        owner,
		FencingToken: token,
		ExpiresAt:    r.clock.Elapsed() + remaining,
		TTL:          ttl,
	}, true, nil
}

// expiry is handled by Redis key TTLs, nothing to reclaim here
func (r *Redis) Sweep(ctx context.Context) (int, error) {
	return 0, nil
}

func (r *Redis) Stats(ctx context.Context) (Stats, error) {
	var (
		cursor  uint64
		records int
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, lockKeyPrefix+"*", 100).Result()
		if err != nil {
			return Stats{}, fmt.Errorf("%w: %v", types.ErrUnavailable, err)
		}
		records += len(keys)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	counter, err := r.client.Get(ctx, fenceKey).Uint64()
	if err != nil && err != redis.Nil {
		return Stats{}, fmt.Errorf("%w: %v", types.ErrUnavailable, err)
	}

	return Stats{Records: records, FencingCounter: counter}, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func parseRecordValue(val string) (owner string, token uint64, ttl time.Duration, err error) {
	parts := strings.SplitN(val, "\n", 3)
	if len(parts) != 3 {
		return "", 0, 0, fmt.Errorf("malformed record value %q", val)
	}
	token, err = strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("malformed fencing token in %q: %w", val, err)
	}
	ttlMillis, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("malformed ttl in %q: %w", val, err)
	}
	return parts[0], token, time.Duration(ttlMillis) * time.Millisecond, nil
}
