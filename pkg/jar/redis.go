package jar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "cookiejar"

// RedisStore keeps records in a single Redis hash. The hash field is the
// record key and the value is the JSON-encoded record.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisKey sets the hash key. Default: "cookiejar".
func WithRedisKey(key string) RedisOption {
	return func(s *RedisStore) {
		if key != "" {
			s.key = key
		}
	}
}

// NewRedisStore creates a store over client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		key:    defaultRedisKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type redisRecord struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Domain  string `json:"domain,omitempty"`
	Path    string `json:"path,omitempty"`
	Expires int64  `json:"expires,omitempty"`
	Created int64  `json:"created"`
	Secure  bool   `json:"secure,omitempty"`
}

func (s *RedisStore) Load(ctx context.Context) ([]Record, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("jar: hgetall %s: %w", s.key, err)
	}

	records := make([]Record, 0, len(fields))
	for field, raw := range fields {
		r, err := decodeRedisRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("jar: decode field %q: %w", field, err)
		}
		records = append(records, r)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Created.Equal(records[j].Created) {
			return records[i].Name < records[j].Name
		}
		return records[i].Created.Before(records[j].Created)
	})
	return records, nil
}

func (s *RedisStore) Save(ctx context.Context, rec Record) error {
	field := redisField(rec.Key())

	prev, err := s.client.HGet(ctx, s.key, field).Result()
	switch {
	case err == nil:
		if old, err := decodeRedisRecord(prev); err == nil {
			rec.Created = old.Created
		}
	case !errors.Is(err, redis.Nil):
		return fmt.Errorf("jar: hget %s: %w", s.key, err)
	}

	raw, err := json.Marshal(redisRecord{
		Name:    rec.Name,
		Value:   rec.Value,
		Domain:  rec.Domain,
		Path:    rec.Path,
		Expires: unixOrZero(rec.Expires),
		Created: rec.Created.UnixNano(),
		Secure:  rec.Secure,
	})
	if err != nil {
		return fmt.Errorf("jar: encode %q: %w", rec.Name, err)
	}

	if err := s.client.HSet(ctx, s.key, field, raw).Err(); err != nil {
		return fmt.Errorf("jar: hset %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key Key) error {
	if err := s.client.HDel(ctx, s.key, redisField(key)).Err(); err != nil {
		return fmt.Errorf("jar: hdel %s: %w", s.key, err)
	}
	return nil
}

func redisField(k Key) string {
	return strings.Join([]string{k.Name, k.Domain, k.Path}, "\x00")
}

func decodeRedisRecord(raw string) (Record, error) {
	var rr redisRecord
	if err := json.Unmarshal([]byte(raw), &rr); err != nil {
		return Record{}, err
	}

	r := Record{
		Name:    rr.Name,
		Value:   rr.Value,
		Domain:  rr.Domain,
		Path:    rr.Path,
		Secure:  rr.Secure,
		Created: time.Unix(0, rr.Created),
	}
	if rr.Expires > 0 {
		r.Expires = time.Unix(rr.Expires, 0)
	}
	return r, nil
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

var _ Store = (*RedisStore)(nil)
