package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const (
	IdempotencyHeader    = "Idempotency-Key"
	IdempotencyHitHeader = "X-Idempotency-Hit"

	// LockTimeout releases a key whose request never finished.
	LockTimeout = 10 * time.Second

	cacheKeyPrefix = "koso:idempotency:"
	lockKeyPrefix  = "koso:lock:"
)

// IdempotencyStore caches responses of keyed requests.
type IdempotencyStore interface {
	// Get returns the cached response and whether one exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Lock claims key for one in-flight request.
	Lock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
	Save(ctx context.Context, key, value string, ttl time.Duration) error
}

// cachedResponse is what Save stores for a completed request.
type cachedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// RedisStore keeps idempotency state in Redis.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	body, err := s.rdb.Get(ctx, cacheKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return body, true, nil
}

func (s *RedisStore) Lock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, lockKeyPrefix+key, "processing", ttl).Result()
}

func (s *RedisStore) Unlock(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, lockKeyPrefix+key).Err()
}

func (s *RedisStore) Save(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, cacheKeyPrefix+key, value, ttl).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// responseRecorder captures the status and body so a successful response
// can be cached.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (rw *responseRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseRecorder) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}

// Idempotency replays the cached 2xx response of a request whose
// Idempotency-Key was already processed. A duplicate that arrives while the
// first is still running gets 409. Requests without the header pass through.
func Idempotency(store IdempotencyStore, ttl time.Duration, log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			key = r.Method + ":" + r.URL.Path + ":" + key
			ctx := r.Context()

			cached, ok, err := store.Get(ctx, key)
			if err != nil {
				log.WithError(err).Error("idempotency lookup failed")
				WriteError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			if ok {
				var resp cachedResponse
				if err := json.Unmarshal([]byte(cached), &resp); err != nil {
					log.WithError(err).WithField("key", key).Error("corrupt idempotency entry")
					WriteError(w, http.StatusInternalServerError, "internal server error")
					return
				}
				log.WithField("key", key).Debug("idempotency cache hit")
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set(IdempotencyHitHeader, "true")
				w.WriteHeader(resp.Status)
				_, _ = w.Write([]byte(resp.Body))
				return
			}

			acquired, err := store.Lock(ctx, key, LockTimeout)
			if err != nil {
				log.WithError(err).Error("idempotency lock failed")
				WriteError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			if !acquired {
				WriteError(w, http.StatusConflict, "a request with this idempotency key is currently being processed")
				return
			}
			defer func() {
				if err := store.Unlock(context.Background(), key); err != nil {
					log.WithError(err).Warn("failed to release idempotency lock")
				}
			}()

			rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.statusCode < 200 || rec.statusCode >= 300 {
				return
			}
			value, err := json.Marshal(cachedResponse{Status: rec.statusCode, Body: rec.body.String()})
			if err != nil {
				log.WithError(err).Warn("failed to encode idempotent response")
				return
			}
			if err := store.Save(context.Background(), key, string(value), ttl); err != nil {
				log.WithError(err).Warn("failed to cache idempotent response")
			}
		})
	}
}
