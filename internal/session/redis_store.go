package session

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "auth:"

// RedisStore keeps sessions in redis so a multi-instance deployment shares
// login state. Entries live forever, like the file store; token expiry is
// the backend's concern, not ours.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

func (rs *RedisStore) Get(ctx context.Context, sid string) (Session, error) {
	raw, err := rs.rdb.Get(ctx, redisKeyPrefix+sid).Bytes()
	if err == redis.Nil {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, errors.Wrap(err, "redis get session")
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, errors.Wrap(err, "decode session")
	}
	return sess, nil
}

func (rs *RedisStore) Set(ctx context.Context, sid string, sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "encode session")
	}
	if err := rs.rdb.Set(ctx, redisKeyPrefix+sid, raw, 0).Err(); err != nil {
		return errors.Wrap(err, "redis set session")
	}
	return nil
}

func (rs *RedisStore) Clear(ctx context.Context, sid string) error {
	sess, err := rs.Get(ctx, sid)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	sess.Token = ""
	return rs.Set(ctx, sid, sess)
}
