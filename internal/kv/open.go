package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Options struct {
	Driver string

	SQLitePath string
	Postgres   Credentials

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	TTL           time.Duration

	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Open connects the backend named by opts.Driver and prepares its schema.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return NewRedisStore(client, opts.RedisPrefix, opts.TTL), nil
	case "sqlite":
		s, err := OpenSQLite(opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := s.RunMigrations(); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	case "postgres":
		cred := opts.Postgres
		s, err := OpenPostgres(&cred)
		if err != nil {
			return nil, err
		}
		if err := s.RunMigrations(); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	case "mongo":
		return ConnectMongo(ctx, opts.MongoURI, opts.MongoDatabase, opts.MongoCollection)
	}
	return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
}
