// Package pgnotify relays channel notifications through PostgreSQL NOTIFY so that services
// sharing the database can LISTEN without a broker.
package pgnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dispatch/internal/core/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// maxPayloadBytes is the NOTIFY payload limit of a default PostgreSQL build.
const maxPayloadBytes = 8000

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Envelope is the NOTIFY payload.
type Envelope struct {
	Channel      string             `json:"channel"`
	Notification ports.Notification `json:"notification"`
}

type Publisher struct {
	db            execer
	notifyChannel string
}

func NewPublisher(db execer, notifyChannel string) *Publisher {
	return &Publisher{db: db, notifyChannel: notifyChannel}
}

func (p *Publisher) Publish(ctx context.Context, channel string, n ports.Notification) error {
	body, err := json.Marshal(Envelope{Channel: channel, Notification: n})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if len(body) > maxPayloadBytes {
		return fmt.Errorf("notification for %s is %d bytes, NOTIFY allows %d", channel, len(body), maxPayloadBytes)
	}

	if _, err := p.db.Exec(ctx, "SELECT pg_notify($1, $2)", p.notifyChannel, string(body)); err != nil {
		return fmt.Errorf("pg_notify %s: %w", p.notifyChannel, err)
	}
	return nil
}

// NewPool opens a small pgx pool for NOTIFY traffic and verifies it with a ping.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	cfg.MaxConns = 4
	cfg.MinConns = 1
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}
