// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package database manages the SurrealDB connection lifecycle.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/surrealcbor"
)

// Options configures the database connection.
type Options struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
}

// Client owns a single shared SurrealDB connection. Connect is idempotent so
// independent startup paths can all call it without racing a second dial.
type Client struct {
	mu        sync.Mutex
	opts      Options
	db        *surrealdb.DB
	connected bool
	logger    *slog.Logger
}

// NewClient creates an unconnected client. Call Connect before use.
func NewClient(opts Options, logger *slog.Logger) *Client {
	return &Client{opts: opts, logger: logger}
}

// Connect dials the database, authenticates, and selects the configured
// namespace and database. Calling it again on a connected client is a no-op.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}

	u, err := url.Parse(c.opts.URL)
	if err != nil {
		return fmt.Errorf("parse database url: %w", err)
	}

	conf := connection.NewConfig(u)

	// The surrealcbor codec is required for time.Time and RecordID values
	// to round-trip correctly over the wire.
	codec := surrealcbor.New()
	conf.Marshaler = codec
	conf.Unmarshaler = codec

	db, err := surrealdb.FromConnection(ctx, gorillaws.New(conf))
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	if c.opts.Username != "" {
		if _, err := db.SignIn(ctx, map[string]any{
			"user": c.opts.Username,
			"pass": c.opts.Password,
		}); err != nil {
			closeErr := db.Close(ctx)
			if closeErr != nil {
				c.logger.Warn("closing failed connection", "error", closeErr)
			}
			return fmt.Errorf("sign in to database: %w", err)
		}
	}

	if err := db.Use(ctx, c.opts.Namespace, c.opts.Database); err != nil {
		closeErr := db.Close(ctx)
		if closeErr != nil {
			c.logger.Warn("closing failed connection", "error", closeErr)
		}
		return fmt.Errorf("select namespace %q database %q: %w", c.opts.Namespace, c.opts.Database, err)
	}

	c.db = db
	c.connected = true
	c.logger.Info("database connected", "namespace", c.opts.Namespace, "database", c.opts.Database)
	return nil
}

// DB returns the underlying connection. Panics if Connect was never called;
// that is a programming error, not a runtime condition.
func (c *Client) DB() *surrealdb.DB {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		panic("database: DB called before Connect")
	}
	return c.db
}

// EnsureIndexes creates the unique indexes the application relies on for
// duplicate detection. Statements are idempotent.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	statements := []string{
		"DEFINE INDEX IF NOT EXISTS user_username ON TABLE user COLUMNS username UNIQUE",
		"DEFINE INDEX IF NOT EXISTS user_email ON TABLE user COLUMNS email UNIQUE",
		"DEFINE INDEX IF NOT EXISTS post_slug ON TABLE post COLUMNS slug UNIQUE",
		"DEFINE INDEX IF NOT EXISTS category_slug ON TABLE category COLUMNS slug UNIQUE",
	}
	for _, stmt := range statements {
		if _, err := surrealdb.Query[any](ctx, c.DB(), stmt, nil); err != nil {
			return fmt.Errorf("define index: %w", err)
		}
	}
	return nil
}

// Close tears down the connection. Safe to call on an unconnected client.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}
	c.connected = false
	if err := c.db.Close(ctx); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
