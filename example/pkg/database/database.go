package database

//go:generate go tool surqlgen --root ../.. generate db

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	surrealdb "github.com/surrealdb/surrealdb.go"

	"github.com/kalbasit/surqlgen/example/pkg/database/db/crud"
	"github.com/kalbasit/surqlgen/example/pkg/database/db/queries"
)

// ErrUnsupportedScheme is returned when the database URL scheme is not recognized.
var ErrUnsupportedScheme = errors.New("unsupported database url scheme")

// Open connects to SurrealDB and selects the namespace and database.
// URL schemes: ws://, wss://, http://, https://, e.g.
// ws://root:root@localhost:8000/blog/blog selects namespace blog and database blog.
func Open(ctx context.Context, dbURL string) (*surrealdb.DB, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}

	switch u.Scheme {
	case "ws", "wss", "http", "https":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}

	ns, name, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")

	endpoint := url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/rpc"}

	db, err := surrealdb.FromEndpointURLString(ctx, endpoint.String())
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", endpoint.Host, err)
	}

	if u.User != nil {
		password, _ := u.User.Password()

		if _, err := db.SignIn(ctx, &surrealdb.Auth{Username: u.User.Username(), Password: password}); err != nil {
			return nil, fmt.Errorf("signing in: %w", err)
		}
	}

	if ns != "" && name != "" {
		if err := db.Use(ctx, ns, name); err != nil {
			return nil, fmt.Errorf("selecting %s/%s: %w", ns, name, err)
		}
	}

	return db, nil
}

// IsNotFoundError checks if the error indicates a record was not found.
func IsNotFoundError(err error) bool {
	return errors.Is(err, crud.ErrNotFound)
}

// IsNoResultError checks if a query returned no statement result.
func IsNoResultError(err error) bool {
	return errors.Is(err, queries.ErrNoResult)
}
