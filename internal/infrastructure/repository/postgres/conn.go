package postgres

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const (
	driverName           = "postgres"
	maxTracedQueryLength = 512
	pingTimeout          = 5 * time.Second
)

var queryWhitespace = regexp.MustCompile(`\s+`)

// Open connects with tracing enabled and verifies the connection.
func Open(ctx context.Context, rawURL string, disablePreparedBinary bool) (*sqlx.DB, error) {
	dsn := NormalizeURL(rawURL, disablePreparedBinary)

	db, err := otelsqlx.Open(driverName, dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(databaseName(dsn)),
		otelsql.WithQueryFormatter(formatQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NormalizeURL sets lib/pq's disable_prepared_binary_result=yes unless the URL
// already carries a value, so the pool works behind transaction poolers.
func NormalizeURL(raw string, disablePreparedBinary bool) string {
	if !disablePreparedBinary {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") != "" {
		return raw
	}
	query.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// databaseName understands both URL and key=value connection strings.
func databaseName(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}

	for _, token := range strings.Fields(trimmed) {
		if name, ok := strings.CutPrefix(token, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

func formatQueryForTrace(query string) string {
	normalized := strings.TrimSpace(queryWhitespace.ReplaceAllString(query, " "))
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
