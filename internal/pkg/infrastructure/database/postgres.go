package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/diwise/record-translator/pkg/keyset/container"
	"github.com/diwise/record-translator/pkg/keyset/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	host     string
	user     string
	password string
	port     string
	dbname   string
	sslmode  string
}

func LoadConfiguration(ctx context.Context) Config {
	return Config{
		host:     env.GetVariableOrDefault(ctx, "POSTGRES_HOST", ""),
		user:     env.GetVariableOrDefault(ctx, "POSTGRES_USER", ""),
		password: env.GetVariableOrDefault(ctx, "POSTGRES_PASSWORD", ""),
		port:     env.GetVariableOrDefault(ctx, "POSTGRES_PORT", "5432"),
		dbname:   env.GetVariableOrDefault(ctx, "POSTGRES_DBNAME", "diwise"),
		sslmode:  env.GetVariableOrDefault(ctx, "POSTGRES_SSLMODE", "disable"),
	}
}

// ConnStr returns the connection url with user and password escaped
func (c Config) ConnStr() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.user, c.password),
		Host:     net.JoinHostPort(c.host, c.port),
		Path:     "/" + c.dbname,
		RawQuery: url.Values{"sslmode": {c.sslmode}}.Encode(),
	}
	return u.String()
}

func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	conn, err := pgxpool.New(ctx, cfg.ConnStr())
	if err != nil {
		return nil, err
	}

	err = conn.Ping(ctx)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

// Querier is the part of a pgxpool.Pool that is needed to read keyed rows
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// SelectAll builds a query that reads every column of table, which may be schema qualified
func SelectAll(table string) (string, error) {
	parts := strings.Split(strings.TrimSpace(table), ".")
	for _, p := range parts {
		if p == "" {
			return "", fmt.Errorf("invalid table name %q", table)
		}
	}

	return fmt.Sprintf("SELECT * FROM %s;", pgx.Identifier(parts).Sanitize()), nil
}

// ForEachRow reads every row in table and hands it to callback as a keyed container with
// the column names as keys. Iteration stops at the first error.
func ForEachRow(ctx context.Context, q Querier, table string, callback func(src types.Source) error) (int, error) {
	sql, err := SelectAll(table)
	if err != nil {
		return 0, err
	}

	logging.GetFromContext(ctx).Debug("reading rows", "table", table)

	rows, err := q.Query(ctx, sql)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0

	for rows.Next() {
		o, err := container.FromRow(rows)
		if err != nil {
			return count, err
		}

		err = callback(o)
		if err != nil {
			return count, fmt.Errorf("row %d: %w", count, err)
		}

		count++
	}

	if err := rows.Err(); err != nil {
		return count, err
	}

	return count, nil
}
