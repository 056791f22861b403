// Package dbtest fornece um *sql.DB em memória para testar repositórios sem
// Postgres. As consultas são casadas por trecho do SQL.
package dbtest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
)

// Rows é o resultado devolvido para uma consulta
type Rows struct {
	Columns []string
	Values  [][]driver.Value
}

// Exec registra um comando executado
type Exec struct {
	Query string
	Args  []driver.Value
}

// Fake guarda resultados por trecho de SQL e os comandos recebidos.
// Results: chave é um trecho que precisa aparecer na consulta (ex: "FROM demo_users")
// ExecErr: erro devolvido por todo Exec
type Fake struct {
	Results map[string]Rows
	ExecErr error

	mu    sync.Mutex
	execs []Exec
}

// Open devolve um *sql.DB ligado ao fake, fechado no fim do teste
func Open(t testing.TB, f *Fake) *sql.DB {
	t.Helper()
	db := sql.OpenDB(connector{f: f})
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Execs retorna os comandos executados até agora
func (f *Fake) Execs() []Exec {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Exec(nil), f.execs...)
}

func (f *Fake) lookup(query string) (Rows, error) {
	for frag, rows := range f.Results {
		if strings.Contains(query, frag) {
			return rows, nil
		}
	}
	return Rows{}, errors.New("dbtest: no result for query: " + strings.TrimSpace(query))
}

type connector struct{ f *Fake }

func (c connector) Connect(context.Context) (driver.Conn, error) { return &conn{f: c.f}, nil }
func (c connector) Driver() driver.Driver                          { return fakeDriver{} }

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("dbtest: use Open")
}

type conn struct{ f *Fake }

func (c *conn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("dbtest: prepared statements not supported")
}
func (c *conn) Close() error { return nil }
func (c *conn) Begin() (driver.Tx, error) {
	return nil, errors.New("dbtest: transactions not supported")
}

func (c *conn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	vals := make([]driver.Value, 0, len(args))
	for _, a := range args {
		vals = append(vals, a.Value)
	}
	c.f.mu.Lock()
	c.f.execs = append(c.f.execs, Exec{Query: query, Args: vals})
	c.f.mu.Unlock()
	if c.f.ExecErr != nil {
		return nil, c.f.ExecErr
	}
	return driver.RowsAffected(1), nil
}

func (c *conn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	r, err := c.f.lookup(query)
	if err != nil {
		return nil, err
	}
	return &rows{cols: r.Columns, vals: r.Values}, nil
}

type rows struct {
	cols []string
	vals [][]driver.Value
	pos  int
}

func (r *rows) Columns() []string { return r.cols }
func (r *rows) Close() error      { return nil }

func (r *rows) Next(dest []driver.Value) error {
	if r.pos >= len(r.vals) {
		return io.EOF
	}
	copy(dest, r.vals[r.pos])
	r.pos++
	return nil
}
