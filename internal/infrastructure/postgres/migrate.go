package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib" // driver "pgx" para database/sql (goose)
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Migrator ejecuta comandos goose sobre la base de datos.
// Con dir vacío usa las migraciones embebidas en el binario; si no, lee del disco.
type Migrator struct {
	db  *sql.DB
	dir string
	fs  fs.FS
}

// OpenMigrator abre una conexión database/sql (driver pgx) para goose.
func OpenMigrator(dsn, dir string) (*Migrator, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sql db: %w", err)
	}
	m := &Migrator{db: db, dir: dir}
	if dir == "" {
		m.dir = "migrations"
		m.fs = embedMigrations
	}
	if err := goose.SetDialect("postgres"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	return m, nil
}

// Close cierra la conexión.
func (m *Migrator) Close() error {
	return m.db.Close()
}

// Run ejecuta un comando goose estándar (up, down, status, version, redo, reset).
func (m *Migrator) Run(ctx context.Context, command string, args ...string) error {
	goose.SetBaseFS(m.fs)
	defer goose.SetBaseFS(nil)
	if err := goose.RunContext(ctx, command, m.db, m.dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// Up aplica todas las migraciones pendientes.
func (m *Migrator) Up(ctx context.Context) error {
	return m.Run(ctx, "up")
}

// MigrateTo sube o baja hasta la versión indicada comparando con la versión actual.
func (m *Migrator) MigrateTo(ctx context.Context, targetVersion string) error {
	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("versión inválida %q (se espera YYYYMMDDHHMMSS): %w", targetVersion, err)
	}
	goose.SetBaseFS(m.fs)
	defer goose.SetBaseFS(nil)

	current, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}
	switch {
	case current == target:
		return nil
	case current < target:
		if err := goose.UpToContext(ctx, m.db, m.dir, target); err != nil {
			return fmt.Errorf("goose up-to %d: %w", target, err)
		}
	default:
		if err := goose.DownToContext(ctx, m.db, m.dir, target); err != nil {
			return fmt.Errorf("goose down-to %d: %w", target, err)
		}
	}
	return nil
}
