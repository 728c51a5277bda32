package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"training-quiz/internal/logger"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const createVersionTable = `CREATE TABLE SCHEMA_MIGRATIONS (
    VERSION    NUMBER(19)    NOT NULL,
    NAME       VARCHAR2(255) NOT NULL,
    APPLIED_AT TIMESTAMP     DEFAULT SYSTIMESTAMP NOT NULL,
    CONSTRAINT PK_SCHEMA_MIGRATIONS PRIMARY KEY (VERSION)
)`

// Migration is one versioned schema change and whether it has been applied.
type Migration struct {
	Version uint
	Name    string
	Applied bool
}

// Migrator applies migration files read through a golang-migrate source driver.
// golang-migrate ships no Oracle database driver, so statements run through sqlx
// and applied versions are tracked in SCHEMA_MIGRATIONS.
type Migrator struct {
	db  *sqlx.DB
	src source.Driver
}

// NewMigrator reads migrations from dir inside fsys.
func NewMigrator(db *sqlx.DB, fsys fs.FS, dir string) (*Migrator, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}
	return &Migrator{db: db, src: src}, nil
}

func (m *Migrator) Close() error {
	return m.src.Close()
}

// List returns every known migration in version order.
func (m *Migrator) List(ctx context.Context) ([]Migration, error) {
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	version, err := m.src.First()
	for err == nil {
		r, name, readErr := m.src.ReadUp(version)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read migration %d: %w", version, readErr)
		}
		r.Close()
		migrations = append(migrations, Migration{Version: version, Name: name, Applied: applied[version]})
		version, err = m.src.Next(version)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to walk migrations: %w", err)
	}
	return migrations, nil
}

// Up applies all pending migrations and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	migrations, err := m.List(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, mig := range migrations {
		if mig.Applied {
			continue
		}
		r, _, err := m.src.ReadUp(mig.Version)
		if err != nil {
			return count, fmt.Errorf("failed to read migration %d: %w", mig.Version, err)
		}
		if err := m.execScript(ctx, r); err != nil {
			return count, fmt.Errorf("migration %d_%s failed: %w", mig.Version, mig.Name, err)
		}
		if _, err := m.db.ExecContext(ctx,
			"INSERT INTO SCHEMA_MIGRATIONS (VERSION, NAME) VALUES (:1, :2)", mig.Version, mig.Name); err != nil {
			return count, fmt.Errorf("failed to record migration %d: %w", mig.Version, err)
		}
		logger.Get().Info("Applied migration", zap.Uint("version", mig.Version), zap.String("name", mig.Name))
		count++
	}
	return count, nil
}

// Down reverts the most recently applied migration. It returns false when nothing is applied.
func (m *Migrator) Down(ctx context.Context) (bool, error) {
	migrations, err := m.List(ctx)
	if err != nil {
		return false, err
	}

	for i := len(migrations) - 1; i >= 0; i-- {
		mig := migrations[i]
		if !mig.Applied {
			continue
		}
		r, _, err := m.src.ReadDown(mig.Version)
		if err != nil {
			return false, fmt.Errorf("failed to read down migration %d: %w", mig.Version, err)
		}
		if err := m.execScript(ctx, r); err != nil {
			return false, fmt.Errorf("down migration %d_%s failed: %w", mig.Version, mig.Name, err)
		}
		if _, err := m.db.ExecContext(ctx, "DELETE FROM SCHEMA_MIGRATIONS WHERE VERSION = :1", mig.Version); err != nil {
			return false, fmt.Errorf("failed to unrecord migration %d: %w", mig.Version, err)
		}
		logger.Get().Info("Reverted migration", zap.Uint("version", mig.Version), zap.String("name", mig.Name))
		return true, nil
	}
	return false, nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[uint]bool, error) {
	if _, err := m.db.ExecContext(ctx, createVersionTable); err != nil && !isNameInUse(err) {
		return nil, fmt.Errorf("failed to create SCHEMA_MIGRATIONS: %w", err)
	}

	var versions []int64
	if err := m.db.SelectContext(ctx, &versions, "SELECT VERSION FROM SCHEMA_MIGRATIONS ORDER BY VERSION"); err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	applied := make(map[uint]bool, len(versions))
	for _, v := range versions {
		applied[uint(v)] = true
	}
	return applied, nil
}

// isNameInUse reports ORA-00955, raised when SCHEMA_MIGRATIONS already exists.
func isNameInUse(err error) bool {
	return strings.Contains(err.Error(), "ORA-00955")
}

// execScript runs each statement of a script. Oracle rejects multi statement execs.
func (m *Migrator) execScript(ctx context.Context, r io.ReadCloser) error {
	defer r.Close()
	content, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	for _, stmt := range SplitStatements(string(content)) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w\nstatement: %s", err, stmt)
		}
	}
	return nil
}

// SplitStatements breaks a script on ';' and drops comment lines and the terminators.
func SplitStatements(script string) []string {
	var cleaned strings.Builder
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		cleaned.WriteString(line)
		cleaned.WriteByte('\n')
	}

	var stmts []string
	for _, part := range strings.Split(cleaned.String(), ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
