package database

import (
	"fmt"

	"training-quiz/internal/logger"

	_ "github.com/godror/godror" // registers "godror" (OCI client)
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // registers "oracle" (pure Go)
	"go.uber.org/zap"
)

// NewSQLXOracleDB connects with the given driver ("oracle" or "godror") and pings the server.
func NewSQLXOracleDB(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Oracle database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping Oracle database: %w", err)
	}

	logger.Get().Info("Connected to Oracle database", zap.String("driver", driver))
	return db, nil
}
