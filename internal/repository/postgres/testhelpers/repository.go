package testhelpers

import (
	"github.com/georef-api/internal/domain/repository"
	"github.com/georef-api/internal/repository/postgres"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewIndexRepositoryForTest creates an index repository with test database and logger
func NewIndexRepositoryForTest(db *sqlx.DB, logger *zap.Logger, maxResults int) repository.IndexRepository {
	return postgres.NewIndexRepository(NewDBForTest(db, logger), maxResults)
}
