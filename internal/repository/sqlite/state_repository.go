package sqlite

import (
	"context"
	"database/sql"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/mindforge/internal/logger"
	"github.com/vytor/mindforge/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type stateRepository struct {
	db *sql.DB
}

// NewStateRepository creates a new StateRepository implementation
func NewStateRepository(db *sql.DB) repository.StateRepository {
	return &stateRepository{db: db}
}

func (r *stateRepository) Load(ctx context.Context) (map[string][]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("state_repo")

	query, args, err := sqlBuilder.Select("section", "value").From("state_sections").ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to load state sections: %v", err)
		return nil, err
	}
	defer rows.Close()

	sections := map[string][]byte{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			log.Error("failed to scan state section: %v", err)
			return nil, err
		}
		sections[key] = []byte(value)
	}
	log.Debug("loaded %d state sections", len(sections))
	return sections, rows.Err()
}

func (r *stateRepository) Save(ctx context.Context, sections map[string][]byte) error {
	log := logger.FromContext(ctx).WithPrefix("state_repo")
	if len(sections) == 0 {
		return nil
	}

	keys := make([]string, 0, len(sections))
	for k := range sections {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, key := range keys {
			query, args, err := sqlBuilder.
				Insert("state_sections").
				Columns("section", "value", "updated_at").
				Values(key, string(sections[key]), squirrel.Expr("CURRENT_TIMESTAMP")).
				Suffix("ON CONFLICT(section) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
				ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				log.Error("failed to save section %s: %v", key, err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Debug("saved %d state sections", len(keys))
	return nil
}

func (r *stateRepository) Clear(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("state_repo")
	query, args, err := sqlBuilder.Delete("state_sections").ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to clear state: %v", err)
		return err
	}
	log.Info("state cleared")
	return nil
}
