package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/radieske/shark-picks/pkg/contracts/events"
)

// PostgresRepo grava o histórico de Shark Picks (auditoria) no Postgres
// DB: conexão com o banco de dados
type PostgresRepo struct {
	DB *sql.DB
}

// NewPostgresRepo retorna uma instância de repositório Postgres
func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

const schema = `
	CREATE TABLE IF NOT EXISTS pick_history (
	  event_id         UUID             NOT NULL,
	  position         INT              NOT NULL,
	  sport            TEXT             NOT NULL,
	  matchup          TEXT             NOT NULL,
	  recommended_pick TEXT             NOT NULL,
	  best_odds        DOUBLE PRECISION NOT NULL,
	  bookmaker        TEXT             NOT NULL,
	  start_time       TEXT             NOT NULL,
	  computed_at      TIMESTAMPTZ      NOT NULL,
	  source           TEXT             NOT NULL DEFAULT '',
	  PRIMARY KEY (event_id, position)
	);
	CREATE INDEX IF NOT EXISTS pick_history_sport_computed_idx
	  ON pick_history (sport, computed_at DESC);
`

// EnsureSchema cria a tabela de histórico se ainda não existir
func (r *PostgresRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, schema)
	return err
}

// InsertPicks grava todos os picks do evento numa transação.
// ON CONFLICT torna a reentrega da mesma mensagem Kafka idempotente.
func (r *PostgresRepo) InsertPicks(ctx context.Context, e events.PicksComputed) error {
	const q = `
		INSERT INTO pick_history
		  (event_id, position, sport, matchup, recommended_pick, best_odds, bookmaker, start_time, computed_at, source)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (event_id, position) DO NOTHING
	`
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range e.Picks {
		if _, err := stmt.ExecContext(ctx,
			e.ID, i, e.Sport, p.Matchup, p.RecommendedPick, p.BestOdds, p.Bookmaker, p.StartTime,
			e.ComputedAt, e.Source,
		); err != nil {
			return fmt.Errorf("insert pick %d: %w", i, err)
		}
	}
	return tx.Commit()
}
