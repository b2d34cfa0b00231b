package repo

import (
	"context"
	"database/sql"

	"github.com/radieske/shark-picks/internal/odds-service/dto"
)

// Limites da consulta de histórico
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200
)

// ReadRepo lê o histórico gravado pelo picks-archiver
type ReadRepo struct {
	DB *sql.DB
}

// ListHistory devolve os picks mais recentes de um sport (mais novos primeiro)
func (r *ReadRepo) ListHistory(ctx context.Context, sport string, limit int) ([]dto.HistoryPick, error) {
	limit = clampLimit(limit)
	const q = `
		SELECT event_id::text, sport, matchup, recommended_pick, best_odds, bookmaker, start_time,
		       to_char(computed_at AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS"Z"')
		FROM pick_history
		WHERE sport = $1
		ORDER BY computed_at DESC, position
		LIMIT $2;
	`
	rows, err := r.DB.QueryContext(ctx, q, sport, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []dto.HistoryPick{}
	for rows.Next() {
		var p dto.HistoryPick
		if err := rows.Scan(&p.EventID, &p.Sport, &p.Matchup, &p.RecommendedPick, &p.BestOdds, &p.Bookmaker, &p.StartTime, &p.ComputedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// clampLimit aplica o default (<= 0) e o teto da consulta
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return limit
}
