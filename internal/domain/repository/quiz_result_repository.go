package repository

import (
	"context"
	"database/sql"
	"fmt"

	"career_compass_v2/internal/common"
	"career_compass_v2/internal/domain/model"
)

type QuizResultRepository interface {
	Insert(ctx context.Context, result *model.QuizResult) error
	ListByOwner(ctx context.Context, ownerID int64) ([]model.QuizResult, error)
	ListAnonymous(ctx context.Context, limit int) ([]model.QuizResult, error)
	// DeleteOwned removes a result only when both the id and the owner match.
	// A miss on either returns ErrNotFound; callers cannot tell the cases
	// apart, and anonymous rows (NULL owner) never match any caller.
	DeleteOwned(ctx context.Context, id, ownerID int64) error
}

type pgQuizResultRepository struct {
	db *sql.DB
}

func NewPgQuizResultRepository(db *sql.DB) QuizResultRepository {
	return &pgQuizResultRepository{db: db}
}

func (r *pgQuizResultRepository) Insert(ctx context.Context, result *model.QuizResult) error {
	query := `INSERT INTO quiz_results (owner_id, result_data)
	          VALUES ($1, $2)
	          RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, result.OwnerID, result.ResultData).
		Scan(&result.ID, &result.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgQuizResultRepository.Insert: %w", err)
	}
	return nil
}

func (r *pgQuizResultRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.QuizResult, error) {
	query := `SELECT id, owner_id, result_data, created_at
	          FROM quiz_results WHERE owner_id = $1
	          ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("pgQuizResultRepository.ListByOwner: %w", err)
	}
	defer rows.Close()
	return scanQuizResults(rows)
}

func (r *pgQuizResultRepository) ListAnonymous(ctx context.Context, limit int) ([]model.QuizResult, error) {
	query := `SELECT id, owner_id, result_data, created_at
	          FROM quiz_results WHERE owner_id IS NULL
	          ORDER BY created_at DESC
	          LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("pgQuizResultRepository.ListAnonymous: %w", err)
	}
	defer rows.Close()
	return scanQuizResults(rows)
}

func (r *pgQuizResultRepository) DeleteOwned(ctx context.Context, id, ownerID int64) error {
	query := `DELETE FROM quiz_results WHERE id = $1 AND owner_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("pgQuizResultRepository.DeleteOwned: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgQuizResultRepository.DeleteOwned: %w", err)
	}
	if rows == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanQuizResults(rows *sql.Rows) ([]model.QuizResult, error) {
	results := []model.QuizResult{}
	for rows.Next() {
		var qr model.QuizResult
		if err := rows.Scan(&qr.ID, &qr.OwnerID, &qr.ResultData, &qr.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning quiz result: %w", err)
		}
		results = append(results, qr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quiz results: %w", err)
	}
	return results, nil
}
