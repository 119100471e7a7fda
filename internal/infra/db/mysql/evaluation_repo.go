package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	domain "github.com/bryanwahyu/startup-radar/internal/domain/evaluation"
	"github.com/bryanwahyu/startup-radar/internal/domain/startup"
)

type EvaluationRepository struct {
	db *sql.DB
}

func NewEvaluationRepository(db *sql.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

const evalColumns = `id, tenant_id, startup_id, pass_id, taxonomy_version, topic_id,
       use_cases_json, components_json, score, tier, usability, usable,
       validation, rationale, created_at`

// Save inserts a new evaluation row. Append-only: a later pass supersedes
// earlier rows instead of updating them, so history stays inspectable.
func (r *EvaluationRepository) Save(ctx context.Context, e *domain.Evaluation) error {
	const q = `
INSERT INTO evaluations
(id, tenant_id, startup_id, pass_id, taxonomy_version, topic_id,
 use_cases_json, components_json, score, tier, usability, usable,
 validation, rationale, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);
`
	tenant := stringOrDash(e.TenantID)
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	useCases, _ := json.Marshal(e.UseCases)
	components, _ := json.Marshal(e.Components)

	_, err := r.db.ExecContext(ctx, q,
		e.ID, tenant, e.StartupID, e.PassID, e.TaxonomyVersion, e.TopicID,
		string(useCases), string(components), e.Score, int(e.Tier),
		e.Usability, e.Usable, e.Validation, e.Rationale, created,
	)
	return err
}

// LatestByStartup returns the newest evaluation for one startup
func (r *EvaluationRepository) LatestByStartup(ctx context.Context, tenant string, id startup.ID) (*domain.Evaluation, error) {
	q := `
SELECT ` + evalColumns + `
FROM evaluations
WHERE tenant_id=? AND startup_id=?
ORDER BY created_at DESC, id DESC
LIMIT 1;`
	e, err := scanEvaluation(r.db.QueryRowContext(ctx, q, tenant, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return e, err
}

// Latest evaluations per tenant, newest first
func (r *EvaluationRepository) Latest(ctx context.Context, tenant string, limit int) ([]*domain.Evaluation, error) {
	if limit <= 0 {
		limit = 20
	}
	q := `
SELECT ` + evalColumns + `
FROM evaluations
WHERE tenant_id=? ORDER BY created_at DESC, id DESC LIMIT ?;`
	return r.queryEvaluations(ctx, q, tenant, limit)
}

// LatestAll returns the newest evaluation per startup (the snapshot feeds
// and exports read from).
func (r *EvaluationRepository) LatestAll(ctx context.Context, tenant string) ([]*domain.Evaluation, error) {
	q := `
SELECT ` + evalColumns + `
FROM evaluations e
WHERE tenant_id=?
  AND id = (
    SELECT e2.id FROM evaluations e2
    WHERE e2.tenant_id = e.tenant_id AND e2.startup_id = e.startup_id
    ORDER BY e2.created_at DESC, e2.id DESC LIMIT 1
  )
ORDER BY startup_id;`
	return r.queryEvaluations(ctx, q, tenant)
}

// Paginate with offset + limit and optional tier/topic/usable filters
func (r *EvaluationRepository) Paginate(ctx context.Context, tenant string, page, pageSize int, f domain.Filters) (domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := `
SELECT ` + evalColumns + `
FROM evaluations
WHERE tenant_id=?`
	args := []any{tenant}
	query, args = applyFilters(query, args, f)
	query += "\nORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, pageSize, offset)

	evals, err := r.queryEvaluations(ctx, query, args...)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("querying evaluations: %w", err)
	}

	total, err := r.count(ctx, tenant, f)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("getting total count: %w", err)
	}

	return domain.PaginatedResult{
		Data:       evals,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// ScoredStartupIDs returns the checkpoint set for a pass id
func (r *EvaluationRepository) ScoredStartupIDs(ctx context.Context, tenant string, passID string) (map[startup.ID]bool, error) {
	const q = `SELECT startup_id FROM evaluations WHERE tenant_id=? AND pass_id=?;`
	rows, err := r.db.QueryContext(ctx, q, tenant, passID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[startup.ID]bool)
	for rows.Next() {
		var id startup.ID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

func (r *EvaluationRepository) count(ctx context.Context, tenant string, f domain.Filters) (int64, error) {
	query := "SELECT COUNT(*) FROM evaluations WHERE tenant_id=?"
	args := []any{tenant}
	query, args = applyFilters(query, args, f)

	var n int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

func applyFilters(query string, args []any, f domain.Filters) (string, []any) {
	if f.Tier != nil {
		query += " AND tier = ?"
		args = append(args, int(*f.Tier))
	}
	if f.Topic != "" {
		query += " AND topic_id = ?"
		args = append(args, f.Topic)
	}
	if f.Usable != nil {
		query += " AND usable = ?"
		args = append(args, *f.Usable)
	}
	return query, args
}

func (r *EvaluationRepository) queryEvaluations(ctx context.Context, query string, args ...any) ([]*domain.Evaluation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Evaluation
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEvaluation(row rowScanner) (*domain.Evaluation, error) {
	var e domain.Evaluation
	var useCases, components string
	var tier int
	if err := row.Scan(
		&e.ID, &e.TenantID, &e.StartupID, &e.PassID, &e.TaxonomyVersion, &e.TopicID,
		&useCases, &components, &e.Score, &tier, &e.Usability, &e.Usable,
		&e.Validation, &e.Rationale, &e.CreatedAt,
	); err != nil {
		return nil, err
	}
	e.Tier = domain.Tier(tier)
	_ = json.Unmarshal([]byte(useCases), &e.UseCases)
	_ = json.Unmarshal([]byte(components), &e.Components)
	return &e, nil
}
