package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"
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

// Save inserts a new evaluation row (append-only)
func (r *EvaluationRepository) Save(ctx context.Context, e *domain.Evaluation) error {
	const q = `
INSERT INTO evaluations
  (id, tenant_id, startup_id, pass_id, taxonomy_version, topic_id,
   use_cases_json, components_json, score, tier, usability, usable,
   validation, rationale, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15);
`
	tenant := stringOrDash(e.TenantID)
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	useCases, _ := json.Marshal(e.UseCases)
	components, _ := json.Marshal(e.Components)
	if strings.TrimSpace(string(useCases)) == "" {
		useCases = []byte("[]")
	}

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
WHERE tenant_id=$1 AND startup_id=$2
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
WHERE tenant_id=$1
ORDER BY created_at DESC, id DESC
LIMIT $2;`
	return r.queryEvaluations(ctx, q, tenant, limit)
}

// LatestAll returns the newest evaluation per startup via DISTINCT ON
func (r *EvaluationRepository) LatestAll(ctx context.Context, tenant string) ([]*domain.Evaluation, error) {
	q := `
SELECT DISTINCT ON (startup_id) ` + evalColumns + `
FROM evaluations
WHERE tenant_id=$1
ORDER BY startup_id, created_at DESC, id DESC;`
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

	where, args := buildFilters(tenant, f)
	q := `
SELECT ` + evalColumns + `
FROM evaluations
` + where + fmt.Sprintf("\nORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	evals, err := r.queryEvaluations(ctx, q, append(args, pageSize, offset)...)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("querying evaluations: %w", err)
	}

	var total int64
	cq := "SELECT COUNT(*) FROM evaluations " + where
	if err := r.db.QueryRowContext(ctx, cq, args...).Scan(&total); err != nil {
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
	const q = `SELECT startup_id FROM evaluations WHERE tenant_id=$1 AND pass_id=$2;`
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

func buildFilters(tenant string, f domain.Filters) (string, []any) {
	where := "WHERE tenant_id=$1"
	args := []any{tenant}
	if f.Tier != nil {
		args = append(args, int(*f.Tier))
		where += fmt.Sprintf(" AND tier=$%d", len(args))
	}
	if f.Topic != "" {
		args = append(args, f.Topic)
		where += fmt.Sprintf(" AND topic_id=$%d", len(args))
	}
	if f.Usable != nil {
		args = append(args, *f.Usable)
		where += fmt.Sprintf(" AND usable=$%d", len(args))
	}
	return where, args
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

type rowScanner interface {
	Scan(dest ...any) error
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

// stringOrDash returns "-" when the input is empty/whitespace
func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
