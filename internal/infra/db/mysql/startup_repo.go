package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	domain "github.com/bryanwahyu/startup-radar/internal/domain/startup"
)

type StartupRepository struct {
	db *sql.DB
}

func NewStartupRepository(db *sql.DB) *StartupRepository {
	return &StartupRepository{db: db}
}

// Save insert/update Startup record (ingestion and re-enrichment both land here)
func (r *StartupRepository) Save(ctx context.Context, s *domain.Startup) error {
	const q = `
INSERT INTO startups
(id, tenant_id, name, description, pitch, industry_tags, tech_tags,
 funding_usd, employees, maturity, founded_year, country, ingested_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 name=VALUES(name), description=VALUES(description), pitch=VALUES(pitch),
 industry_tags=VALUES(industry_tags), tech_tags=VALUES(tech_tags),
 funding_usd=VALUES(funding_usd), employees=VALUES(employees),
 maturity=VALUES(maturity), founded_year=VALUES(founded_year), country=VALUES(country);
`
	tenant := stringOrDash(s.TenantID)
	name := stringOrDash(s.Name)
	ingested := s.IngestedAt
	if ingested.IsZero() {
		ingested = time.Now()
	}
	industry, _ := json.Marshal(s.IndustryTags)
	tech, _ := json.Marshal(s.TechTags)

	_, err := r.db.ExecContext(ctx, q,
		s.ID, tenant, name, s.Description, s.Pitch, string(industry), string(tech),
		s.FundingUSD, s.Employees, s.Maturity, s.FoundedYear, s.Country, ingested,
	)
	return err
}

// Get by ID + Tenant
func (r *StartupRepository) Get(ctx context.Context, tenant string, id domain.ID) (*domain.Startup, error) {
	const q = `
SELECT id, tenant_id, name, description, pitch, industry_tags, tech_tags,
       funding_usd, employees, maturity, founded_year, country, ingested_at
FROM startups
WHERE tenant_id=? AND id=? LIMIT 1;
`
	return scanStartup(r.db.QueryRowContext(ctx, q, tenant, id))
}

// All returns the full catalog for a tenant, ordered by id for
// reproducible pass ordering.
func (r *StartupRepository) All(ctx context.Context, tenant string) ([]*domain.Startup, error) {
	const q = `
SELECT id, tenant_id, name, description, pitch, industry_tags, tech_tags,
       funding_usd, employees, maturity, founded_year, country, ingested_at
FROM startups
WHERE tenant_id=? ORDER BY id;
`
	rows, err := r.db.QueryContext(ctx, q, tenant)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Startup
	for rows.Next() {
		s, err := scanStartup(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Count catalog size per tenant
func (r *StartupRepository) Count(ctx context.Context, tenant string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM startups WHERE tenant_id=?", tenant).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStartup(row rowScanner) (*domain.Startup, error) {
	var s domain.Startup
	var industry, tech string
	if err := row.Scan(
		&s.ID, &s.TenantID, &s.Name, &s.Description, &s.Pitch, &industry, &tech,
		&s.FundingUSD, &s.Employees, &s.Maturity, &s.FoundedYear, &s.Country, &s.IngestedAt,
	); err != nil {
		return nil, err
	}
	// tag columns hold JSON arrays; empty/invalid JSON means no tags
	_ = json.Unmarshal([]byte(industry), &s.IndustryTags)
	_ = json.Unmarshal([]byte(tech), &s.TechTags)
	return &s, nil
}
