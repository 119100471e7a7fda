package startup

import (
	"strings"
	"time"
)

// ID tipe untuk Startup
type ID string

// Maturity enum (labels as delivered by the enrichment collaborator)
type Maturity string

const (
	MaturityPrototype Maturity = "prototype"
	MaturitySeed      Maturity = "seed"
	MaturityGrowth    Maturity = "growth"
	MaturityScaling   Maturity = "scaling"
	MaturityUnknown   Maturity = ""
)

// EmployeeBucket enum
type EmployeeBucket string

const (
	Employees1to10    EmployeeBucket = "1-10"
	Employees11to50   EmployeeBucket = "11-50"
	Employees51to200  EmployeeBucket = "51-200"
	Employees201to500 EmployeeBucket = "201-500"
	Employees500Plus  EmployeeBucket = "500+"
	EmployeesUnknown  EmployeeBucket = ""
)

// Aggregate Root: Startup
// Identity is immutable; attributes are mutated only by the external
// enrichment collaborator between scoring passes.
type Startup struct {
	ID           ID             `json:"id"`
	TenantID     string         `json:"tenant_id"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	Pitch        string         `json:"pitch,omitempty"`
	IndustryTags []string       `json:"industry_tags,omitempty"`
	TechTags     []string       `json:"tech_tags,omitempty"`
	FundingUSD   int64          `json:"funding_usd"` // 0 = undisclosed
	Employees    EmployeeBucket `json:"employees,omitempty"`
	Maturity     Maturity       `json:"maturity,omitempty"`
	FoundedYear  int            `json:"founded_year,omitempty"`
	Country      string         `json:"country,omitempty"`
	IngestedAt   time.Time      `json:"ingested_at"`
}

// MatchableText gabungkan semua free-text field jadi satu haystack lowercase.
// Empty fields simply contribute nothing; missing text is never an error.
func (s *Startup) MatchableText() string {
	parts := make([]string, 0, 4+len(s.IndustryTags)+len(s.TechTags))
	for _, p := range []string{s.Name, s.Description, s.Pitch} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, s.IndustryTags...)
	parts = append(parts, s.TechTags...)
	return strings.ToLower(strings.Join(parts, " "))
}
