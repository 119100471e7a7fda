package scoring

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/bryanwahyu/startup-radar/internal/application"
	"github.com/bryanwahyu/startup-radar/internal/domain/ai"
	"github.com/bryanwahyu/startup-radar/internal/domain/evaluation"
	"github.com/bryanwahyu/startup-radar/internal/domain/startup"
	"github.com/bryanwahyu/startup-radar/internal/domain/taxonomy"
)

// Service implements use-cases untuk scoring pass
// Service is designed to be used concurrently and is thread-safe
type Service struct {
	Startups startup.Repository
	Evals    evaluation.Repository
	// Validator is optional; nil disables the semantic pass entirely and
	// every stage below it still runs.
	Validator        ai.Validator
	Limiter          *rate.Limiter
	Clock            application.Clock
	Taxonomy         *taxonomy.Taxonomy
	Weights          evaluation.Weights
	Match            evaluation.MatchOptions
	Competitors      []string
	Workers          int
	ValidatorTimeout time.Duration

	mu     sync.Mutex
	passes map[string]*PassStatus
}

// PassState enum
type PassState string

const (
	PassRunning   PassState = "running"
	PassCompleted PassState = "completed"
	PassFailed    PassState = "failed"
)

// PassStatus is the live progress record for one catalog scoring pass.
type PassStatus struct {
	ID              string    `json:"id"`
	TenantID        string    `json:"tenant_id"`
	TaxonomyVersion string    `json:"taxonomy_version"`
	State           PassState `json:"state"`
	Validate        bool      `json:"validate"`
	Total           int       `json:"total"`
	Processed       int       `json:"processed"`
	Skipped         int       `json:"skipped"`
	Failed          int       `json:"failed"`
	// Degraded is set when the semantic validator was requested but every
	// call failed; base scoring still succeeded.
	Degraded        bool      `json:"degraded"`
	validatorCalls  int
	validatorErrors int
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`

	mu sync.Mutex
}

func (p *PassStatus) snapshot() PassStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	cp := PassStatus{
		ID: p.ID, TenantID: p.TenantID, TaxonomyVersion: p.TaxonomyVersion,
		State: p.State, Validate: p.Validate,
		Total: p.Total, Processed: p.Processed, Skipped: p.Skipped, Failed: p.Failed,
		Degraded: p.Degraded, StartedAt: p.StartedAt, FinishedAt: p.FinishedAt,
	}
	return cp
}

// Command untuk memulai scoring pass
type StartPassCommand struct {
	TenantID string
	Validate bool
	// ResumePassID reuses an interrupted pass id; startups already
	// evaluated under it are skipped.
	ResumePassID string
}

// StartPass registers a pass and returns its status record. The actual
// work runs via RunPassUntilDone, typically from a goroutine in the router.
func (s *Service) StartPass(cmd StartPassCommand) *PassStatus {
	id := cmd.ResumePassID
	if id == "" {
		id = uuid.New().String()
	}
	st := &PassStatus{
		ID:              id,
		TenantID:        cmd.TenantID,
		TaxonomyVersion: s.Taxonomy.Version,
		State:           PassRunning,
		Validate:        cmd.Validate && s.Validator != nil,
		StartedAt:       s.Clock.Now(),
	}
	s.mu.Lock()
	if s.passes == nil {
		s.passes = make(map[string]*PassStatus)
	}
	s.passes[id] = st
	s.mu.Unlock()
	return st
}

// Pass returns a copy of the pass status by id.
func (s *Service) Pass(id string) (PassStatus, bool) {
	s.mu.Lock()
	st, ok := s.passes[id]
	s.mu.Unlock()
	if !ok {
		return PassStatus{}, false
	}
	return st.snapshot(), true
}

// RunPassUntilDone → jalanin pass dengan context.Background()
// cocok dipanggil dari goroutine di router supaya gak kena context canceled
func (s *Service) RunPassUntilDone(st *PassStatus) error {
	return s.RunPass(context.Background(), st)
}

// RunPass scores the whole catalog under one pass id. Each startup is
// scored independently (idempotent), so partial failures need no rollback:
// evaluations already written for this pass id act as the checkpoint.
func (s *Service) RunPass(ctx context.Context, st *PassStatus) error {
	finish := func(state PassState) {
		now := s.Clock.Now()
		st.mu.Lock()
		st.State = state
		st.FinishedAt = &now
		if st.validatorCalls > 0 && st.validatorErrors == st.validatorCalls {
			st.Degraded = true
		}
		st.mu.Unlock()
	}

	catalog, err := s.Startups.All(ctx, st.TenantID)
	if err != nil {
		finish(PassFailed)
		return fmt.Errorf("loading catalog: %w", err)
	}
	done, err := s.Evals.ScoredStartupIDs(ctx, st.TenantID, st.ID)
	if err != nil {
		finish(PassFailed)
		return fmt.Errorf("loading checkpoint: %w", err)
	}

	st.mu.Lock()
	st.Total = len(catalog)
	st.mu.Unlock()

	workers := s.Workers
	if workers <= 0 {
		workers = 4
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, su := range catalog {
		su := su
		if done[su.ID] {
			st.mu.Lock()
			st.Skipped++
			st.mu.Unlock()
			continue
		}
		g.Go(func() error {
			if _, err := s.ScoreOne(gctx, su, st); err != nil {
				log.Printf("scoring error pass=%s startup=%s: %v", st.ID, su.ID, err)
				st.mu.Lock()
				st.Failed++
				st.mu.Unlock()
				// keep going; each startup is independent
				return nil
			}
			st.mu.Lock()
			st.Processed++
			st.mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		finish(PassFailed)
		return err
	}
	finish(PassCompleted)
	return nil
}

// ScoreOne runs the full pipeline for one startup: rule match → usability
// gate → optional semantic validation → composite score → persist.
func (s *Service) ScoreOne(ctx context.Context, su *startup.Startup, st *PassStatus) (*evaluation.Evaluation, error) {
	match := evaluation.MatchStartup(su, s.Taxonomy, s.Match)
	usability, usabilityNote := evaluation.ClassifyUsability(su, s.Competitors)

	validation := evaluation.ValidationSkipped
	rationale := usabilityNote

	if st.Validate && match.Matched() {
		verdict, err := s.validate(ctx, su, match)
		st.mu.Lock()
		st.validatorCalls++
		if err != nil {
			st.validatorErrors++
		}
		st.mu.Unlock()

		switch {
		case err != nil:
			// fail-open: keep the rule confidence, log and move on
			log.Printf("validator warning startup=%s: %v", su.ID, err)
			validation = evaluation.ValidationFailed
		default:
			// record the verdict itself, not whether the number moved: a
			// disagreement whose clamp lands back on the rule confidence is
			// still a disagreement
			validation = evaluation.ValidationAgreed
			if !verdict.Agrees {
				validation = evaluation.ValidationAdjusted
			}
			proposed := verdict.AdjustedConfidence
			if proposed < 0 && !verdict.Agrees {
				proposed = match.Confidence - ai.MaxAdjustment
			}
			if proposed >= 0 {
				bounded := ai.BoundAdjustment(match.Confidence, proposed)
				if bounded != match.Confidence {
					match.Confidence = bounded
					validation = evaluation.ValidationAdjusted
				}
			}
			if verdict.Rationale != "" {
				rationale = rationale + "; " + verdict.Rationale
			}
			if usability == evaluation.Uncertain {
				if verdict.Agrees {
					usability = evaluation.Usable
				} else {
					usability = evaluation.NotUsable
				}
			}
		}
	}

	// conservative fail-closed: unresolved uncertainty counts as not-usable
	if usability == evaluation.Uncertain {
		usability = evaluation.NotUsable
	}

	components, score, tier := evaluation.ScoreStartup(su, match, s.Weights)

	best := match.BestUseCase()
	if best != nil {
		rationale = fmt.Sprintf("matched use case %s with confidence %d; %s",
			best.UseCaseID, best.Confidence, rationale)
	} else {
		rationale = "no use case cleared the confidence floor; " + rationale
	}

	ev := &evaluation.Evaluation{
		ID:              evaluation.ID(uuid.New().String()),
		TenantID:        su.TenantID,
		StartupID:       su.ID,
		PassID:          st.ID,
		TaxonomyVersion: s.Taxonomy.Version,
		TopicID:         match.TopicID,
		UseCases:        match.UseCases,
		Components:      components,
		Score:           score,
		Tier:            tier,
		Usability:       usability,
		Usable:          usability == evaluation.Usable,
		Validation:      validation,
		Rationale:       rationale,
		CreatedAt:       s.Clock.Now(),
	}
	if err := s.Evals.Save(ctx, ev); err != nil {
		return nil, fmt.Errorf("saving evaluation: %w", err)
	}
	return ev, nil
}

// validate performs the single network call of the pipeline, behind the
// shared rate limiter and a hard timeout so a slow model can never stall a
// pass.
func (s *Service) validate(ctx context.Context, su *startup.Startup, match evaluation.MatchResult) (ai.Verdict, error) {
	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx); err != nil {
			return ai.Verdict{}, err
		}
	}
	timeout := s.ValidatorTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	vctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	best := match.BestUseCase()
	topic := s.Taxonomy.TopicByID(match.TopicID)
	req := ai.Request{
		StartupName:    su.Name,
		StartupSummary: su.Description,
		Confidence:     match.Confidence,
	}
	if req.StartupSummary == "" {
		req.StartupSummary = su.Pitch
	}
	if topic != nil {
		req.TopicName = topic.Name
		if best != nil {
			if uc := topic.UseCaseByID(best.UseCaseID); uc != nil {
				req.UseCaseName = uc.Name
				req.UseCaseContext = uc.Description
			}
		}
	}
	return s.Validator.Validate(vctx, req)
}

// Latest ambil N evaluation terakhir
func (s *Service) Latest(ctx context.Context, tenant string, limit int) ([]*evaluation.Evaluation, error) {
	return s.Evals.Latest(ctx, tenant, limit)
}

// Get ambil evaluation terbaru untuk satu startup
func (s *Service) Get(ctx context.Context, tenant string, id startup.ID) (*evaluation.Evaluation, error) {
	return s.Evals.LatestByStartup(ctx, tenant, id)
}

// Paginate evaluation dengan filter tier/topic/usable
func (s *Service) Paginate(ctx context.Context, tenant string, page, pageSize int, f evaluation.Filters) (evaluation.PaginatedResult, error) {
	return s.Evals.Paginate(ctx, tenant, page, pageSize, f)
}
