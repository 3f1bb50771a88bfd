package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/career-coach/internal/domain/coverletter"
	"github.com/riskibarqy/career-coach/internal/domain/insight"
	"github.com/riskibarqy/career-coach/internal/domain/resume"
	"github.com/riskibarqy/career-coach/internal/domain/user"
	"github.com/riskibarqy/career-coach/internal/platform/logging"
)

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

type sequentialIDs struct{ n atomic.Int64 }

func (g *sequentialIDs) NewID() (string, error) {
	return fmt.Sprintf("id-%03d", g.n.Add(1)), nil
}

type fakeUserRepo struct {
	mu        sync.Mutex
	byExt     map[string]user.Profile
	getErr    error
	updateErr error
	creates   int
}

func newFakeUserRepo(seed ...user.Profile) *fakeUserRepo {
	r := &fakeUserRepo{byExt: make(map[string]user.Profile)}
	for _, p := range seed {
		r.byExt[p.ExternalID] = p
	}
	return r
}

func (r *fakeUserRepo) GetByExternalID(_ context.Context, externalID string) (user.Profile, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return user.Profile{}, false, r.getErr
	}
	p, ok := r.byExt[externalID]
	return p, ok, nil
}

func (r *fakeUserRepo) Create(_ context.Context, p user.Profile) (user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byExt[p.ExternalID]; ok {
		return user.Profile{}, fmt.Errorf("%w: duplicate", ErrConflict)
	}
	r.creates++
	r.byExt[p.ExternalID] = p
	return p, nil
}

func (r *fakeUserRepo) UpdateOnboarding(_ context.Context, profileID string, u user.OnboardingUpdate) (user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return user.Profile{}, r.updateErr
	}
	for ext, p := range r.byExt {
		if p.ID != profileID {
			continue
		}
		p.Industry = u.Industry
		p.Experience = u.Experience
		p.Bio = u.Bio
		p.Skills = u.Skills
		r.byExt[ext] = p
		return p, nil
	}
	return user.Profile{}, ErrNotFound
}

func (r *fakeUserRepo) profile(externalID string) (user.Profile, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byExt[externalID]
	return p, ok
}

type fakeProvider struct {
	calls    atomic.Int32
	identity user.ExternalIdentity
	err      error
	delay    time.Duration
}

func (p *fakeProvider) FetchUser(_ context.Context, externalID string) (user.ExternalIdentity, error) {
	p.calls.Add(1)
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	if p.err != nil {
		return user.ExternalIdentity{}, p.err
	}
	out := p.identity
	out.ExternalID = externalID
	return out, nil
}

type fakeInsightRepo struct {
	mu         sync.Mutex
	byIndustry map[string]insight.Insight
	createErr  error
	replaceErr map[string]error
}

func newFakeInsightRepo(seed ...insight.Insight) *fakeInsightRepo {
	r := &fakeInsightRepo{byIndustry: make(map[string]insight.Insight), replaceErr: make(map[string]error)}
	for _, item := range seed {
		r.byIndustry[item.Industry] = item
	}
	return r
}

func (r *fakeInsightRepo) GetByIndustry(_ context.Context, industry string) (insight.Insight, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byIndustry[industry]
	return item, ok, nil
}

func (r *fakeInsightRepo) Create(_ context.Context, item insight.Insight) (insight.Insight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return insight.Insight{}, r.createErr
	}
	if _, ok := r.byIndustry[item.Industry]; ok {
		return insight.Insight{}, ErrConflict
	}
	r.byIndustry[item.Industry] = item
	return item, nil
}

func (r *fakeInsightRepo) ListDue(_ context.Context, now time.Time, limit int) ([]insight.Insight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []insight.Insight
	for _, item := range r.byIndustry {
		if item.Due(now) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Industry < out[j].Industry })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeInsightRepo) Replace(_ context.Context, item insight.Insight) (insight.Insight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.replaceErr[item.Industry]; err != nil {
		return insight.Insight{}, err
	}
	r.byIndustry[item.Industry] = item
	return item, nil
}

func (r *fakeInsightRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byIndustry)
}

func (r *fakeInsightRepo) get(industry string) (insight.Insight, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byIndustry[industry]
	return item, ok
}

type fakeGenerator struct {
	calls   atomic.Int32
	payload insight.Generated
	errFor  map[string]error
	delay   time.Duration
}

func validPayload() insight.Generated {
	return insight.Generated{
		SalaryRanges:      []insight.SalaryRange{{Role: "Engineer", Min: 80000, Max: 150000, Median: 110000, Location: "US"}},
		GrowthRate:        8.5,
		DemandLevel:       "high",
		TopSkills:         []string{"Go", "SQL"},
		MarketOutlook:     "positive",
		KeyTrends:         []string{"AI adoption"},
		RecommendedSkills: []string{"Kubernetes"},
	}
}

func (g *fakeGenerator) Generate(_ context.Context, industry string) (insight.Generated, error) {
	g.calls.Add(1)
	if g.delay > 0 {
		time.Sleep(g.delay)
	}
	if err := g.errFor[industry]; err != nil {
		return insight.Generated{}, err
	}
	return g.payload, nil
}

type fakeViews struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (v *fakeViews) Invalidate(_ context.Context, path string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.paths = append(v.paths, path)
	return v.err
}

type observedStep struct {
	step ProfileStep
	err  error
}

type recordingObserver struct {
	mu    sync.Mutex
	steps []observedStep
}

func (o *recordingObserver) StepCompleted(_ context.Context, step ProfileStep, _ string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.steps = append(o.steps, observedStep{step: step})
}

func (o *recordingObserver) StepFailed(_ context.Context, step ProfileStep, _ string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.steps = append(o.steps, observedStep{step: step, err: err})
}

func (o *recordingObserver) failures() []observedStep {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []observedStep
	for _, s := range o.steps {
		if s.err != nil {
			out = append(out, s)
		}
	}
	return out
}

type fakeResumeRepo struct {
	mu    sync.Mutex
	items map[string]resume.Resume
}

func (r *fakeResumeRepo) GetByUserID(_ context.Context, userID string) (resume.Resume, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[userID]
	return item, ok, nil
}

func (r *fakeResumeRepo) Upsert(_ context.Context, item resume.Resume) (resume.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.items == nil {
		r.items = make(map[string]resume.Resume)
	}
	if current, ok := r.items[item.UserID]; ok {
		item.ID = current.ID
		item.CreatedAt = current.CreatedAt
	}
	r.items[item.UserID] = item
	return item, nil
}

type fakeLetterRepo struct {
	mu    sync.Mutex
	items []coverletter.CoverLetter
}

func (r *fakeLetterRepo) Create(_ context.Context, item coverletter.CoverLetter) (coverletter.CoverLetter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item)
	return item, nil
}

func (r *fakeLetterRepo) GetByID(_ context.Context, userID, id string) (coverletter.CoverLetter, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ID == id && item.UserID == userID {
			return item, true, nil
		}
	}
	return coverletter.CoverLetter{}, false, nil
}

func (r *fakeLetterRepo) ListByUserID(_ context.Context, userID string) ([]coverletter.CoverLetter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []coverletter.CoverLetter
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeLetterRepo) Delete(_ context.Context, userID, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.ID == id && item.UserID == userID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newTestInsightService(repo insight.Repository, gen insight.Generator) *InsightService {
	svc := NewInsightService(repo, gen, &sequentialIDs{}, logging.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func newTestIdentityService(repo user.Repository, provider user.IdentityProvider) *IdentityService {
	svc := NewIdentityService(repo, provider, &sequentialIDs{}, logging.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}
