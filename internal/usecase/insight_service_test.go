package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/career-coach/internal/domain/insight"
	insightmock "github.com/riskibarqy/career-coach/internal/mocks/domain/insight"
	"github.com/stretchr/testify/mock"
)

func TestInsightService_GetOrCreate_ReturnsExistingEvenWhenStale(t *testing.T) {
	t.Parallel()

	repo := insightmock.NewRepository(t)
	gen := insightmock.NewGenerator(t)
	stale := insight.Insight{ID: "i1", Industry: "tech-software", NextUpdate: fixedNow.Add(-48 * time.Hour)}

	repo.On("GetByIndustry", mock.Anything, "tech-software").Return(stale, true, nil).Once()

	got, err := newTestInsightService(repo, gen).GetOrCreate(context.Background(), "tech-software")
	if err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}
	if got.ID != "i1" {
		t.Fatalf("expected stored insight, got %+v", got)
	}
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestInsightService_GetOrCreate_GeneratesAndStamps(t *testing.T) {
	t.Parallel()

	repo := insightmock.NewRepository(t)
	gen := insightmock.NewGenerator(t)

	repo.On("GetByIndustry", mock.Anything, "tech-software").Return(insight.Insight{}, false, nil).Twice()
	gen.On("Generate", mock.Anything, "tech-software").Return(validPayload(), nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).
		Return(func(_ context.Context, item insight.Insight) (insight.Insight, error) { return item, nil }).
		Once()

	got, err := newTestInsightService(repo, gen).GetOrCreate(context.Background(), " tech-software ")
	if err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}
	if got.Industry != "tech-software" {
		t.Fatalf("unexpected industry: %q", got.Industry)
	}
	if got.DemandLevel != insight.DemandHigh || got.MarketOutlook != insight.OutlookPositive {
		t.Fatalf("expected upper-cased enums, got %s/%s", got.DemandLevel, got.MarketOutlook)
	}
	if !got.LastUpdated.Equal(fixedNow) || !got.NextUpdate.Equal(fixedNow.Add(7*24*time.Hour)) {
		t.Fatalf("unexpected timestamps: %s %s", got.LastUpdated, got.NextUpdate)
	}
	if got.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestInsightService_GetOrCreate_GeneratorFailureStoresNothing(t *testing.T) {
	t.Parallel()

	repo := insightmock.NewRepository(t)
	gen := insightmock.NewGenerator(t)

	repo.On("GetByIndustry", mock.Anything, "tech-software").Return(insight.Insight{}, false, nil).Twice()
	gen.On("Generate", mock.Anything, "tech-software").Return(insight.Generated{}, errors.New("model timeout")).Once()

	_, err := newTestInsightService(repo, gen).GetOrCreate(context.Background(), "tech-software")
	if !errors.Is(err, ErrInsightGeneration) {
		t.Fatalf("expected generation error, got %v", err)
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInsightService_GetOrCreate_RejectsUnknownDemandLevel(t *testing.T) {
	t.Parallel()

	payload := validPayload()
	payload.DemandLevel = "extreme"
	repo := newFakeInsightRepo()
	svc := newTestInsightService(repo, &fakeGenerator{payload: payload})

	if _, err := svc.GetOrCreate(context.Background(), "tech-software"); !errors.Is(err, ErrInsightGeneration) {
		t.Fatalf("expected generation error, got %v", err)
	}
	if repo.count() != 0 {
		t.Fatalf("nothing must be stored for an invalid payload")
	}
}

func TestInsightService_GetOrCreate_ConflictReturnsWinner(t *testing.T) {
	t.Parallel()

	repo := insightmock.NewRepository(t)
	gen := insightmock.NewGenerator(t)
	winner := insight.Insight{ID: "winner", Industry: "tech-software"}

	repo.On("GetByIndustry", mock.Anything, "tech-software").Return(insight.Insight{}, false, nil).Twice()
	gen.On("Generate", mock.Anything, "tech-software").Return(validPayload(), nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(insight.Insight{}, ErrConflict).Once()
	repo.On("GetByIndustry", mock.Anything, "tech-software").Return(winner, true, nil).Once()

	got, err := newTestInsightService(repo, gen).GetOrCreate(context.Background(), "tech-software")
	if err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}
	if got.ID != "winner" {
		t.Fatalf("expected winner insight, got %+v", got)
	}
}

func TestInsightService_GetOrCreate_RejectsEmptyIndustry(t *testing.T) {
	t.Parallel()

	svc := newTestInsightService(insightmock.NewRepository(t), insightmock.NewGenerator(t))
	if _, err := svc.GetOrCreate(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestInsightService_GetOrCreate_ConcurrentMissesStoreOnce(t *testing.T) {
	t.Parallel()

	repo := newFakeInsightRepo()
	gen := &fakeGenerator{payload: validPayload(), delay: 10 * time.Millisecond}
	svc := newTestInsightService(repo, gen)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.GetOrCreate(context.Background(), "healthcare"); err != nil {
				t.Errorf("GetOrCreate error: %v", err)
			}
		}()
	}
	wg.Wait()

	if repo.count() != 1 {
		t.Fatalf("expected one stored insight, got %d", repo.count())
	}
}

func TestInsightService_GetOrCreate_RereadFailureSkipsGeneration(t *testing.T) {
	t.Parallel()

	repo := insightmock.NewRepository(t)
	gen := insightmock.NewGenerator(t)
	dbErr := errors.New("connection reset")

	repo.On("GetByIndustry", mock.Anything, "Finance").Return(insight.Insight{}, false, nil).Once()
	repo.On("GetByIndustry", mock.Anything, "Finance").Return(insight.Insight{}, false, dbErr).Once()

	_, err := newTestInsightService(repo, gen).GetOrCreate(context.Background(), "Finance")
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected re-read error, got %v", err)
	}
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

type gatedGenerator struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedGenerator) Generate(ctx context.Context, _ string) (insight.Generated, error) {
	g.once.Do(func() { close(g.started) })
	<-g.release
	if err := ctx.Err(); err != nil {
		return insight.Generated{}, err
	}
	return validPayload(), nil
}

func TestInsightService_GetOrCreate_CanceledCallerDoesNotFailOthers(t *testing.T) {
	t.Parallel()

	repo := newFakeInsightRepo()
	gen := &gatedGenerator{started: make(chan struct{}), release: make(chan struct{})}
	svc := newTestInsightService(repo, gen)

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.GetOrCreate(firstCtx, "Finance")
		firstErr <- err
	}()
	<-gen.started

	secondErr := make(chan error, 1)
	go func() {
		_, err := svc.GetOrCreate(context.Background(), "Finance")
		secondErr <- err
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled caller to see its cancellation, got %v", err)
	}
	close(gen.release)

	if err := <-secondErr; err != nil {
		t.Fatalf("caller with live context failed: %v", err)
	}
	if _, ok := repo.get("Finance"); !ok {
		t.Fatalf("expected shared generation to be stored")
	}
}
