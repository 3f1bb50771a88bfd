package memory

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/career-coach/internal/domain/coverletter"
	"github.com/riskibarqy/career-coach/internal/domain/insight"
	"github.com/riskibarqy/career-coach/internal/domain/resume"
	"github.com/riskibarqy/career-coach/internal/domain/user"
	"github.com/riskibarqy/career-coach/internal/usecase"
)

func TestUserRepository_CreateIsUniquePerExternalID(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository()
	var (
		wg        sync.WaitGroup
		created   atomic.Int32
		conflicts atomic.Int32
	)
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(t.Context(), user.Profile{ID: string(rune('a' + i)), ExternalID: "user_1"})
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, usecase.ErrConflict):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if created.Load() != 1 || conflicts.Load() != 7 {
		t.Fatalf("expected 1 create and 7 conflicts, got %d/%d", created.Load(), conflicts.Load())
	}
}

func TestUserRepository_UpdateOnboarding(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository()
	if _, err := repo.Create(t.Context(), user.Profile{ID: "p1", ExternalID: "user_1"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	updated, err := repo.UpdateOnboarding(t.Context(), "p1", user.OnboardingUpdate{
		Industry:   "finance-banking",
		Experience: 3,
		Skills:     []string{"Excel"},
	})
	if err != nil {
		t.Fatalf("UpdateOnboarding error: %v", err)
	}
	if updated.Industry != "finance-banking" || updated.Experience != 3 {
		t.Fatalf("unexpected profile: %+v", updated)
	}

	got, found, _ := repo.GetByExternalID(t.Context(), "user_1")
	if !found || len(got.Skills) != 1 || got.Skills[0] != "Excel" {
		t.Fatalf("unexpected stored profile: %+v", got)
	}

	if _, err := repo.UpdateOnboarding(t.Context(), "missing", user.OnboardingUpdate{}); !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestInsightRepository_ListDueAndReplace(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	repo := NewInsightRepository(
		insight.Insight{ID: "i1", Industry: "tech", NextUpdate: now.Add(-time.Hour)},
		insight.Insight{ID: "i2", Industry: "finance", NextUpdate: now.Add(time.Hour)},
		insight.Insight{ID: "i3", Industry: "health", NextUpdate: now.Add(-2 * time.Hour)},
	)

	due, err := repo.ListDue(t.Context(), now, 10)
	if err != nil {
		t.Fatalf("ListDue error: %v", err)
	}
	if len(due) != 2 || due[0].Industry != "health" || due[1].Industry != "tech" {
		t.Fatalf("unexpected due list: %+v", due)
	}

	replaced, err := repo.Replace(t.Context(), insight.Insight{ID: "other", Industry: "tech", NextUpdate: now.Add(7 * 24 * time.Hour)})
	if err != nil {
		t.Fatalf("Replace error: %v", err)
	}
	if replaced.ID != "i1" {
		t.Fatalf("replace must keep the stored id, got %s", replaced.ID)
	}

	if _, err := repo.Create(t.Context(), insight.Insight{ID: "i4", Industry: "tech"}); !errors.Is(err, usecase.ErrConflict) {
		t.Fatalf("expected conflict on duplicate industry, got %v", err)
	}
}

func TestResumeRepository_UpsertKeepsIdentity(t *testing.T) {
	t.Parallel()

	repo := NewResumeRepository()
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := repo.Upsert(t.Context(), resume.Resume{ID: "r1", UserID: "p1", Content: "v1", CreatedAt: first, UpdatedAt: first}); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	second, err := repo.Upsert(t.Context(), resume.Resume{ID: "r2", UserID: "p1", Content: "v2", UpdatedAt: first.Add(time.Hour)})
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if second.ID != "r1" || second.Content != "v2" || !second.CreatedAt.Equal(first) {
		t.Fatalf("unexpected upserted resume: %+v", second)
	}
}

func TestCoverLetterRepository_OwnerScoped(t *testing.T) {
	t.Parallel()

	repo := NewCoverLetterRepository()
	now := time.Now()
	_, _ = repo.Create(t.Context(), coverletter.CoverLetter{ID: "c1", UserID: "p1", CreatedAt: now})
	_, _ = repo.Create(t.Context(), coverletter.CoverLetter{ID: "c2", UserID: "p1", CreatedAt: now.Add(time.Minute)})
	_, _ = repo.Create(t.Context(), coverletter.CoverLetter{ID: "c3", UserID: "p2", CreatedAt: now})

	if _, found, _ := repo.GetByID(t.Context(), "p2", "c1"); found {
		t.Fatalf("other users must not see the letter")
	}
	items, _ := repo.ListByUserID(t.Context(), "p1")
	if len(items) != 2 || items[0].ID != "c2" {
		t.Fatalf("expected newest first, got %+v", items)
	}
	if deleted, _ := repo.Delete(t.Context(), "p2", "c1"); deleted {
		t.Fatalf("other users must not delete the letter")
	}
	if deleted, _ := repo.Delete(t.Context(), "p1", "c1"); !deleted {
		t.Fatalf("owner delete failed")
	}
}
