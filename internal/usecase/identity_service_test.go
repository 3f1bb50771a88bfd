package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/career-coach/internal/domain/user"
	usermock "github.com/riskibarqy/career-coach/internal/mocks/domain/user"
	"github.com/stretchr/testify/mock"
)

func TestIdentityService_EnsureProfileExists_ReturnsExistingWithoutLookup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := usermock.NewRepository(t)
	provider := usermock.NewIdentityProvider(t)
	existing := user.Profile{ID: "p1", ExternalID: "user_1", Email: "a@x.io", Name: "Ana"}

	repo.On("GetByExternalID", mock.Anything, "user_1").Return(existing, true, nil).Once()

	got, err := newTestIdentityService(repo, provider).EnsureProfileExists(ctx, "user_1")
	if err != nil {
		t.Fatalf("EnsureProfileExists error: %v", err)
	}
	if got.ID != "p1" {
		t.Fatalf("unexpected profile: %+v", got)
	}
	provider.AssertNotCalled(t, "FetchUser", mock.Anything, mock.Anything)
}

func TestIdentityService_EnsureProfileExists_CreatesWithDefaults(t *testing.T) {
	t.Parallel()

	repo := usermock.NewRepository(t)
	provider := usermock.NewIdentityProvider(t)

	repo.On("GetByExternalID", mock.Anything, "user_2").Return(user.Profile{}, false, nil).Once()
	provider.On("FetchUser", mock.Anything, "user_2").
		Return(user.ExternalIdentity{ExternalID: "user_2", ImageURL: ""}, nil).
		Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p user.Profile) bool {
		return p.ExternalID == "user_2" &&
			p.Email == "unknown@example.com" &&
			p.Name == "Unnamed User" &&
			p.ImageURL == "" &&
			p.Industry == "" &&
			p.ID != "" &&
			p.CreatedAt.Equal(fixedNow)
	})).Return(func(_ context.Context, p user.Profile) (user.Profile, error) {
		return p, nil
	}).Once()

	got, err := newTestIdentityService(repo, provider).EnsureProfileExists(context.Background(), "user_2")
	if err != nil {
		t.Fatalf("EnsureProfileExists error: %v", err)
	}
	if got.Email != user.DefaultEmail || got.Name != user.DefaultName {
		t.Fatalf("expected placeholder identity, got %+v", got)
	}
	if got.Onboarded() {
		t.Fatalf("new profile must not be onboarded")
	}
}

func TestIdentityService_EnsureProfileExists_ProviderFailure(t *testing.T) {
	t.Parallel()

	repo := usermock.NewRepository(t)
	provider := usermock.NewIdentityProvider(t)

	repo.On("GetByExternalID", mock.Anything, "user_3").Return(user.Profile{}, false, nil).Once()
	provider.On("FetchUser", mock.Anything, "user_3").Return(user.ExternalIdentity{}, errors.New("status 404")).Once()

	_, err := newTestIdentityService(repo, provider).EnsureProfileExists(context.Background(), "user_3")
	if !errors.Is(err, ErrIdentityLookup) {
		t.Fatalf("expected identity lookup error, got %v", err)
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIdentityService_EnsureProfileExists_ConflictReturnsWinner(t *testing.T) {
	t.Parallel()

	repo := usermock.NewRepository(t)
	provider := usermock.NewIdentityProvider(t)
	winner := user.Profile{ID: "winner", ExternalID: "user_4", Email: "w@x.io"}

	repo.On("GetByExternalID", mock.Anything, "user_4").Return(user.Profile{}, false, nil).Once()
	provider.On("FetchUser", mock.Anything, "user_4").Return(user.ExternalIdentity{Email: "w@x.io"}, nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(user.Profile{}, ErrConflict).Once()
	repo.On("GetByExternalID", mock.Anything, "user_4").Return(winner, true, nil).Once()

	got, err := newTestIdentityService(repo, provider).EnsureProfileExists(context.Background(), "user_4")
	if err != nil {
		t.Fatalf("EnsureProfileExists error: %v", err)
	}
	if got.ID != "winner" {
		t.Fatalf("expected winner row, got %+v", got)
	}
}

func TestIdentityService_EnsureProfileExists_RejectsEmptyID(t *testing.T) {
	t.Parallel()

	svc := newTestIdentityService(usermock.NewRepository(t), usermock.NewIdentityProvider(t))
	if _, err := svc.EnsureProfileExists(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestIdentityService_EnsureProfileExists_ConcurrentFirstRequests(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	provider := &fakeProvider{identity: user.ExternalIdentity{Email: "c@x.io", Name: "Cy"}, delay: 5 * time.Millisecond}
	svc := newTestIdentityService(repo, provider)

	const callers = 10
	ids := make(chan string, callers)
	var wg sync.WaitGroup
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := svc.EnsureProfileExists(context.Background(), "user_race")
			if err != nil {
				t.Errorf("EnsureProfileExists error: %v", err)
				return
			}
			ids <- p.ID
		}()
	}
	wg.Wait()
	close(ids)

	var first string
	for id := range ids {
		if first == "" {
			first = id
		}
		if id != first {
			t.Fatalf("callers observed different profiles: %s vs %s", first, id)
		}
	}
	if repo.creates != 1 {
		t.Fatalf("expected exactly one stored profile, got %d", repo.creates)
	}
}
