package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/career-coach/internal/domain/user"
	qb "github.com/riskibarqy/career-coach/internal/platform/querybuilder"
	"github.com/riskibarqy/career-coach/internal/usecase"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (user.Profile, bool, error) {
	query, args, err := qb.Select(userColumns...).
		From(usersTable).
		Where(qb.Eq("clerk_user_id", externalID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return user.Profile{}, false, fmt.Errorf("build get user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.Profile{}, false, nil
		}
		return user.Profile{}, false, fmt.Errorf("get user by clerk id: %w", err)
	}
	return userFromRow(row), true, nil
}

func (r *UserRepository) Create(ctx context.Context, profile user.Profile) (user.Profile, error) {
	query, args, err := qb.InsertModel(usersTable, userInsertFromProfile(profile)).
		Returning(userColumns...).
		ToSQL()
	if err != nil {
		return user.Profile{}, fmt.Errorf("build insert user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err) {
			return user.Profile{}, fmt.Errorf("%w: user with clerk id %s: %v", usecase.ErrConflict, profile.ExternalID, err)
		}
		return user.Profile{}, fmt.Errorf("insert user: %w", err)
	}
	return userFromRow(row), nil
}

// updateOnboardingQuery writes the four onboarding fields exactly as given.
func updateOnboardingQuery(profileID string, update user.OnboardingUpdate) (string, []any, error) {
	return qb.Update(usersTable).
		Set("industry", update.Industry).
		Set("experience", update.Experience).
		Set("bio", update.Bio).
		Set("skills", stringArray(update.Skills)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", profileID)).
		Returning(userColumns...).
		ToSQL()
}

func (r *UserRepository) UpdateOnboarding(ctx context.Context, profileID string, update user.OnboardingUpdate) (user.Profile, error) {
	query, args, err := updateOnboardingQuery(profileID, update)
	if err != nil {
		return user.Profile{}, fmt.Errorf("build update user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.Profile{}, fmt.Errorf("%w: user %s", usecase.ErrNotFound, profileID)
		}
		return user.Profile{}, fmt.Errorf("update user onboarding: %w", err)
	}
	return userFromRow(row), nil
}
