package usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"resume-forge/internal/users"
)

// Plan ids whose holders are exempt from the ledger limit.
var premiumPlanIDs = map[string]struct{}{
	"pro":        {},
	"pro_annual": {},
}

// Subscription statuses that still count as an active plan. past_due keeps
// access during the payment grace window.
var activeLikeStatuses = map[string]struct{}{
	"active":   {},
	"trialing": {},
	"past_due": {},
}

// ErrLimitReached signals the free-tier quota is exhausted.
var ErrLimitReached = errors.New("generation limit reached")

// Service enforces the ledger-based quota with plan overrides.
//
// Known limitation: CheckLimit and Record are separate calls, so two
// concurrent requests from the same identity at the limit boundary can both
// pass the check before either records. The overrun is bounded at one and
// accepted; the ledger itself is append-only so no other race exists.
type Service struct {
	Repo  Repo
	Users users.Repo
}

// NewService constructs a Service.
func NewService(repo Repo, usersRepo users.Repo) *Service {
	return &Service{Repo: repo, Users: usersRepo}
}

// ResolvePlan classifies an identity by subscription. Absence of a user or
// subscription is simply non-exempt, not an error.
func (s *Service) ResolvePlan(ctx context.Context, email string) (PlanStatus, error) {
	user, err := s.Users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return PlanStatus{}, nil
		}
		return PlanStatus{}, fmt.Errorf("resolve plan: %w", err)
	}

	sub, err := s.Users.FindSubscriptionByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return PlanStatus{}, nil
		}
		return PlanStatus{}, fmt.Errorf("resolve plan: %w", err)
	}

	status := PlanStatus{PlanID: sub.PlanID, Status: sub.Status}
	if _, premium := premiumPlanIDs[sub.PlanID]; !premium {
		return status, nil
	}
	if _, active := activeLikeStatuses[sub.Status]; !active {
		return status, nil
	}
	status.Exempt = true
	return status, nil
}

// CheckLimit computes the quota snapshot for an identity. The count always
// comes from the ledger at call time, never a cached counter.
func (s *Service) CheckLimit(ctx context.Context, email string) (Status, error) {
	plan, err := s.ResolvePlan(ctx, email)
	if err != nil {
		return Status{}, err
	}
	if plan.Exempt {
		return Status{CanGenerate: true, Limit: FreeLimit, Exempt: true}, nil
	}

	count, err := s.Repo.CountByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return Status{}, fmt.Errorf("check limit: %w", err)
	}
	return Status{
		CanGenerate: count < FreeLimit,
		Used:        count,
		Limit:       FreeLimit,
	}, nil
}

// Record appends one ledger row. Callers must not invoke it for exempt
// identities; the ledger stays a free-tier-only count.
func (s *Service) Record(ctx context.Context, email, inputType string, inputSize int, templateID string) error {
	rec := Record{
		ID:         uuid.NewString(),
		Email:      normalizeEmail(email),
		InputType:  inputType,
		InputSize:  inputSize,
		TemplateID: templateID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Append(ctx, rec); err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

// IsAllowed reports whether the identity is on the allow-list at all,
// independent of the numeric quota.
func (s *Service) IsAllowed(ctx context.Context, email string) (bool, error) {
	_, err := s.Users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// History returns the identity's ledger rows, oldest first.
func (s *Service) History(ctx context.Context, email string) ([]Record, error) {
	return s.Repo.ListByEmail(ctx, normalizeEmail(email))
}
