package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory Repo for dev and tests.
type MemoryRepo struct {
	mu         sync.RWMutex
	byEmail    map[string]User
	subsByUser map[string]Subscription
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byEmail:    make(map[string]User),
		subsByUser: make(map[string]Subscription),
	}
}

// AddUser seeds an allow-listed user and returns it.
func (r *MemoryRepo) AddUser(email, fullName string) User {
	r.mu.Lock()
	defer r.mu.Unlock()
	user := User{
		ID:        uuid.NewString(),
		Email:     normalizeEmail(email),
		FullName:  fullName,
		CreatedAt: time.Now().UTC(),
	}
	r.byEmail[user.Email] = user
	return user
}

// AddSubscription seeds a subscription for a user.
func (r *MemoryRepo) AddSubscription(userID, planID, status string) Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub := Subscription{
		ID:               uuid.NewString(),
		UserID:           userID,
		PlanID:           planID,
		Status:           status,
		CurrentPeriodEnd: time.Now().UTC().Add(30 * 24 * time.Hour),
	}
	r.subsByUser[userID] = sub
	return sub
}

func (r *MemoryRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepo) FindSubscriptionByUserID(ctx context.Context, userID string) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return Subscription{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.subsByUser[userID]
	if !ok {
		return Subscription{}, ErrNotFound
	}
	return sub, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ Repo = (*MemoryRepo)(nil)
