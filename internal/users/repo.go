package users

import "context"

// Repo reads allow-list and subscription state. Emails are matched after
// lower-case normalization.
type Repo interface {
	FindByEmail(ctx context.Context, email string) (User, error)
	FindSubscriptionByUserID(ctx context.Context, userID string) (Subscription, error)
}
