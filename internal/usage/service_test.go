package usage

import (
	"context"
	"testing"

	"resume-forge/internal/users"
)

func seededService(t *testing.T) (*Service, *users.MemoryRepo) {
	t.Helper()
	usersRepo := users.NewMemoryRepo()
	return NewService(NewMemoryRepo(), usersRepo), usersRepo
}

func TestCheckLimitCountsLedgerRows(t *testing.T) {
	svc, usersRepo := seededService(t)
	usersRepo.AddUser("jordan.lee@example.com", "Jordan Lee")
	ctx := context.Background()

	status, err := svc.CheckLimit(ctx, "jordan.lee@example.com")
	if err != nil {
		t.Fatalf("CheckLimit: %v", err)
	}
	if !status.CanGenerate || status.Used != 0 || status.Limit != FreeLimit {
		t.Fatalf("fresh identity status = %+v", status)
	}

	if err := svc.Record(ctx, "jordan.lee@example.com", InputTypeText, 120, "jake"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	status, err = svc.CheckLimit(ctx, "jordan.lee@example.com")
	if err != nil {
		t.Fatalf("CheckLimit: %v", err)
	}
	if !status.CanGenerate || status.Used != 1 {
		t.Fatalf("status after one use = %+v", status)
	}

	if err := svc.Record(ctx, "jordan.lee@example.com", InputTypePDF, 4096, "classic"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	status, err = svc.CheckLimit(ctx, "jordan.lee@example.com")
	if err != nil {
		t.Fatalf("CheckLimit: %v", err)
	}
	if status.CanGenerate {
		t.Fatalf("limit should be reached at %d uses: %+v", FreeLimit, status)
	}
	if status.Used != FreeLimit {
		t.Fatalf("used = %d, want %d", status.Used, FreeLimit)
	}
}

func TestCheckLimitNormalizesEmail(t *testing.T) {
	svc, usersRepo := seededService(t)
	usersRepo.AddUser("jordan.lee@example.com", "Jordan Lee")
	ctx := context.Background()

	if err := svc.Record(ctx, "  Jordan.Lee@Example.COM ", InputTypeText, 10, "jake"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	status, err := svc.CheckLimit(ctx, "jordan.lee@example.com")
	if err != nil {
		t.Fatalf("CheckLimit: %v", err)
	}
	if status.Used != 1 {
		t.Fatalf("case variants must share one ledger, used = %d", status.Used)
	}
}

func TestExemptPlanBypassesLimit(t *testing.T) {
	svc, usersRepo := seededService(t)
	user := usersRepo.AddUser("pro@example.com", "Pro User")
	usersRepo.AddSubscription(user.ID, "pro", "active")
	ctx := context.Background()

	// Exempt identities never write ledger rows, so even a ledger past the
	// limit is irrelevant.
	status, err := svc.CheckLimit(ctx, "pro@example.com")
	if err != nil {
		t.Fatalf("CheckLimit: %v", err)
	}
	if !status.Exempt || !status.CanGenerate {
		t.Fatalf("premium status = %+v", status)
	}
	if status.Used != 0 {
		t.Fatalf("exempt snapshot should not count ledger rows, used = %d", status.Used)
	}
}

func TestResolvePlanClassification(t *testing.T) {
	cases := []struct {
		name       string
		planID     string
		planStatus string
		wantExempt bool
	}{
		{"pro active", "pro", "active", true},
		{"pro annual trialing", "pro_annual", "trialing", true},
		{"pro past_due grace", "pro", "past_due", true},
		{"pro canceled", "pro", "canceled", false},
		{"free plan active", "free", "active", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, usersRepo := seededService(t)
			user := usersRepo.AddUser("plan@example.com", "")
			usersRepo.AddSubscription(user.ID, tc.planID, tc.planStatus)

			plan, err := svc.ResolvePlan(context.Background(), "plan@example.com")
			if err != nil {
				t.Fatalf("ResolvePlan: %v", err)
			}
			if plan.Exempt != tc.wantExempt {
				t.Fatalf("exempt = %t, want %t (%+v)", plan.Exempt, tc.wantExempt, plan)
			}
		})
	}
}

func TestResolvePlanAbsenceIsNotError(t *testing.T) {
	svc, _ := seededService(t)

	plan, err := svc.ResolvePlan(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("missing user must not error: %v", err)
	}
	if plan.Exempt {
		t.Fatalf("missing user must not be exempt")
	}
}

func TestIsAllowed(t *testing.T) {
	svc, usersRepo := seededService(t)
	usersRepo.AddUser("listed@example.com", "")
	ctx := context.Background()

	allowed, err := svc.IsAllowed(ctx, "listed@example.com")
	if err != nil || !allowed {
		t.Fatalf("listed identity: allowed=%t err=%v", allowed, err)
	}
	allowed, err = svc.IsAllowed(ctx, "stranger@example.com")
	if err != nil || allowed {
		t.Fatalf("unlisted identity: allowed=%t err=%v", allowed, err)
	}
}

func TestHistoryReturnsOldestFirst(t *testing.T) {
	svc, usersRepo := seededService(t)
	usersRepo.AddUser("jordan.lee@example.com", "")
	ctx := context.Background()

	if err := svc.Record(ctx, "jordan.lee@example.com", InputTypeText, 10, "jake"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := svc.Record(ctx, "jordan.lee@example.com", InputTypePDF, 999, "classic"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	records, err := svc.History(ctx, "jordan.lee@example.com")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].TemplateID != "jake" || records[1].TemplateID != "classic" {
		t.Fatalf("unexpected order: %+v", records)
	}
	if records[0].ID == records[1].ID || records[0].ID == "" {
		t.Fatalf("records need distinct non-empty ids")
	}
}
