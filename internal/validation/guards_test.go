package validation

import (
	"strings"
	"testing"
	"time"

	"poll-service/internal/models"
)

func basePoll() *models.Poll {
	return &models.Poll{
		ID:        "poll-1",
		Title:     "Team lunch",
		IsActive:  true,
		IsPublic:  true,
		StartTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCheckAccessTiming(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	testCases := []struct {
		name    string
		mutate  func(p *models.Poll)
		wantErr string
	}{
		{
			name:    "open poll passes",
			mutate:  func(p *models.Poll) {},
			wantErr: "",
		},
		{
			name:    "inactive poll",
			mutate:  func(p *models.Poll) { p.IsActive = false },
			wantErr: "poll is not active",
		},
		{
			name:    "not started yet",
			mutate:  func(p *models.Poll) { p.StartTime = future },
			wantErr: "poll has not started yet",
		},
		{
			name:    "ended",
			mutate:  func(p *models.Poll) { p.EndTime = &past },
			wantErr: "poll has ended",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			poll := basePoll()
			tc.mutate(poll)

			err := CheckAccess(poll, "", now)
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tc.wantErr, err.Error())
			}
			if err.AccessDenied {
				t.Errorf("Timing failures must not be marked as access denied")
			}
		})
	}
}

func TestCheckAccessCollectsAllFailures(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	poll := basePoll()
	poll.IsActive = false
	poll.StartTime = now.Add(time.Hour)
	poll.IsPublic = false
	poll.AccessCode = "ABC"

	err := CheckAccess(poll, "wrong", now)
	if err == nil {
		t.Fatal("Expected aggregated error, got nil")
	}
	if len(err.Errors) != 3 {
		t.Errorf("Expected 3 collected failures, got %d: %v", len(err.Errors), err.Errors)
	}
	if !err.AccessDenied {
		t.Errorf("Expected AccessDenied to be set when the code mismatches")
	}
}

func TestCheckAccessCode(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name         string
		stored       string
		supplied     string
		wantDenied   bool
		wantContains string
	}{
		{"matching code passes", "ABC", "ABC", false, ""},
		{"case sensitive mismatch", "ABC", "abc", true, "invalid access code"},
		{"missing code", "ABC", "", true, "access code is required"},
		{"private poll with no stored code still requires one", "", "", true, "access code is required"},
		{"private poll with no stored code accepts any", "", "anything", false, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			poll := basePoll()
			poll.IsPublic = false
			poll.AccessCode = tc.stored

			err := CheckAccess(poll, tc.supplied, now)
			if !tc.wantDenied {
				if err != nil {
					t.Errorf("Expected success, got %v", err)
				}
				return
			}
			if err == nil || !err.AccessDenied {
				t.Fatalf("Expected access denied, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantContains) {
				t.Errorf("Expected error containing %q, got %q", tc.wantContains, err.Error())
			}
		})
	}
}

func TestCheckAccessCodeIndependentOfTiming(t *testing.T) {
	// A correct access code does not rescue a closed window, and a wrong
	// one does not suppress the timing failure.
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	poll := basePoll()
	poll.IsPublic = false
	poll.AccessCode = "ABC"
	poll.StartTime = now.Add(time.Hour)

	err := CheckAccess(poll, "ABC", now)
	if err == nil || !strings.Contains(err.Error(), "not started") {
		t.Errorf("Expected timing failure with correct code, got %v", err)
	}
	if err != nil && err.AccessDenied {
		t.Errorf("Correct code must not mark the aggregate access denied")
	}
}

func TestCheckResubmissionDuplicate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	poll := basePoll()
	poll.IsMultipleVotesAllowed = false

	errs := CheckResubmission(poll, true, nil, now)
	if len(errs) != 1 || !strings.Contains(errs[0], "already submitted") {
		t.Errorf("Expected already-submitted error, got %v", errs)
	}

	if errs := CheckResubmission(poll, false, nil, now); len(errs) != 0 {
		t.Errorf("First submission must pass, got %v", errs)
	}

	poll.IsMultipleVotesAllowed = true
	if errs := CheckResubmission(poll, true, nil, now); len(errs) != 0 {
		t.Errorf("Repeat submission allowed when multiple votes enabled, got %v", errs)
	}
}

func TestCheckResubmissionCooldown(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	poll := basePoll()
	poll.IsMultipleVotesAllowed = true
	poll.VotingCooldownMinutes = 10

	testCases := []struct {
		name     string
		elapsed  time.Duration
		wantWait string
		wantErrs int
	}{
		{"within cooldown", 5 * time.Minute, "5 more minute", 1},
		{"just inside cooldown", 9*time.Minute + 30*time.Second, "1 more minute", 1},
		{"past cooldown", 11 * time.Minute, "", 0},
		{"exactly at cooldown", 10 * time.Minute, "", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			last := now.Add(-tc.elapsed)
			errs := CheckResubmission(poll, true, &last, now)
			if len(errs) != tc.wantErrs {
				t.Fatalf("Expected %d errors, got %v", tc.wantErrs, errs)
			}
			if tc.wantWait != "" && !strings.Contains(errs[0], tc.wantWait) {
				t.Errorf("Expected remaining wait %q in %q", tc.wantWait, errs[0])
			}
		})
	}
}

func TestCheckResubmissionBothGates(t *testing.T) {
	// Duplicate and cooldown are independent; both fire together.
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	poll := basePoll()
	poll.IsMultipleVotesAllowed = false
	poll.VotingCooldownMinutes = 10
	last := now.Add(-3 * time.Minute)

	errs := CheckResubmission(poll, true, &last, now)
	if len(errs) != 2 {
		t.Errorf("Expected both gates to fire, got %v", errs)
	}
}
