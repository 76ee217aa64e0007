package validation

import (
	"fmt"
	"time"

	"poll-service/internal/models"
)

// CheckAccess enforces the access-code, active-flag and voting-window
// rules. Every rule is evaluated independently against the same captured
// now, and all failures are returned together. nil means the poll is
// open to this request.
func CheckAccess(poll *models.Poll, suppliedCode string, now time.Time) *SubmissionError {
	var errs []string
	accessDenied := false

	if !poll.IsPublic {
		if suppliedCode == "" {
			errs = append(errs, "access code is required for this poll")
			accessDenied = true
		} else if poll.AccessCode != "" && suppliedCode != poll.AccessCode {
			errs = append(errs, "invalid access code")
			accessDenied = true
		}
	}

	if !poll.IsActive {
		errs = append(errs, "poll is not active")
	}
	if now.Before(poll.StartTime) {
		errs = append(errs, "poll has not started yet")
	}
	if poll.EndTime != nil && now.After(*poll.EndTime) {
		errs = append(errs, "poll has ended")
	}

	if len(errs) == 0 {
		return nil
	}
	return &SubmissionError{Errors: errs, AccessDenied: accessDenied}
}

// CheckResubmission applies the duplicate and cooldown policies for a
// participant identified by email. Submissions without an email are
// never deduplicated; callers skip this check for them. hasPrior reports
// whether any prior submission exists for (poll, email) and
// lastSubmittedAt is the most recent one (nil if none). The two gates
// are independent: cooldown applies even when multiple votes are
// allowed.
func CheckResubmission(poll *models.Poll, hasPrior bool, lastSubmittedAt *time.Time, now time.Time) []string {
	var errs []string

	if !poll.IsMultipleVotesAllowed && hasPrior {
		errs = append(errs, "you have already submitted to this poll")
	}

	if poll.VotingCooldownMinutes > 0 && lastSubmittedAt != nil {
		cooldown := time.Duration(poll.VotingCooldownMinutes) * time.Minute
		elapsed := now.Sub(*lastSubmittedAt)
		if elapsed < cooldown {
			remaining := poll.VotingCooldownMinutes - int(elapsed.Minutes())
			errs = append(errs, fmt.Sprintf("please wait %d more minute(s) before voting again", remaining))
		}
	}

	return errs
}
