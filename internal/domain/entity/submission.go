package entity

import "time"

// SubmissionState is the explicit lock state of a yearbook page.
type SubmissionState string

const (
	// SubmissionOpen means the student has not locked the page.
	SubmissionOpen SubmissionState = "open"
	// SubmissionLocked means the student locked the page; only an admin can reopen it.
	SubmissionLocked SubmissionState = "locked"
)

// SubmissionInput is everything the lock state machine depends on.
type SubmissionInput struct {
	PageSubmitted  bool
	Deadline       *time.Time
	Now            time.Time
	DeadlineExempt bool
}

// SubmissionStatus is the evaluated lock state of a page at a point in time.
type SubmissionStatus struct {
	State          SubmissionState `json:"state"`
	Deadline       *time.Time      `json:"deadline,omitempty"`
	DeadlinePassed bool            `json:"deadline_passed"`
	DeadlineExempt bool            `json:"deadline_exempt"`
	CanEdit        bool            `json:"can_edit"`
	TimeLeft       time.Duration   `json:"-"`
}

// EvaluateSubmission computes the page lock state.
//
// A locked page is never editable. An open page is editable until the
// deadline, unless an admin unlock granted a deadline exemption.
// Deadline expiry never changes State; a timed-out page stays open but read-only.
func EvaluateSubmission(in SubmissionInput) SubmissionStatus {
	status := SubmissionStatus{
		State:          SubmissionOpen,
		Deadline:       in.Deadline,
		DeadlineExempt: in.DeadlineExempt,
	}
	if in.PageSubmitted {
		status.State = SubmissionLocked
	}

	if in.Deadline != nil {
		status.DeadlinePassed = !in.Now.Before(*in.Deadline)
		if !status.DeadlinePassed {
			status.TimeLeft = in.Deadline.Sub(in.Now)
		}
	}

	status.CanEdit = status.State == SubmissionOpen && (!status.DeadlinePassed || in.DeadlineExempt)

	return status
}
