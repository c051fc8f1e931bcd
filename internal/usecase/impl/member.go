package impl

import (
	"context"
	"time"

	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/repository"

	"github.com/pkg/errors"
)

// member is an authenticated student resolved to their roster entry.
type member struct {
	scope    entity.ScopeID
	user     *entity.User
	deadline *time.Time
}

func (m *member) status(now time.Time) entity.SubmissionStatus {
	return m.user.SubmissionStatus(m.deadline, now)
}

// resolveMember maps an email to its scope, roster entry and the scope deadline.
func resolveMember(ctx context.Context, repoFactory repository.RepositoryFactory, email string) (*member, error) {
	scope, err := findInvitationScope(ctx, repoFactory.InvitationRepo(), email)
	if err != nil {
		return nil, err
	}

	user, err := findRosterUserByEmail(ctx, repoFactory.RosterRepo(), scope, email)
	if err != nil {
		return nil, err
	}

	m := &member{scope: scope, user: user}

	design, err := repoFactory.DesignRepo().FindByScope(ctx, scope)
	switch {
	case err == nil:
		m.deadline = design.Deadline
	case !errors.Is(err, repository.ErrDesignNotFound):
		return nil, errors.Wrap(err, "failed to load design settings")
	}

	return m, nil
}

// editError explains why a page that cannot be edited was rejected.
func editError(status entity.SubmissionStatus) error {
	if status.State == entity.SubmissionLocked {
		return domainerrors.ErrPageLocked
	}

	return domainerrors.ErrDeadlinePassed
}
