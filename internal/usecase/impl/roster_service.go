package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "yearbook/internal/delivery/context"
	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/repository"
	"yearbook/internal/domain/service"
	"yearbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// rosterService implements the RosterUsecase interface.
type rosterService struct {
	txManager repository.TransactionManager
	notifier  *notifier
	logger    *slog.Logger
}

// RosterServiceParams holds dependencies for RosterService, injected by Fx.
type RosterServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Feed      service.ChangeFeed
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewRosterService is the constructor for rosterService.
func NewRosterService(params RosterServiceParams) usecase.RosterUsecase {
	return &rosterService{
		txManager: params.TxManager,
		notifier:  newNotifier(params.Feed, params.Publisher, params.Logger),
		logger:    params.Logger,
	}
}

func (srv *rosterService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// InviteUsers adds every new address to the roster in one transaction.
func (srv *rosterService) InviteUsers(ctx context.Context, scope entity.ScopeID, emails []string) (*usecase.InviteResult, error) {
	if _, err := entity.ParseScopeID(scope); err != nil {
		return nil, err
	}

	result := &usecase.InviteResult{Invalid: []string{}, Conflicts: []string{}}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		rosterRepo := repoFactory.RosterRepo()
		invitationRepo := repoFactory.InvitationRepo()

		existing, err := rosterRepo.FindByScope(ctx, scope)
		if err != nil {
			return errors.Wrap(err, "failed to load roster")
		}
		present := make(map[string]struct{}, len(existing)+len(emails))
		for _, user := range existing {
			present[user.Email] = struct{}{}
		}

		position, err := rosterRepo.NextPosition(ctx, scope)
		if err != nil {
			return errors.Wrap(err, "failed to compute roster position")
		}

		now := time.Now().UTC()
		for _, raw := range emails {
			email := entity.NormalizeEmail(raw)
			if !entity.IsValidEmail(email) {
				result.Invalid = append(result.Invalid, strings.TrimSpace(raw))

				continue
			}
			if _, ok := present[email]; ok {
				result.Skipped++

				continue
			}

			indexed, err := srv.indexInvitation(ctx, invitationRepo, scope, email)
			if err != nil {
				return err
			}
			if !indexed {
				result.Conflicts = append(result.Conflicts, email)

				continue
			}

			user := entity.NewInvitedUser(scope, email, now)
			user.Position = position
			if err := rosterRepo.Create(ctx, user); err != nil {
				return errors.Wrapf(err, "failed to invite %s", email)
			}

			position++
			present[email] = struct{}{}
			result.Added++
			result.Users = append(result.Users, user)
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to invite users", slog.String("scope", scope.String()), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to invite users")
	}

	for _, user := range result.Users {
		srv.notifier.changed(ctx, entity.RosterTopic(scope), entity.ChangeCreated, user.ID.String())
		srv.notifier.emit(ctx, entity.EventUserInvited, scope, user.Email, nil)
	}

	srv.log(ctx).Info("Users invited",
		slog.String("scope", scope.String()),
		slog.Int("added", result.Added),
		slog.Int("skipped", result.Skipped),
		slog.Int("invalid", len(result.Invalid)),
		slog.Int("conflicts", len(result.Conflicts)))

	return result, nil
}

// indexInvitation records email -> scope. It reports false when the email
// already belongs to another scope.
func (srv *rosterService) indexInvitation(ctx context.Context, repo repository.InvitationRepository, scope entity.ScopeID, email string) (bool, error) {
	indexed, err := repo.FindScope(ctx, email)
	switch {
	case err == nil && indexed == scope:
		return true, nil
	case err == nil:
		srv.log(ctx).Warn("Email already invited to another scope",
			slog.String("email", email),
			slog.String("scope", scope.String()),
			slog.String("existing_scope", indexed.String()))

		return false, nil
	case !errors.Is(err, repository.ErrInvitationNotFound):
		return false, errors.Wrap(err, "failed to look up invitation")
	}

	if err := repo.Create(ctx, email, scope); err != nil {
		return false, errors.Wrapf(err, "failed to index invitation for %s", email)
	}

	return true, nil
}

func (srv *rosterService) ListUsers(ctx context.Context, scope entity.ScopeID) ([]*entity.User, error) {
	if _, err := entity.ParseScopeID(scope); err != nil {
		return nil, err
	}

	var users []*entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		users, err = repoFactory.RosterRepo().FindByScope(ctx, scope)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list roster")
	}

	return users, nil
}

func (srv *rosterService) FindUserByEmail(ctx context.Context, scope entity.ScopeID, email string) (*entity.User, error) {
	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		user, err = findRosterUserByEmail(ctx, repoFactory.RosterRepo(), scope, email)

		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (srv *rosterService) FindUserScope(ctx context.Context, email string) (entity.ScopeID, error) {
	var scope entity.ScopeID
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		scope, err = findInvitationScope(ctx, repoFactory.InvitationRepo(), email)

		return err
	})
	if err != nil {
		return "", err
	}

	return scope, nil
}

func (srv *rosterService) CompleteRegistration(
	ctx context.Context,
	scope entity.ScopeID,
	email string,
	input usecase.CompleteRegistrationInput,
) (*entity.User, error) {
	var registered *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		rosterRepo := repoFactory.RosterRepo()

		user, err := rosterRepo.FindByEmail(ctx, scope, entity.NormalizeEmail(email))
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrNotInvited
		}
		if err != nil {
			return errors.Wrap(err, "failed to find invitation")
		}
		if user.Registered {
			return domainerrors.ErrAlreadyRegistered
		}

		now := time.Now().UTC()
		user.Registered = true
		user.RegisteredAt = &now
		user.UpdatedAt = now
		user.Name = strings.TrimSpace(input.Name)
		user.Phone = strings.TrimSpace(input.Phone)
		if input.PhotoURL != "" {
			user.PhotoURL = input.PhotoURL
		}
		if input.PasswordHash != "" {
			user.PasswordHash = input.PasswordHash
		}

		if err := rosterRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to complete registration")
		}
		registered = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.notifier.changed(ctx, entity.RosterTopic(scope), entity.ChangeUpdated, registered.ID.String())
	srv.log(ctx).Info("Registration completed", slog.String("scope", scope.String()), slog.Any("userID", registered.ID))

	return registered, nil
}

// UpdateUser applies an admin patch. Setting PageSubmitted locks or unlocks the page;
// an unlock also lifts the deadline for that user.
func (srv *rosterService) UpdateUser(ctx context.Context, scope entity.ScopeID, userID uuid.UUID, input usecase.UpdateUserInput) (*entity.User, error) {
	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		rosterRepo := repoFactory.RosterRepo()

		user, err := rosterRepo.FindByID(ctx, scope, userID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}

		now := time.Now().UTC()
		if input.Name != nil {
			user.Name = strings.TrimSpace(*input.Name)
		}
		if input.Phone != nil {
			user.Phone = strings.TrimSpace(*input.Phone)
		}
		if input.PhotoURL != nil {
			user.PhotoURL = *input.PhotoURL
		}
		if input.PageSubmitted != nil {
			if *input.PageSubmitted {
				user.Lock(now)
			} else {
				user.Unlock(now)
			}
		}
		user.UpdatedAt = now

		if err := rosterRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update user")
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.notifier.changed(ctx, entity.RosterTopic(scope), entity.ChangeUpdated, updated.ID.String())

	return updated, nil
}

// DeleteUser removes the roster entry and its invitation index. The page entry is kept.
func (srv *rosterService) DeleteUser(ctx context.Context, scope entity.ScopeID, userID uuid.UUID) error {
	deleted := false
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		rosterRepo := repoFactory.RosterRepo()
		invitationRepo := repoFactory.InvitationRepo()

		user, err := rosterRepo.FindByID(ctx, scope, userID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}

		if err := rosterRepo.Delete(ctx, scope, userID); err != nil {
			return errors.Wrap(err, "failed to delete user")
		}

		indexed, err := invitationRepo.FindScope(ctx, user.Email)
		if err == nil && indexed == scope {
			if err := invitationRepo.Delete(ctx, user.Email); err != nil {
				return errors.Wrap(err, "failed to delete invitation")
			}
		} else if err != nil && !errors.Is(err, repository.ErrInvitationNotFound) {
			return errors.Wrap(err, "failed to look up invitation")
		}
		deleted = true

		return nil
	})
	if err != nil {
		return err
	}

	if deleted {
		srv.notifier.changed(ctx, entity.RosterTopic(scope), entity.ChangeDeleted, userID.String())
	}

	return nil
}

func findRosterUserByEmail(ctx context.Context, repo repository.RosterRepository, scope entity.ScopeID, email string) (*entity.User, error) {
	user, err := repo.FindByEmail(ctx, scope, entity.NormalizeEmail(email))
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

func findInvitationScope(ctx context.Context, repo repository.InvitationRepository, email string) (entity.ScopeID, error) {
	scope, err := repo.FindScope(ctx, entity.NormalizeEmail(email))
	if errors.Is(err, repository.ErrInvitationNotFound) {
		return "", domainerrors.ErrNotInvited
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve scope")
	}

	return scope, nil
}
