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

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager    repository.TransactionManager
	roster       usecase.RosterUsecase
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Roster       usecase.RosterUsecase
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		txManager:    params.TxManager,
		roster:       params.Roster,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SetupAdmin creates the first administrator. It fails once any admin exists.
func (srv *sessionService) SetupAdmin(ctx context.Context, input usecase.SetupAdminInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	if !entity.IsValidEmail(email) {
		return nil, domainerrors.ErrInvalidEmail
	}
	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	account := &entity.AdminAccount{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		adminRepo := repoFactory.AdminRepo()

		count, err := adminRepo.Count(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to count admin accounts")
		}
		if count > 0 {
			return domainerrors.ErrSetupCompleted
		}

		return adminRepo.Create(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Administrator account created", slog.String("email", email))

	return srv.issue(entity.Principal{Subject: account.ID.String(), Email: email, Role: entity.RoleAdmin}, nil)
}

func (srv *sessionService) CheckInvitation(ctx context.Context, email string) (*usecase.InvitationStatus, error) {
	email = entity.NormalizeEmail(email)
	if !entity.IsValidEmail(email) {
		return nil, domainerrors.ErrInvalidEmail
	}

	scope, err := srv.roster.FindUserScope(ctx, email)
	if err != nil {
		return nil, err
	}

	user, err := srv.roster.FindUserByEmail(ctx, scope, email)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, domainerrors.ErrNotInvited
	}
	if err != nil {
		return nil, err
	}

	return &usecase.InvitationStatus{Email: email, Scope: scope, Registered: user.Registered}, nil
}

// Register completes the invitee's roster entry and signs them in.
func (srv *sessionService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	if !entity.IsValidEmail(email) {
		return nil, domainerrors.ErrInvalidEmail
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name is required")
	}
	if input.Password != input.ConfirmPassword {
		return nil, domainerrors.ErrPasswordMismatch
	}
	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("email", email))

		return nil, err
	}

	scope, err := srv.roster.FindUserScope(ctx, email)
	if err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := srv.roster.CompleteRegistration(ctx, scope, email, usecase.CompleteRegistrationInput{
		Name:         input.Name,
		Phone:        input.Phone,
		PhotoURL:     input.PhotoURL,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	return srv.issue(entity.Principal{Subject: user.ID.String(), Email: user.Email, Role: user.Role}, user)
}

// Login checks administrator accounts first, then registered roster users.
func (srv *sessionService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domainerrors.ErrInvalidCredentials
	}

	var (
		admin *entity.AdminAccount
		user  *entity.User
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		account, err := repoFactory.AdminRepo().FindByEmail(ctx, email)
		if err == nil {
			admin = account

			return nil
		}
		if !errors.Is(err, repository.ErrAdminNotFound) {
			return errors.Wrap(err, "failed to find admin account")
		}

		scope, err := findInvitationScope(ctx, repoFactory.InvitationRepo(), email)
		if err != nil {
			return err
		}
		user, err = findRosterUserByEmail(ctx, repoFactory.RosterRepo(), scope, email)

		return err
	})
	if errors.Is(err, domainerrors.ErrNotInvited) || errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if admin != nil {
		if !srv.hasher.Check(input.Password, admin.PasswordHash) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return srv.issue(entity.Principal{Subject: admin.ID.String(), Email: admin.Email, Role: entity.RoleAdmin}, nil)
	}

	if !user.Registered || user.PasswordHash == "" || !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login rejected", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials
	}

	return srv.issue(entity.Principal{Subject: user.ID.String(), Email: user.Email, Role: user.Role}, user)
}

func (srv *sessionService) ChangeAdminPassword(ctx context.Context, input usecase.ChangeAdminPasswordInput) error {
	email := entity.NormalizeEmail(input.Email)
	if input.NewPassword != input.ConfirmPassword {
		return domainerrors.ErrPasswordMismatch
	}
	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return err
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		adminRepo := repoFactory.AdminRepo()

		account, err := adminRepo.FindByEmail(ctx, email)
		if errors.Is(err, repository.ErrAdminNotFound) {
			return domainerrors.ErrForbidden
		}
		if err != nil {
			return errors.Wrap(err, "failed to find admin account")
		}
		if !srv.hasher.Check(input.CurrentPassword, account.PasswordHash) {
			return domainerrors.ErrCurrentPasswordIncorrect
		}

		return adminRepo.UpdatePasswordHash(ctx, email, hash)
	})
	if err != nil {
		srv.log(ctx).Warn("Admin password change rejected", slog.String("email", email), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("Admin password changed", slog.String("email", email))

	return nil
}

func (srv *sessionService) issue(principal entity.Principal, user *entity.User) (*usecase.AuthOutput, error) {
	token, err := srv.tokenService.GenerateAccessToken(principal)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	return &usecase.AuthOutput{
		AccessToken: token,
		ExpiresIn:   int64(srv.tokenService.AccessTokenTTL() / time.Second),
		Principal:   principal,
		User:        user,
	}, nil
}
