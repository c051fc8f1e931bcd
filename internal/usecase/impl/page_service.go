package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "yearbook/internal/delivery/context"
	"yearbook/internal/domain/constants"
	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/repository"
	"yearbook/internal/domain/service"
	"yearbook/internal/usecase"
	"yearbook/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// pageService implements the PageUsecase interface.
type pageService struct {
	txManager repository.TransactionManager
	uploads   usecase.UploadUsecase
	notifier  *notifier
	now       func() time.Time
	logger    *slog.Logger
}

// PageServiceParams holds dependencies for PageService, injected by Fx.
type PageServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Uploads   usecase.UploadUsecase
	Feed      service.ChangeFeed
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewPageService is the constructor for pageService.
func NewPageService(params PageServiceParams) usecase.PageUsecase {
	return &pageService{
		txManager: params.TxManager,
		uploads:   params.Uploads,
		notifier:  newNotifier(params.Feed, params.Publisher, params.Logger),
		now:       time.Now,
		logger:    params.Logger,
	}
}

func (srv *pageService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *pageService) Me(ctx context.Context, email string) (*usecase.MemberOutput, error) {
	m, err := srv.member(ctx, email)
	if err != nil {
		return nil, err
	}

	scope, err := entity.ParseScopeID(m.scope)
	if err != nil {
		return nil, err
	}

	return &usecase.MemberOutput{User: m.user, Scope: scope, Status: m.status(srv.now())}, nil
}

func (srv *pageService) GetPage(ctx context.Context, email string) (*usecase.PageOutput, error) {
	var output *usecase.PageOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		m, err := resolveMember(ctx, repoFactory, email)
		if err != nil {
			return err
		}

		page, err := findPage(ctx, repoFactory.PageRepo(), m.user)
		if err != nil {
			return err
		}
		output = &usecase.PageOutput{Page: page, Status: m.status(srv.now())}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

func (srv *pageService) SavePage(ctx context.Context, email string, input usecase.SavePageInput) (*usecase.PageOutput, error) {
	return srv.save(ctx, email, &input, false)
}

// LockPage persists the submitted content and then locks the page. A nil input
// locks the stored page unchanged. A page that can no longer be edited cannot be
// locked either.
func (srv *pageService) LockPage(ctx context.Context, email string, input *usecase.SavePageInput) (*usecase.PageOutput, error) {
	return srv.save(ctx, email, input, true)
}

func (srv *pageService) save(ctx context.Context, email string, input *usecase.SavePageInput, lock bool) (*usecase.PageOutput, error) {
	// Reject before uploading anything.
	m, err := srv.member(ctx, email)
	if err != nil {
		return nil, err
	}
	if status := m.status(srv.now()); !status.CanEdit {
		srv.log(ctx).Warn("Page edit rejected",
			slog.String("email", m.user.Email),
			slog.String("state", string(status.State)),
			slog.Bool("deadline_passed", status.DeadlinePassed))

		return nil, editError(status)
	}

	keepContent := input == nil
	if keepContent {
		input = &usecase.SavePageInput{}
	}
	if len(input.GalleryPhotoURLs)+len(input.GalleryPhotos) > entity.MaxGalleryPhotos {
		return nil, domainerrors.ErrGalleryLimit
	}

	// An upload failure aborts the whole save.
	profileURL := input.ProfilePhotoURL
	if input.ProfilePhoto != nil {
		upload := *input.ProfilePhoto
		upload.Subfolder = constants.UploadSubfolderProfilePhotos
		out, err := srv.uploads.Upload(ctx, upload)
		if err != nil {
			return nil, err
		}
		profileURL = out.Path
	}

	var gallery []string
	if input.GalleryPhotoURLs != nil || len(input.GalleryPhotos) > 0 {
		gallery = append([]string{}, input.GalleryPhotoURLs...)
		for _, upload := range input.GalleryPhotos {
			upload.Subfolder = constants.UploadSubfolderGalleryPhotos
			out, err := srv.uploads.Upload(ctx, upload)
			if err != nil {
				return nil, err
			}
			gallery = append(gallery, out.Path)
		}
	}

	var (
		output   *usecase.PageOutput
		saved    *member
		mirrored bool
	)
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		m, err := resolveMember(ctx, repoFactory, email)
		if err != nil {
			return err
		}

		now := srv.now()
		if status := m.status(now); !status.CanEdit {
			return editError(status)
		}

		previous, err := findPage(ctx, repoFactory.PageRepo(), m.user)
		if err != nil {
			return err
		}

		page := &entity.PageEntry{
			UserID:           m.user.ID,
			Quote:            input.Quote,
			Memories:         input.Memories,
			ProfilePhotoURL:  profileURL,
			GalleryPhotoURLs: gallery,
			UpdatedAt:        now.UTC(),
		}
		if gallery == nil {
			page.GalleryPhotoURLs = append([]string{}, previous.GalleryPhotoURLs...)
		}
		if keepContent {
			page.Quote = previous.Quote
			page.Memories = previous.Memories
			page.ProfilePhotoURL = previous.ProfilePhotoURL
		}
		if err := repoFactory.PageRepo().Save(ctx, page); err != nil {
			return errors.Wrap(err, "failed to save page")
		}

		// The roster photo mirrors the page photo for display; the page stays authoritative.
		userChanged := false
		if page.ProfilePhotoURL != "" && page.ProfilePhotoURL != previous.ProfilePhotoURL && page.ProfilePhotoURL != m.user.PhotoURL {
			m.user.PhotoURL = page.ProfilePhotoURL
			m.user.UpdatedAt = now.UTC()
			userChanged = true
			mirrored = true
		}
		if lock {
			m.user.Lock(now.UTC())
			userChanged = true
		}
		if userChanged {
			if err := repoFactory.RosterRepo().Update(ctx, m.user); err != nil {
				return errors.Wrap(err, "failed to update roster entry")
			}
		}

		output = &usecase.PageOutput{Page: page, Status: m.status(now)}
		saved = m

		return nil
	})
	if err != nil {
		return nil, err
	}

	if lock || mirrored {
		srv.notifier.changed(ctx, entity.RosterTopic(saved.scope), entity.ChangeUpdated, saved.user.ID.String())
	}
	if lock {
		srv.notifier.emit(ctx, entity.EventPageLocked, saved.scope, saved.user.Email, map[string]string{
			"user_id": saved.user.ID.String(),
		})
		srv.log(ctx).Info("Page locked", slog.String("scope", saved.scope.String()), slog.Any("userID", saved.user.ID))
	} else {
		srv.log(ctx).Debug("Page saved",
			slog.Any("userID", saved.user.ID),
			slog.String("time_left", util.FormatDuration(output.Status.TimeLeft)))
	}

	return output, nil
}

func (srv *pageService) ListClassmates(ctx context.Context, email string) ([]*entity.User, error) {
	var classmates []*entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		m, err := resolveMember(ctx, repoFactory, email)
		if err != nil {
			return err
		}

		users, err := repoFactory.RosterRepo().FindByScope(ctx, m.scope)
		if err != nil {
			return errors.Wrap(err, "failed to load roster")
		}

		classmates = make([]*entity.User, 0, len(users))
		for _, user := range users {
			if user.Registered && user.ID != m.user.ID {
				classmates = append(classmates, user)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return classmates, nil
}

func (srv *pageService) member(ctx context.Context, email string) (*member, error) {
	var m *member
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		m, err = resolveMember(ctx, repoFactory, email)

		return err
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// findPage returns the saved page or the empty defaults.
func findPage(ctx context.Context, repo repository.PageRepository, user *entity.User) (*entity.PageEntry, error) {
	page, err := repo.FindByUserID(ctx, user.ID)
	if errors.Is(err, repository.ErrPageNotFound) {
		return entity.EmptyPage(user.ID), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load page")
	}

	return page, nil
}
