package impl

import (
	"context"
	"log/slog"
	"time"

	"yearbook/config"
	deliverycontext "yearbook/internal/delivery/context"
	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/repository"
	"yearbook/internal/domain/service"
	"yearbook/internal/domain/yearbook"
	"yearbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// designService implements the DesignUsecase and PreviewUsecase interfaces.
type designService struct {
	txManager  repository.TransactionManager
	designRepo repository.DesignRepository
	rosterRepo repository.RosterRepository
	pageRepo   repository.PageRepository
	qrcode     service.QRCodeService
	baseURL    string
	logger     *slog.Logger
}

// DesignServiceParams holds dependencies for DesignService, injected by Fx.
type DesignServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	DesignRepo repository.DesignRepository
	RosterRepo repository.RosterRepository
	PageRepo   repository.PageRepository
	QRCode     service.QRCodeService
	Config     *config.Config
	Logger     *slog.Logger
}

// DesignServiceResult exposes designService under both usecase interfaces.
type DesignServiceResult struct {
	fx.Out

	Design  usecase.DesignUsecase
	Preview usecase.PreviewUsecase
}

// NewDesignService is the constructor for designService.
func NewDesignService(params DesignServiceParams) DesignServiceResult {
	srv := newDesignService(params)

	return DesignServiceResult{Design: srv, Preview: srv}
}

func newDesignService(params DesignServiceParams) *designService {
	return &designService{
		txManager:  params.TxManager,
		designRepo: params.DesignRepo,
		rosterRepo: params.RosterRepo,
		pageRepo:   params.PageRepo,
		qrcode:     params.QRCode,
		baseURL:    params.Config.QRCode.BaseURL,
		logger:     params.Logger,
	}
}

func (srv *designService) GetDesign(ctx context.Context, scope entity.ScopeID) (*entity.DesignSettings, error) {
	if _, err := entity.ParseScopeID(scope); err != nil {
		return nil, err
	}

	design, err := srv.designRepo.FindByScope(ctx, scope)
	if errors.Is(err, repository.ErrDesignNotFound) {
		return entity.DefaultDesignSettings(scope), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load design settings")
	}

	return design, nil
}

// SaveDesign replaces the whole record; fields absent from raw fall back to the defaults.
func (srv *designService) SaveDesign(ctx context.Context, scope entity.ScopeID, raw []byte) (*entity.DesignSettings, error) {
	if _, err := entity.ParseScopeID(scope); err != nil {
		return nil, err
	}

	design, err := entity.DecodeDesignSettings(scope, raw)
	if err != nil {
		return nil, err
	}
	design.UpdatedAt = time.Now().UTC()

	// Designs share the transactional tables with the roster.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.DesignRepo().Save(ctx, design)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save design settings")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Design settings saved",
		slog.String("scope", scope.String()),
		slog.Int("front_covers", len(design.FrontCovers)),
		slog.Int("back_covers", len(design.BackCovers)))

	return design, nil
}

// Render loads the scope's design, roster and submitted pages and composes the flipbook.
func (srv *designService) Render(ctx context.Context, scope entity.ScopeID) (*yearbook.Book, error) {
	if _, err := entity.ParseScopeID(scope); err != nil {
		return nil, err
	}

	design, err := srv.designRepo.FindByScope(ctx, scope)
	if errors.Is(err, repository.ErrDesignNotFound) {
		return nil, domainerrors.ErrNoContent.WithDetails("design settings missing")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load design settings")
	}

	users, err := srv.rosterRepo.FindByScope(ctx, scope)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load roster")
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, user := range users {
		if user.PageSubmitted {
			ids = append(ids, user.ID)
		}
	}
	if len(ids) == 0 {
		return nil, domainerrors.ErrNoContent.WithDetails("no submitted pages")
	}

	pages, err := srv.pageRepo.FindByUserIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load pages")
	}

	return yearbook.Render(design, users, pages)
}

func (srv *designService) PreviewQR(_ context.Context, scope entity.ScopeID) ([]byte, error) {
	if _, err := entity.ParseScopeID(scope); err != nil {
		return nil, err
	}

	return srv.qr(previewLink(srv.baseURL, scope))
}

func (srv *designService) InvitationQR(_ context.Context, scope entity.ScopeID) ([]byte, error) {
	if _, err := entity.ParseScopeID(scope); err != nil {
		return nil, err
	}

	return srv.qr(registrationLink(srv.baseURL, scope, ""))
}

func (srv *designService) qr(link string) ([]byte, error) {
	png, err := srv.qrcode.GenerateLinkQR(link)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage(err.Error())
	}

	return png, nil
}
