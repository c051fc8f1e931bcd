package impl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"log/slog"
	"mime"
	"path"
	"regexp"
	"strings"
	"time"

	"yearbook/config"
	deliverycontext "yearbook/internal/delivery/context"
	"yearbook/internal/domain/constants"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/service"
	"yearbook/internal/usecase"
	"yearbook/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	maxUploadBaseName  = 50
	uploadTimestampFmt = "20060102150405"
)

var (
	subfolderPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
	unsafeNameChars  = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)
	extensionPattern = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)
)

// uploadService implements the UploadUsecase interface.
type uploadService struct {
	storage      service.FileStorage
	publicPrefix string
	maxSize      int64
	now          func() time.Time
	logger       *slog.Logger
}

// UploadServiceParams holds dependencies for UploadService, injected by Fx.
type UploadServiceParams struct {
	fx.In

	Storage service.FileStorage
	Config  *config.Config
	Logger  *slog.Logger
}

// NewUploadService is the constructor for uploadService.
func NewUploadService(params UploadServiceParams) usecase.UploadUsecase {
	return &uploadService{
		storage:      params.Storage,
		publicPrefix: strings.TrimSuffix(params.Config.Storage.PublicPrefix, "/"),
		maxSize:      params.Config.Storage.MaxUploadSize,
		now:          time.Now,
		logger:       params.Logger,
	}
}

// Upload stores the file under a collision-resistant name and returns its public path.
func (srv *uploadService) Upload(ctx context.Context, input usecase.UploadInput) (*usecase.UploadOutput, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)

	if input.Body == nil || input.Filename == "" {
		return nil, domainerrors.ErrUploadInvalid.WithDetails("file is required")
	}
	if input.Size <= 0 {
		return nil, domainerrors.ErrUploadInvalid.WithDetails("file is empty")
	}
	if srv.maxSize > 0 && input.Size > srv.maxSize {
		return nil, domainerrors.ErrUploadInvalid.WithDetails("file exceeds " + util.FormatBytes(srv.maxSize))
	}

	subfolder := input.Subfolder
	if subfolder == "" {
		subfolder = constants.UploadSubfolderDefault
	}
	if !subfolderPattern.MatchString(subfolder) {
		return nil, domainerrors.ErrUploadInvalid.WithDetails("invalid subfolder")
	}

	name, err := newUploadName(input.Filename, srv.now())
	if err != nil {
		return nil, domainerrors.ErrUploadFailed.WrapMessage(err.Error())
	}
	key := subfolder + "/" + name

	contentType := input.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(path.Ext(name)); byExt != "" {
			contentType = byExt
		}
	}

	body := util.NewChecksumReader(io.LimitReader(input.Body, input.Size))
	if err := srv.storage.Put(ctx, key, body, contentType); err != nil {
		logger.Error("Failed to store upload", slog.String("key", key), slog.Any("error", err))

		return nil, domainerrors.ErrUploadFailed.WrapMessage(err.Error())
	}

	logger.Info("File uploaded",
		slog.String("key", key),
		slog.String("content_type", contentType),
		slog.String("size", util.FormatBytes(input.Size)),
		slog.String("sha256", body.Sum()))

	return &usecase.UploadOutput{Key: key, Path: srv.publicPrefix + "/" + key}, nil
}

func (srv *uploadService) Open(ctx context.Context, key string) (*service.StoredFile, error) {
	if key == "" || strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return nil, domainerrors.ErrNotFound
	}

	file, err := srv.storage.Get(ctx, key)
	if errors.Is(err, service.ErrFileNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to open upload")
	}

	return file, nil
}

// newUploadName builds <timestamp>-<random>-<sanitized base><ext>.
func newUploadName(filename string, now time.Time) (string, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", errors.Wrap(err, "failed to generate file name")
	}

	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	ext := strings.ToLower(path.Ext(base))
	base = strings.TrimSuffix(base, path.Ext(base))
	if !extensionPattern.MatchString(ext) {
		ext = ""
	}

	base = strings.Trim(unsafeNameChars.ReplaceAllString(base, "_"), "_")
	if len(base) > maxUploadBaseName {
		base = base[:maxUploadBaseName]
	}
	if base == "" {
		base = "file"
	}

	return now.UTC().Format(uploadTimestampFmt) + "-" + hex.EncodeToString(suffix) + "-" + base + ext, nil
}
