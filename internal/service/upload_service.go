package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/domain"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/slug"
)

var whitespace = regexp.MustCompile(`\s+`)

// uploadService writes images under cfg.Dir/<folder> and serves them from
// cfg.URLPrefix/<folder>
type uploadService struct {
	cfg *config.UploadConfig
	now func() time.Time
	log zerolog.Logger
}

func newUploadService(cfg *config.UploadConfig, now func() time.Time, log zerolog.Logger) *uploadService {
	return &uploadService{
		cfg: cfg,
		now: now,
		log: log.With().Str("service", "upload").Logger(),
	}
}

// SaveImage validates the upload by its content bytes and stores it as
// <unix millis>-<original name>
func (s *uploadService) SaveImage(ctx context.Context, folder string, file *multipart.FileHeader) (*models.UploadResult, error) {
	if file == nil {
		return nil, domain.NewValidationError("file", "no file uploaded", nil)
	}
	if file.Size > s.cfg.MaxUploadSize {
		return nil, s.tooLarge(file.Size)
	}

	folder = slug.Normalize(folder)
	if folder == "" {
		folder = s.cfg.DefaultFolder
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, domain.NewValidationError("file", "only image files are allowed", mtype.String())
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind upload: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Join(s.cfg.Dir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := storedName(file.Filename, s.now())
	dstPath := filepath.Join(dir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(dst, io.LimitReader(src, s.cfg.MaxUploadSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}
	if written > s.cfg.MaxUploadSize {
		os.Remove(dstPath)
		return nil, s.tooLarge(written)
	}

	s.log.Info().
		Str("file", dstPath).
		Str("mime", mtype.String()).
		Str("size", humanize.Bytes(uint64(written))).
		Msg("Image uploaded")

	return &models.UploadResult{
		Success:  true,
		URL:      path.Join(s.cfg.URLPrefix, folder, name),
		Filename: name,
		Size:     written,
		MimeType: mtype.String(),
	}, nil
}

func (s *uploadService) tooLarge(size int64) error {
	return &domain.PayloadTooLargeError{Size: size, Limit: humanize.Bytes(uint64(s.cfg.MaxUploadSize))}
}

// storedName prefixes the client file name with the upload time and
// replaces whitespace runs with underscores
func storedName(original string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	base = whitespace.ReplaceAllString(strings.TrimSpace(base), "_")
	return fmt.Sprintf("%d-%s", now.UnixMilli(), base)
}
