package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-match/internal/domain/resume"
	"resume-match/internal/logger"
	"resume-match/internal/profile"
	"resume-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ImportUsecase interface {
	ImportLinkedIn(ctx context.Context, userID uuid.UUID, url string) (resume.Resume, error)
	ImportProfileExport(ctx context.Context, userID uuid.UUID, data []byte) (resume.Resume, error)
}

type Imports struct {
	importer profile.Importer
	repo     repository.ResumeRepository
	log      *zap.Logger
	now      func() time.Time
}

func NewImportUsecase(importer profile.Importer, repo repository.ResumeRepository, log *zap.Logger) *Imports {
	return &Imports{importer: importer, repo: repo, log: logger.OrNop(log), now: time.Now}
}

func (u *Imports) ImportLinkedIn(ctx context.Context, userID uuid.UUID, url string) (resume.Resume, error) {
	if userID == uuid.Nil {
		return resume.Resume{}, ErrUnauthorized
	}
	slug, err := profile.ValidateLinkedInURL(url)
	if err != nil {
		return resume.Resume{}, ErrInvalidProfileURL
	}

	p, err := u.importer.ImportProfile(ctx, url)
	if err != nil {
		if errors.Is(err, profile.ErrInvalidURL) {
			return resume.Resume{}, ErrInvalidProfileURL
		}
		u.log.Warn("profile import failed", zap.String("profile", slug), zap.Error(err))
		return resume.Resume{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return u.save(ctx, userID, p, fmt.Sprintf("linkedin-%s.txt", slug), resume.SourceLinkedIn)
}

// ImportProfileExport accepts a JSON profile export. Schema violations are
// returned wrapped in ErrInvalidInput so callers can list the fields.
func (u *Imports) ImportProfileExport(ctx context.Context, userID uuid.UUID, data []byte) (resume.Resume, error) {
	if userID == uuid.Nil {
		return resume.Resume{}, ErrUnauthorized
	}
	if len(data) == 0 || len(data) > MaxResumeBytes {
		return resume.Resume{}, ErrInvalidInput
	}
	p, err := profile.ParseExport(data)
	if err != nil {
		return resume.Resume{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return u.save(ctx, userID, p, "profile-export.txt", resume.SourceProfileExport)
}

func (u *Imports) save(ctx context.Context, userID uuid.UUID, p profile.Profile, fileName string, src resume.Source) (resume.Resume, error) {
	r := profile.ToResume(p)
	r.ID = uuid.New()
	r.UserID = userID
	r.FileName = fileName
	r.Source = src
	r.CreatedAt = u.now().UTC()

	if err := u.repo.Create(ctx, r); err != nil {
		u.log.Error("imported resume insert failed", zap.String(logger.FieldResumeID, r.ID.String()), zap.Error(err))
		return resume.Resume{}, ErrInternal
	}
	u.log.Info("profile imported",
		zap.String(logger.FieldResumeID, r.ID.String()),
		zap.String("source", string(src)),
		zap.Int("skills", len(r.Skills)),
	)
	return r, nil
}
