package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"resume-match/internal/domain/extraction"
	"resume-match/internal/domain/resume"
	"resume-match/internal/domain/seniority"
	"resume-match/internal/infrastructure/storage"
	"resume-match/internal/logger"
	"resume-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MaxResumeBytes = 5 << 20
	maxYears       = 70
)

var binaryExtensions = map[string]struct{}{
	".pdf": {}, ".doc": {}, ".docx": {}, ".odt": {}, ".rtf": {}, ".pages": {},
}

type UploadInput struct {
	UserID      uuid.UUID
	FileName    string
	ContentType string
	Data        []byte
}

type ResumeUsecase interface {
	Upload(ctx context.Context, in UploadInput) (resume.Resume, error)
	Parse(ctx context.Context, text string) (extraction.Parsed, error)
	List(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error)
	Get(ctx context.Context, userID, id uuid.UUID) (resume.Resume, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	UpdateLevel(ctx context.Context, userID, id uuid.UUID, level string, years float64) (resume.Resume, error)
}

type Resumes struct {
	repo  repository.ResumeRepository
	files storage.FileStore
	cache ResultCache
	log   *zap.Logger
	now   func() time.Time
}

func NewResumeUsecase(repo repository.ResumeRepository, files storage.FileStore, cache ResultCache, log *zap.Logger) *Resumes {
	return &Resumes{repo: repo, files: files, cache: cache, log: logger.OrNop(log), now: time.Now}
}

func (u *Resumes) Upload(ctx context.Context, in UploadInput) (resume.Resume, error) {
	if in.UserID == uuid.Nil {
		return resume.Resume{}, ErrUnauthorized
	}
	name := strings.TrimSpace(filepath.Base(in.FileName))
	if name == "" || name == "." || len(in.Data) == 0 || len(in.Data) > MaxResumeBytes {
		return resume.Resume{}, ErrInvalidInput
	}
	if !isPlainText(name, in.Data) {
		return resume.Resume{}, ErrUnsupportedFile
	}
	text := strings.TrimSpace(string(in.Data))
	if text == "" {
		return resume.Resume{}, ErrInvalidInput
	}

	id := uuid.New()
	ref := fmt.Sprintf("resumes/%s/%s%s", in.UserID, id, strings.ToLower(filepath.Ext(name)))
	ct := in.ContentType
	if !strings.HasPrefix(ct, "text/") {
		ct = "text/plain; charset=utf-8"
	}
	if err := u.files.Put(ctx, ref, in.Data, ct); err != nil {
		u.log.Error("resume file store failed", zap.String(logger.FieldUserID, in.UserID.String()), zap.Error(err))
		return resume.Resume{}, ErrInternal
	}

	r := extraction.ParseText(text).Resume(text)
	r.ID = id
	r.UserID = in.UserID
	r.FileName = name
	r.FileRef = ref
	r.Source = resume.SourceUpload
	r.CreatedAt = u.now().UTC()

	if err := u.repo.Create(ctx, r); err != nil {
		u.log.Error("resume insert failed", zap.String(logger.FieldResumeID, id.String()), zap.Error(err))
		if derr := u.files.Delete(ctx, ref); derr != nil {
			u.log.Warn("orphaned resume file", zap.String("file_ref", ref), zap.Error(derr))
		}
		return resume.Resume{}, ErrInternal
	}

	u.log.Info("resume uploaded",
		zap.String(logger.FieldResumeID, id.String()),
		zap.Int("skills", len(r.Skills)),
		zap.String("job_level", string(r.JobLevel)),
	)
	return r, nil
}

func (u *Resumes) Parse(ctx context.Context, text string) (extraction.Parsed, error) {
	if err := ctx.Err(); err != nil {
		return extraction.Parsed{}, err
	}
	if strings.TrimSpace(text) == "" || len(text) > MaxResumeBytes {
		return extraction.Parsed{}, ErrInvalidInput
	}
	return extraction.ParseText(text), nil
}

func (u *Resumes) List(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		u.log.Error("resume list failed", zap.String(logger.FieldUserID, userID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

// Get returns the resume only to its owner. Anyone else sees ErrResumeNotFound.
func (u *Resumes) Get(ctx context.Context, userID, id uuid.UUID) (resume.Resume, error) {
	r, err := ownedResume(ctx, u.repo, userID, id)
	if errors.Is(err, ErrInternal) {
		u.log.Error("resume get failed", zap.String(logger.FieldResumeID, id.String()), zap.Error(err))
		return resume.Resume{}, ErrInternal
	}
	return r, err
}

func ownedResume(ctx context.Context, repo repository.ResumeRepository, userID, id uuid.UUID) (resume.Resume, error) {
	if userID == uuid.Nil {
		return resume.Resume{}, ErrUnauthorized
	}
	if id == uuid.Nil {
		return resume.Resume{}, ErrResumeNotFound
	}
	r, err := repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return resume.Resume{}, ErrResumeNotFound
	}
	if err != nil {
		return resume.Resume{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if r.UserID != userID {
		return resume.Resume{}, ErrResumeNotFound
	}
	return r, nil
}

func (u *Resumes) Delete(ctx context.Context, userID, id uuid.UUID) error {
	r, err := u.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrResumeNotFound
		}
		u.log.Error("resume delete failed", zap.String(logger.FieldResumeID, id.String()), zap.Error(err))
		return ErrInternal
	}

	if r.FileRef != "" && u.files != nil {
		if err := u.files.Delete(ctx, r.FileRef); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			u.log.Warn("resume file delete failed", zap.String("file_ref", r.FileRef), zap.Error(err))
		}
	}
	u.invalidate(ctx, id)
	return nil
}

func (u *Resumes) UpdateLevel(ctx context.Context, userID, id uuid.UUID, level string, years float64) (resume.Resume, error) {
	lvl, ok := seniority.Parse(level)
	if !ok || years < 0 || years > maxYears {
		return resume.Resume{}, ErrInvalidInput
	}
	r, err := u.Get(ctx, userID, id)
	if err != nil {
		return resume.Resume{}, err
	}
	if err := u.repo.UpdateLevel(ctx, id, lvl, years); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return resume.Resume{}, ErrResumeNotFound
		}
		u.log.Error("resume level update failed", zap.String(logger.FieldResumeID, id.String()), zap.Error(err))
		return resume.Resume{}, ErrInternal
	}
	u.invalidate(ctx, id)

	r.JobLevel = lvl
	r.YearsOfExperience = years
	return r, nil
}

func (u *Resumes) invalidate(ctx context.Context, resumeID uuid.UUID) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, RecommendationsCachePattern(resumeID)); err != nil {
		u.log.Warn("recommendation cache invalidation failed", zap.String(logger.FieldResumeID, resumeID.String()), zap.Error(err))
	}
}

// isPlainText rejects office formats by extension and anything that is not
// NUL-free UTF-8.
func isPlainText(name string, data []byte) bool {
	if _, ok := binaryExtensions[strings.ToLower(filepath.Ext(name))]; ok {
		return false
	}
	return utf8.Valid(data) && !bytes.ContainsRune(data, 0)
}
