package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-transcript-api/internal/models"
	appErrors "github.com/noah-isme/sma-transcript-api/pkg/errors"
)

// TranscriptFormat selects the transcript encoding.
type TranscriptFormat string

const (
	FormatPDF TranscriptFormat = "pdf"
	FormatCSV TranscriptFormat = "csv"
)

// ParseTranscriptFormat maps a query value to a format; empty means PDF.
func ParseTranscriptFormat(raw string) (TranscriptFormat, error) {
	switch TranscriptFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported transcript format %q", raw))
	}
}

// ContentType returns the MIME type of the format.
func (f TranscriptFormat) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/pdf"
}

type transcriptReader interface {
	FetchStudentMetadata(ctx context.Context, studentID int64) (*models.StudentMeta, error)
	FetchCompletedEnrollments(ctx context.Context, studentID int64) ([]models.EnrollmentRecord, error)
}

type gradeMapLoader interface {
	Load(ctx context.Context) (models.GradeMap, error)
}

type transcriptEncoder interface {
	Render(meta models.StudentMeta, history, passed, failed []models.EnrollmentRecord, summary models.GpaSummary) ([]byte, error)
	RenderCSV(meta models.StudentMeta, history, passed, failed []models.EnrollmentRecord, summary models.GpaSummary) ([]byte, error)
}

// TranscriptService assembles and renders student transcripts.
type TranscriptService struct {
	repo     transcriptReader
	grades   gradeMapLoader
	renderer transcriptEncoder
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewTranscriptService wires the transcript pipeline. cache and metrics may be nil.
func NewTranscriptService(repo transcriptReader, grades gradeMapLoader, renderer transcriptEncoder, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cacheTTL time.Duration) *TranscriptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptService{
		repo:     repo,
		grades:   grades,
		renderer: renderer,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// Build collects the transcript content for a student without rendering it.
func (s *TranscriptService) Build(ctx context.Context, studentID int64) (*models.Transcript, error) {
	meta, err := s.repo.FetchStudentMetadata(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, appErrors.ErrStorage.Message)
	}
	if meta == nil {
		return nil, appErrors.Clone(appErrors.ErrStudentNotFound, fmt.Sprintf("no student record for id %d", studentID))
	}

	enrollments, err := s.repo.FetchCompletedEnrollments(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, appErrors.ErrStorage.Message)
	}

	grades, err := s.grades.Load(ctx)
	if err != nil {
		return nil, asConfigurationError(err)
	}

	history := SelectBestAttempts(enrollments, grades)
	SortByCourseLevel(history)

	return &models.Transcript{
		Meta:    *meta,
		History: history,
		Passed:  PassedAttempts(history),
		Failed:  FailedAttempts(enrollments),
		Summary: ComputeSummary(history, grades),
		Grades:  grades,
	}, nil
}

// GenerateTranscript builds and renders the PDF transcript for a student.
func (s *TranscriptService) GenerateTranscript(ctx context.Context, studentID int64) ([]byte, error) {
	return s.Generate(ctx, studentID, FormatPDF)
}

// Generate builds and renders the transcript in the requested format.
func (s *TranscriptService) Generate(ctx context.Context, studentID int64, format TranscriptFormat) (payload []byte, err error) {
	start := time.Now()
	outcome := "ok"
	defer func() {
		if err != nil {
			outcome = appErrors.FromError(err).Code
			s.logger.Warn("transcript generation failed",
				zap.Int64("student_id", studentID),
				zap.String("format", string(format)),
				zap.Error(err),
			)
		}
		s.metrics.ObserveTranscript(outcome, len(payload), time.Since(start))
	}()

	key := transcriptCacheKey(format, studentID)
	if cached, hit, cacheErr := s.cache.Get(ctx, key); cacheErr == nil && hit {
		outcome = "cache_hit"
		return cached, nil
	}

	transcript, err := s.Build(ctx, studentID)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatCSV:
		payload, err = s.renderer.RenderCSV(transcript.Meta, transcript.History, transcript.Passed, transcript.Failed, transcript.Summary)
	default:
		payload, err = s.renderer.Render(transcript.Meta, transcript.History, transcript.Passed, transcript.Failed, transcript.Summary)
	}
	if err != nil {
		return nil, asRenderError(err)
	}

	if cacheErr := s.cache.Set(ctx, key, payload, s.cacheTTL); cacheErr != nil {
		s.logger.Debug("transcript left uncached", zap.Int64("student_id", studentID), zap.String("key", key))
	}

	s.logger.Info("transcript generated",
		zap.Int64("student_id", studentID),
		zap.String("format", string(format)),
		zap.Int("history", len(transcript.History)),
		zap.Int("bytes", len(payload)),
	)
	return payload, nil
}

func transcriptCacheKey(format TranscriptFormat, studentID int64) string {
	return fmt.Sprintf("transcript:%s:%d", format, studentID)
}

func asConfigurationError(err error) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) && appErr.Code == appErrors.ErrConfiguration.Code {
		return appErr
	}
	return appErrors.Wrap(err, appErrors.ErrConfiguration.Code, appErrors.ErrConfiguration.Status, appErrors.ErrConfiguration.Message)
}

func asRenderError(err error) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) && appErr.Code == appErrors.ErrRender.Code {
		return appErr
	}
	return appErrors.Wrap(err, appErrors.ErrRender.Code, appErrors.ErrRender.Status, appErrors.ErrRender.Message)
}
