package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/sma-transcript-api/internal/models"
	appErrors "github.com/noah-isme/sma-transcript-api/pkg/errors"
)

// fallbackGrade is returned by GradeForMark when no threshold matches.
const fallbackGrade = "F"

// GradeScaleService loads the grade scale from a file on every call.
type GradeScaleService struct {
	path      string
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGradeScaleService constructs a loader for the file at path.
func NewGradeScaleService(path string, validate *validator.Validate, logger *zap.Logger) *GradeScaleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeScaleService{path: path, validator: validate, logger: logger}
}

// Load returns the grade label to grade point mapping.
func (s *GradeScaleService) Load(ctx context.Context) (models.GradeMap, error) {
	scale, err := s.LoadScale(ctx)
	if err != nil {
		return nil, err
	}
	return scale.GradeMap(), nil
}

// LoadScale reads and validates the full grade scale.
func (s *GradeScaleService) LoadScale(ctx context.Context) (models.GradeScale, error) {
	if err := ctx.Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrConfiguration.Code, appErrors.ErrConfiguration.Status, appErrors.ErrConfiguration.Message)
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Error("read grade scale", zap.String("path", s.path), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrConfiguration.Code, appErrors.ErrConfiguration.Status, "grade scale file unavailable")
	}

	scale, err := decodeGradeScale(s.path, raw)
	if err != nil {
		s.logger.Error("decode grade scale", zap.String("path", s.path), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrConfiguration.Code, appErrors.ErrConfiguration.Status, "grade scale file is malformed")
	}
	if len(scale) == 0 {
		return nil, appErrors.Clone(appErrors.ErrConfiguration, "grade scale file is empty")
	}

	for label, entry := range scale {
		if strings.TrimSpace(label) == "" {
			return nil, appErrors.Clone(appErrors.ErrConfiguration, "grade scale contains an empty label")
		}
		if err := s.validator.Struct(entry); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrConfiguration.Code, appErrors.ErrConfiguration.Status, fmt.Sprintf("invalid grade scale entry %q", label))
		}
	}

	return scale, nil
}

func decodeGradeScale(path string, raw []byte) (models.GradeScale, error) {
	var scale models.GradeScale
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &scale); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(raw, &scale); err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
	}
	return scale, nil
}

// GradeForMark returns the label whose mark threshold is the highest one not above mark.
func GradeForMark(scale models.GradeScale, mark int) string {
	type threshold struct {
		label string
		mark  int
	}
	thresholds := make([]threshold, 0, len(scale))
	for label, entry := range scale {
		thresholds = append(thresholds, threshold{label: label, mark: entry.Mark})
	}
	sort.Slice(thresholds, func(i, j int) bool {
		if thresholds[i].mark != thresholds[j].mark {
			return thresholds[i].mark > thresholds[j].mark
		}
		return thresholds[i].label < thresholds[j].label
	})
	for _, t := range thresholds {
		if mark >= t.mark {
			return t.label
		}
	}
	return fallbackGrade
}
