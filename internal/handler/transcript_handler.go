package handler

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-transcript-api/internal/dto"
	"github.com/noah-isme/sma-transcript-api/internal/models"
	"github.com/noah-isme/sma-transcript-api/internal/service"
	"github.com/noah-isme/sma-transcript-api/pkg/response"
)

type studentResolver interface {
	ResolveStudentID(ctx context.Context, identity models.Identity) (int64, error)
}

type transcriptGenerator interface {
	Build(ctx context.Context, studentID int64) (*models.Transcript, error)
	Generate(ctx context.Context, studentID int64, format service.TranscriptFormat) ([]byte, error)
}

type gradeScaleLoader interface {
	LoadScale(ctx context.Context) (models.GradeScale, error)
}

// TranscriptHandler exposes transcript endpoints for the authenticated student.
type TranscriptHandler struct {
	identities  studentResolver
	transcripts transcriptGenerator
	grades      gradeScaleLoader
	filename    string
}

// NewTranscriptHandler constructs a transcript handler. filename names the PDF attachment.
func NewTranscriptHandler(identities studentResolver, transcripts transcriptGenerator, grades gradeScaleLoader, filename string) *TranscriptHandler {
	if filename == "" {
		filename = "transcript.pdf"
	}
	return &TranscriptHandler{identities: identities, transcripts: transcripts, grades: grades, filename: filename}
}

// DownloadCompletedCourses godoc
// @Summary Download transcript PDF
// @Tags Transcripts
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /completedCourses/download [post]
func (h *TranscriptHandler) DownloadCompletedCourses(c *gin.Context, identity models.Identity) {
	h.download(c, identity, service.FormatPDF)
}

// Download godoc
// @Summary Download transcript
// @Tags Transcripts
// @Produce application/pdf,text/csv
// @Security BearerAuth
// @Param format query string false "pdf or csv"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /transcripts/download [post]
func (h *TranscriptHandler) Download(c *gin.Context, identity models.Identity) {
	format, err := service.ParseTranscriptFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.download(c, identity, format)
}

func (h *TranscriptHandler) download(c *gin.Context, identity models.Identity, format service.TranscriptFormat) {
	ctx := c.Request.Context()
	studentID, err := h.identities.ResolveStudentID(ctx, identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, err := h.transcripts.Generate(ctx, studentID, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, h.attachmentName(format), format.ContentType(), payload)
}

func (h *TranscriptHandler) attachmentName(format service.TranscriptFormat) string {
	base := strings.TrimSuffix(h.filename, filepath.Ext(h.filename))
	return base + "." + string(format)
}

// Me godoc
// @Summary Preview transcript
// @Tags Transcripts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /transcripts/me [get]
func (h *TranscriptHandler) Me(c *gin.Context, identity models.Identity) {
	ctx := c.Request.Context()
	studentID, err := h.identities.ResolveStudentID(ctx, identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	transcript, err := h.transcripts.Build(ctx, studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewTranscriptResponse(transcript, transcript.Grades))
}

// GradeScale godoc
// @Summary Grade scale
// @Tags Transcripts
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /transcripts/grade-scale [get]
func (h *TranscriptHandler) GradeScale(c *gin.Context) {
	scale, err := h.grades.LoadScale(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewGradeScaleItems(scale))
}
