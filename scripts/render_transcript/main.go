package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-transcript-api/internal/models"
	"github.com/noah-isme/sma-transcript-api/internal/repository"
	"github.com/noah-isme/sma-transcript-api/internal/service"
	"github.com/noah-isme/sma-transcript-api/pkg/config"
	"github.com/noah-isme/sma-transcript-api/pkg/database"
	"github.com/noah-isme/sma-transcript-api/pkg/export"
	"github.com/noah-isme/sma-transcript-api/pkg/logger"
	"github.com/noah-isme/sma-transcript-api/pkg/storage"
)

func main() {
	var (
		studentID  int64
		email      string
		format     string
		outDir     string
		outName    string
		gradesPath string
		compress   bool
		timeout    time.Duration
	)

	flag.Int64Var(&studentID, "student-id", 0, "Numeric student id")
	flag.StringVar(&email, "email", "", "Resolve the student from this account email instead of -student-id")
	flag.StringVar(&format, "format", "pdf", "Output format: pdf or csv")
	flag.StringVar(&outDir, "out-dir", ".", "Directory the transcript is written to")
	flag.StringVar(&outName, "out", "", "Output file name (defaults to transcript-<id>.<format>)")
	flag.StringVar(&gradesPath, "grades", "", "Grade scale file (defaults to TRANSCRIPT_GRADE_SCALE_PATH)")
	flag.BoolVar(&compress, "compress", true, "Compress PDF streams")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Overall timeout")
	flag.Parse()

	if studentID == 0 && email == "" {
		log.Fatal("one of -student-id or -email is required")
	}

	transcriptFormat, err := service.ParseTranscriptFormat(format)
	if err != nil {
		log.Fatalf("invalid format: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if gradesPath == "" {
		gradesPath = cfg.Transcript.GradeScalePath
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.New(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if studentID == 0 {
		identities := service.NewIdentityService(repository.NewIdentityRepository(db, nil), logr)
		resolved, err := identities.ResolveStudentID(ctx, models.Identity{Subject: email})
		if err != nil {
			logr.Fatal("failed to resolve student", zap.String("email", email), zap.Error(err))
		}
		studentID = resolved
	}

	transcripts := service.NewTranscriptService(
		repository.NewTranscriptRepository(db, nil),
		service.NewGradeScaleService(gradesPath, validator.New(), logr),
		service.NewTranscriptRenderer(export.NewPDFExporter(export.PDFOptions{Compress: compress}), export.NewCSVExporter()),
		nil, nil, logr, 0,
	)

	payload, err := transcripts.Generate(ctx, studentID, transcriptFormat)
	if err != nil {
		logr.Fatal("failed to generate transcript", zap.Int64("student_id", studentID), zap.Error(err))
	}

	store, err := storage.NewLocalStorage(outDir)
	if err != nil {
		logr.Fatal("failed to prepare output directory", zap.String("dir", outDir), zap.Error(err))
	}
	if outName == "" {
		outName = fmt.Sprintf("transcript-%d.%s", studentID, transcriptFormat)
	}
	outPath, err := store.Save(outName, payload)
	if err != nil {
		logr.Fatal("failed to write transcript", zap.String("name", outName), zap.Error(err))
	}

	fmt.Printf("wrote %s (%d bytes)\n", outPath, len(payload))
}
