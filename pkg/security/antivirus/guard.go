package antivirus

import (
	"bytes"
	"context"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"

	"go.uber.org/zap"
)

const msgResumeInfected = "Resume rejected by malware scan."

// GuardedUploader scans every resume before handing it to the wrapped uploader.
type GuardedUploader struct {
	next    domain.ResumeUploader
	scanner Scanner
	log     *zap.Logger
}

var _ domain.ResumeUploader = (*GuardedUploader)(nil)

func NewGuardedUploader(next domain.ResumeUploader, scanner Scanner, log *zap.Logger) *GuardedUploader {
	return &GuardedUploader{next: next, scanner: scanner, log: log}
}

func (g *GuardedUploader) Upload(ctx context.Context, file domain.ResumeFile) (*domain.Resume, error) {
	result := g.scanner.Scan(ctx, file.Filename, bytes.NewReader(file.Data))
	if result.Error != nil {
		g.log.Error("resume scan failed",
			zap.String("scanner", result.ScannerName),
			zap.String("filename", file.Filename),
			zap.Error(result.Error),
		)
		return nil, apperror.Upload("Failed to upload resume.", result.Error)
	}
	if result.Infected {
		g.log.Warn("infected resume rejected",
			zap.String("scanner", result.ScannerName),
			zap.String("threat", result.ThreatName),
			zap.String("filename", file.Filename),
		)
		return nil, apperror.Validation(msgResumeInfected)
	}
	return g.next.Upload(ctx, file)
}

func (g *GuardedUploader) Delete(ctx context.Context, publicID string) error {
	return g.next.Delete(ctx, publicID)
}
