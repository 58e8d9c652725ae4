package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// Export is the rendered case register ready to stream to the client
type Export struct {
	Filename    string
	ContentType string
	Content     []byte
}

type Service interface {
	ExportCaseRegister(ctx context.Context, format Format, status, stage string) (*Export, error)
}

type reportService struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &reportService{repo: repo, logger: logger}
}

func (s *reportService) ExportCaseRegister(ctx context.Context, format Format, status, stage string) (*Export, error) {
	rows, err := s.repo.CaseRegister(ctx, status, stage)
	if err != nil {
		return nil, err
	}

	var content []byte
	var contentType string
	switch format {
	case FormatXLSX:
		content, err = exportExcel(rows)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		content, err = exportPDF(rows)
		contentType = "application/pdf"
	case FormatCSV:
		content, err = exportCSV(rows)
		contentType = "text/csv"
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("case register exported",
		zap.String("format", string(format)),
		zap.Int("rows", len(rows)))

	return &Export{
		Filename:    fmt.Sprintf("case-register-%s.%s", time.Now().Format("20060102"), format),
		ContentType: contentType,
		Content:     content,
	}, nil
}
