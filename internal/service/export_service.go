package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/scholaris-ph/sis-api/internal/dto"
	"github.com/scholaris-ph/sis-api/internal/models"
	"github.com/scholaris-ph/sis-api/pkg/export"
)

var statementHeaders = []string{"Date", "Particulars", "Debit", "Credit", "Balance"}

type billingInfoProvider interface {
	Information(ctx context.Context, studentID string) (*dto.BillingInformationResponse, error)
}

// ExportService renders billing statements as CSV or PDF downloads.
type ExportService struct {
	billing billingInfoProvider
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	audit   *AuditService
	logger  *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(billing billingInfoProvider, audit *AuditService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		billing: billing,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		audit:   audit,
		logger:  logger,
	}
}

// ExportResult is a rendered download payload.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Statement renders the student ledger statement in the requested format.
// Supported formats are "csv" and "pdf".
func (s *ExportService) Statement(ctx context.Context, studentID, format, actorID string) (*ExportResult, error) {
	info, err := s.billing.Information(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("export statement: %w", err)
	}

	dataset := statementDataset(info)
	var result ExportResult
	switch format {
	case "csv":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, fmt.Errorf("export statement: %w", err)
		}
		result = ExportResult{
			Filename:    fmt.Sprintf("statement_%s.csv", studentID),
			ContentType: "text/csv",
			Data:        data,
		}
	case "pdf":
		data, err := s.pdf.Render(dataset, "Statement of Account")
		if err != nil {
			return nil, fmt.Errorf("export statement: %w", err)
		}
		result = ExportResult{
			Filename:    fmt.Sprintf("statement_%s.pdf", studentID),
			ContentType: "application/pdf",
			Data:        data,
		}
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.AuditActionExport,
		Resource:   "billing_statement",
		ResourceID: studentID,
		NewValues:  map[string]string{"format": format},
	})
	return &result, nil
}

func statementDataset(info *dto.BillingInformationResponse) export.Dataset {
	rows := make([]map[string]string, 0, len(info.Ledger)+1)
	for _, row := range info.Ledger {
		rows = append(rows, map[string]string{
			"Date":        row.Date,
			"Particulars": row.Particulars,
			"Debit":       strconv.FormatFloat(row.Debit, 'f', 2, 64),
			"Credit":      strconv.FormatFloat(row.Credit, 'f', 2, 64),
			"Balance":     strconv.FormatFloat(row.RunningBalance, 'f', 2, 64),
		})
	}
	rows = append(rows, map[string]string{
		"Particulars": "Outstanding Balance",
		"Balance":     info.BalanceDisplay,
	})
	return export.Dataset{Headers: statementHeaders, Rows: rows}
}
