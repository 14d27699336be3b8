package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/livestockcare/internal/config"
	"github.com/mamadbah2/livestockcare/internal/domain/models"
)

const (
	gvaSheetRange  = "GVA!A:N"
	gvaHeaderRange = "GVA!A1:N1"
	dateLayout     = "2006-01-02"
)

var gvaHeader = []interface{}{
	"Report ID", "Date", "Village", "Mandal", "District", "Vet", "Institution",
	"Milk GVA", "Sheep/Goat GVA", "Buffalo Meat GVA", "Poultry Meat GVA", "Egg GVA",
	"Total Village GVA", "Vet ID",
}

// GVAExporter appends saved GVA reports to a Google Sheet, one row per report.
type GVAExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGVAExporter builds a Google Sheets backed exporter.
func NewGVAExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GVAExporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GVAExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// EnsureHeader writes the column header when the sheet is still empty.
func (e *GVAExporter) EnsureHeader(ctx context.Context) error {
	resp, err := e.service.Spreadsheets.Values.Get(e.spreadsheetID, gvaHeaderRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read range %s: %w", gvaHeaderRange, err)
	}
	if len(resp.Values) > 0 {
		return nil
	}
	return e.appendRow(ctx, gvaHeader)
}

// ExportGVAReport appends the report's summary row.
func (e *GVAExporter) ExportGVAReport(ctx context.Context, report *models.GVAReport) error {
	return e.appendRow(ctx, GVARow(report))
}

func (e *GVAExporter) appendRow(ctx context.Context, values []interface{}) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, gvaSheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", gvaSheetRange, err)
	}

	e.logger.Debug("row appended to sheet", zap.String("range", gvaSheetRange))
	return nil
}

// GVARow flattens a report into the sheet's column order.
func GVARow(report *models.GVAReport) []interface{} {
	r := report.Results
	return []interface{}{
		report.ID,
		report.CreatedAt.UTC().Format(dateLayout),
		report.Inputs.VillageName,
		report.Inputs.Mandal,
		report.Inputs.District,
		report.VetName,
		report.Institution,
		r.MilkGVA,
		r.SheepGoatGVA,
		r.BuffaloMeatGVA,
		r.PoultryMeatGVA,
		r.EggGVA,
		r.TotalVillageGVA,
		report.VetID,
	}
}
