package sheets

import (
	"context"
	"fmt"

	sheets_v4 "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"

	"github.com/mzafir/hawk-ai-agent/internal/config"
	"github.com/mzafir/hawk-ai-agent/internal/logging"
)

// Client reads the project tracking spreadsheet. All read failures
// degrade to empty data with a warning; spreadsheet problems never
// abort an analysis run.
type Client struct {
	svc           *sheets_v4.Service
	spreadsheetID string
	logger        logging.Logger
}

// NewClient authenticates with a service account key and returns a
// read-only client for the configured spreadsheet.
func NewClient(ctx context.Context, cfg config.SheetsConfig, logger logging.Logger) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is empty")
	}
	if logger == nil {
		logger = logging.Default()
	}
	svc, err := sheets_v4.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets_v4.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: cfg.SpreadsheetID, logger: logger}, nil
}

// Worksheets lists the spreadsheet's tab titles in sheet order. Each
// tab corresponds to one project. Failures return no data.
func (c *Client) Worksheets(ctx context.Context) []string {
	doc, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		c.logger.Warn("listing worksheets failed", logging.KeyError, err)
		return nil
	}
	titles := make([]string, 0, len(doc.Sheets))
	for _, sheet := range doc.Sheets {
		if sheet.Properties != nil {
			titles = append(titles, sheet.Properties.Title)
		}
	}
	return titles
}

// Records fetches a worksheet as a table: the first row is the header,
// every following row becomes a column-to-value record. Failures return
// an empty table.
func (c *Client) Records(ctx context.Context, worksheet string) Table {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, worksheet).Context(ctx).Do()
	if err != nil {
		c.logger.Warn("fetching worksheet failed", "worksheet", worksheet, logging.KeyError, err)
		return Table{}
	}
	return tableFromValues(resp.Values)
}
