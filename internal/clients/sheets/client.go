package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	gsheets "google.golang.org/api/sheets/v4"

	"github.com/samjsmart/gig-int-garden-api/internal/domain"
	"github.com/samjsmart/gig-int-garden-api/internal/platform/ctxutil"
	"github.com/samjsmart/gig-int-garden-api/internal/platform/envutil"
	"github.com/samjsmart/gig-int-garden-api/internal/platform/logger"
)

// Client mirrors current registration values into a worksheet. The
// sheet is a projection for the organizers, never the source of truth.
type Client interface {
	UpsertRow(ctx context.Context, row MirrorRow) error
}

type Config struct {
	SpreadsheetID  string
	WorksheetTitle string
	Timeout        time.Duration
}

func ConfigFromEnv() Config {
	timeoutSec := envutil.Int("GOOGLE_SHEETS_TIMEOUT_SECONDS", 30)
	title := strings.TrimSpace(envutil.String("GOOGLE_SHEET_WORKSHEET", "Website Form Responses"))

	return Config{
		SpreadsheetID:  strings.TrimSpace(envutil.String("GOOGLE_SHEET_ID", "")),
		WorksheetTitle: title,
		Timeout:        time.Duration(timeoutSec) * time.Second,
	}
}

// MirrorRow is the denormalized projection of a registration's current
// values plus the payment-status flag. It carries no history.
type MirrorRow struct {
	Values domain.SubmissionValues
	Paid   string
}

// Column layout of the worksheet. Row 1 is the header; data starts at
// row 2. Order must match the header row of the live sheet.
var headerRow = []string{"name", "email", "adults", "children", "anythingElse", "bellTent", "davidMascot", "paid"}

const (
	emailColumnIndex = 1
	firstDataRow     = 2
)

func New(log *logger.Logger, cfg Config, svc *gsheets.Service) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if svc == nil {
		return nil, fmt.Errorf("sheets service required")
	}
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, fmt.Errorf("missing GOOGLE_SHEET_ID")
	}
	if strings.TrimSpace(cfg.WorksheetTitle) == "" {
		return nil, fmt.Errorf("worksheet title required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &client{
		log: log.With("client", "SheetsClient"),
		cfg: cfg,
		svc: svc,
	}, nil
}

type client struct {
	log *logger.Logger
	cfg Config
	svc *gsheets.Service
}

func (c *client) UpsertRow(ctx context.Context, row MirrorRow) error {
	if c == nil || c.svc == nil {
		return fmt.Errorf("sheets client unavailable")
	}

	email := strings.TrimSpace(row.Values.Email)
	if email == "" {
		return fmt.Errorf("sheets: row email required")
	}

	ctx, cancel := context.WithTimeout(ctxutil.Default(ctx), c.cfg.Timeout)
	defer cancel()

	rowIndex, err := c.findRowByEmail(ctx, email)
	if err != nil {
		return err
	}

	values := rowValues(row)

	if rowIndex > 0 {
		rng := fmt.Sprintf("'%s'!A%d", c.cfg.WorksheetTitle, rowIndex)
		_, err = c.svc.Spreadsheets.Values.
			Update(c.cfg.SpreadsheetID, rng, &gsheets.ValueRange{Values: [][]interface{}{values}}).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("sheets: update row %d: %w", rowIndex, err)
		}
		return nil
	}

	rng := fmt.Sprintf("'%s'!A:%s", c.cfg.WorksheetTitle, columnLetter(len(headerRow)))
	_, err = c.svc.Spreadsheets.Values.
		Append(c.cfg.SpreadsheetID, rng, &gsheets.ValueRange{Values: [][]interface{}{values}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append row: %w", err)
	}
	return nil
}

// findRowByEmail returns the 1-based sheet row holding email, or 0 when
// absent. Email comparison is case-insensitive.
func (c *client) findRowByEmail(ctx context.Context, email string) (int, error) {
	rng := fmt.Sprintf("'%s'!%s:%s", c.cfg.WorksheetTitle, columnLetter(emailColumnIndex+1), columnLetter(emailColumnIndex+1))
	resp, err := c.svc.Spreadsheets.Values.
		Get(c.cfg.SpreadsheetID, rng).
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("sheets: read key column: %w", err)
	}

	want := strings.ToLower(email)
	for i, rowCells := range resp.Values {
		rowNum := i + 1
		if rowNum < firstDataRow {
			continue
		}
		if len(rowCells) == 0 {
			continue
		}
		cell, ok := rowCells[0].(string)
		if !ok {
			continue
		}
		if strings.ToLower(strings.TrimSpace(cell)) == want {
			return rowNum, nil
		}
	}
	return 0, nil
}

func rowValues(row MirrorRow) []interface{} {
	return []interface{}{
		row.Values.Name,
		row.Values.Email,
		row.Values.Adults,
		row.Values.Children,
		row.Values.AnythingElse,
		row.Values.BellTent,
		row.Values.DavidMascot,
		row.Paid,
	}
}

func columnLetter(n int) string {
	// Enough for this sheet's handful of columns.
	return string(rune('A' + n - 1))
}
