package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"preetosbot/internal/config"
	apperrors "preetosbot/internal/errors"
)

const spreadsheetScope = "https://www.googleapis.com/auth/spreadsheets.readonly"

// SheetsSource reads the ledger through the Google Sheets API.
type SheetsSource struct {
	service       *sheets.Service
	spreadsheetID string
	logger        *slog.Logger
}

// NewSource builds the Sheets adapter named by cfg.Adapter.
func NewSource(ctx context.Context, cfg config.LedgerConfig, logger *slog.Logger) (*SheetsSource, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var opts []option.ClientOption
	switch cfg.Adapter {
	case "env":
		creds, err := credentialsFromEnv(cfg)
		if err != nil {
			return nil, fmt.Errorf("build env credentials: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(creds))
	default:
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	opts = append(opts, option.WithScopes(spreadsheetScope))

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	logger.InfoContext(ctx, "ledger source initialized",
		"adapter", cfg.Adapter,
		"spreadsheet_id", cfg.SpreadsheetID,
	)

	return &SheetsSource{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// FetchRows implements Source.
func (s *SheetsSource) FetchRows(ctx context.Context, sheet, cellRange string) (Table, error) {
	rangeStr := sheet
	if cellRange != "" {
		rangeStr = fmt.Sprintf("%s!%s", sheet, cellRange)
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, rangeStr).Context(ctx).Do()
	if err != nil {
		s.logger.ErrorContext(ctx, "ledger fetch failed", "range", rangeStr, "error", err)
		return Table{}, apperrors.SourceUnavailable(err)
	}

	values := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprintf("%v", cell))
		}
		values = append(values, cells)
	}

	table := splitTable(values)
	if table.Empty() {
		return Table{}, fmt.Errorf("range %s: %w", rangeStr, apperrors.ErrNoData)
	}

	s.logger.DebugContext(ctx, "ledger fetched",
		"range", rangeStr,
		"data_rows", len(table.Rows),
	)

	return table, nil
}

// credentialsFromEnv assembles a service-account JSON document from the
// individually injected fields. Hosted platforms flatten the private key's
// newlines into literal backslash-n sequences, so those are restored here.
func credentialsFromEnv(cfg config.LedgerConfig) ([]byte, error) {
	if cfg.ClientEmail == "" || cfg.PrivateKey == "" {
		return nil, fmt.Errorf("client email and private key are required")
	}

	doc := map[string]string{
		"type":         "service_account",
		"project_id":   cfg.ProjectID,
		"client_email": cfg.ClientEmail,
		"private_key":  strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n"),
		"token_uri":    "https://oauth2.googleapis.com/token",
	}

	return json.Marshal(doc)
}
