// Package sheets reads property listings from, and appends analysis rows to,
// a Google Sheets worksheet.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Dan9191/property-service/internal/models"
	"github.com/Dan9191/property-service/internal/report"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var requiredCredentialFields = []string{
	"type", "project_id", "private_key_id", "private_key",
	"client_email", "client_id", "auth_uri", "token_uri",
}

// ValidateCredentials checks that data is a Google service-account key.
func ValidateCredentials(data []byte) error {
	var creds map[string]any
	if err := json.Unmarshal(data, &creds); err != nil {
		return fmt.Errorf("invalid credentials JSON: %w", err)
	}
	for _, field := range requiredCredentialFields {
		if _, ok := creds[field]; !ok {
			return fmt.Errorf("credentials missing field %q", field)
		}
	}
	if creds["type"] != "service_account" {
		return fmt.Errorf("credentials type must be service_account, got %v", creds["type"])
	}
	return nil
}

// CredentialsOption validates a service-account key and turns it into a client option.
func CredentialsOption(data []byte) (option.ClientOption, error) {
	if err := ValidateCredentials(data); err != nil {
		return nil, err
	}
	return option.WithCredentialsJSON(data), nil
}

// Client wraps one worksheet of a spreadsheet
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
	log           *logrus.Logger
}

// Info describes the connected worksheet
type Info struct {
	Title    string `json:"title"`
	RowCount int64  `json:"row_count"`
	ColCount int64  `json:"col_count"`
	URL      string `json:"url"`
}

// NewClient connects to a spreadsheet. An empty worksheet name selects the
// first worksheet.
func NewClient(ctx context.Context, spreadsheetID, worksheet string, log *logrus.Logger, opts ...option.ClientOption) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}
	opts = append([]option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}, opts...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, worksheet: worksheet, log: log}, nil
}

func (c *Client) sheetName(ctx context.Context) (string, error) {
	if c.worksheet != "" {
		return c.worksheet, nil
	}
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
		return "", fmt.Errorf("spreadsheet %s has no worksheets", c.spreadsheetID)
	}
	c.worksheet = ss.Sheets[0].Properties.Title
	return c.worksheet, nil
}

// Listings reads every listing row. The first row holds column headers.
func (c *Client) Listings(ctx context.Context) ([]models.Listing, error) {
	name, err := c.sheetName(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, quoteSheet(name)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet values: %w", err)
	}
	listings := ListingsFromValues(resp.Values)
	c.log.Infof("Loaded %d listings from sheet %s", len(listings), name)
	return listings, nil
}

// AppendAnalysis appends one flattened report row in report.FlatHeader order.
func (c *Client) AppendAnalysis(ctx context.Context, in report.Input) error {
	name, err := c.sheetName(ctx)
	if err != nil {
		return err
	}
	flat := report.FlatRow(in)
	row := make([]any, len(flat))
	for i, v := range flat {
		row[i] = v
	}
	_, err = c.svc.Spreadsheets.Values.Append(c.spreadsheetID, quoteSheet(name), &sheets.ValueRange{
		Values: [][]any{row},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}
	c.log.Infof("Appended analysis row for %s to sheet %s", in.Record.Address, name)
	return nil
}

// Info reports the title, size and URL of the connected worksheet.
func (c *Client) Info(ctx context.Context) (*Info, error) {
	name, err := c.sheetName(ctx)
	if err != nil {
		return nil, err
	}
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet: %w", err)
	}
	info := &Info{Title: name, URL: ss.SpreadsheetUrl}
	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == name && s.Properties.GridProperties != nil {
			info.RowCount = s.Properties.GridProperties.RowCount
			info.ColCount = s.Properties.GridProperties.ColumnCount
		}
	}
	return info, nil
}

func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
