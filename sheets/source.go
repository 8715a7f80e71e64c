package sheets

import (
	"context"
	"errors"
	"fmt"

	"github.com/dilshat/wa-sender/model"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const (
	msgAuthFailed  = "Authentication failed, check your system time"
	msgBadCreds    = "Failed to load service account file, check your settings"
	msgReadFailed  = "Failed to read sheet, check your settings"
	msgNoDataFound = "No data found, check your settings"
)

// ValuesReader fetches the raw cell values of a range.
type ValuesReader interface {
	Read(ctx context.Context, credentialsFile, spreadsheetId, rng string) ([][]interface{}, error)
}

type Source interface {
	// Fetch returns the data rows of sheet number sheetNumber.
	Fetch(ctx context.Context, credentialsFile, spreadsheetId string, sheetNumber int) ([]model.Row, error)
}

func NewSource(reader ValuesReader) Source {
	return &source{reader: reader}
}

// NewGoogleSource reads spreadsheets with the Sheets API v4. Extra client
// options are appended to the credentials and scope options.
func NewGoogleSource(opts ...option.ClientOption) Source {
	return NewSource(&googleReader{opts: opts})
}

type source struct {
	reader ValuesReader
}

func (s *source) Fetch(ctx context.Context, credentialsFile, spreadsheetId string, sheetNumber int) ([]model.Row, error) {
	rng := SheetRange(sheetNumber)

	values, err := s.reader.Read(ctx, credentialsFile, spreadsheetId, rng)
	if err != nil {
		err = classify(err)
		zap.L().Warn("Error reading sheet",
			zap.String("spreadsheet", spreadsheetId),
			zap.String("range", rng),
			zap.Error(errors.Unwrap(err)))
		return nil, err
	}

	rows, err := ToRows(values)
	if err != nil {
		return nil, err
	}

	zap.L().Info("Sheet read", zap.String("spreadsheet", spreadsheetId), zap.String("range", rng), zap.Int("rows", len(rows)))
	return rows, nil
}

func SheetRange(sheetNumber int) string {
	return fmt.Sprintf("Sheet%d", sheetNumber)
}

func classify(err error) error {
	var authErr *AuthErr
	if errors.As(err, &authErr) {
		return authErr
	}
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return NewAuthError(msgAuthFailed, err)
	}
	var googleErr *googleapi.Error
	if errors.As(err, &googleErr) {
		// 403 usually means the sheet is not shared with the service account
		zap.L().Warn("Sheets API rejected request",
			zap.Int("code", googleErr.Code),
			zap.String("message", googleErr.Message))
	}
	return NewApiError(msgReadFailed, err)
}

type googleReader struct {
	opts []option.ClientOption
}

func (g *googleReader) Read(ctx context.Context, credentialsFile, spreadsheetId, rng string) ([][]interface{}, error) {
	opts := append([]option.ClientOption{
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsReadonlyScope),
	}, g.opts...)

	srv, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, NewAuthError(msgBadCreds, err)
	}

	resp, err := srv.Spreadsheets.Values.Get(spreadsheetId, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}
