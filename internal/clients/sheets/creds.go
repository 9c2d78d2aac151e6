package sheets

import (
	"context"
	"os"
	"strings"

	gsheets "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"
)

// ClientOptionsFromEnv resolves service-account credentials for the
// spreadsheet API. GOOGLE_SA_KEY_JSON takes inline JSON;
// GOOGLE_APPLICATION_CREDENTIALS points at a key file. With neither
// set, application default credentials apply.
func ClientOptionsFromEnv() []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_SA_KEY_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	opts := []option.ClientOption{
		option.WithScopes(gsheets.SpreadsheetsScope),
	}
	if creds == "" {
		return opts
	}
	if strings.HasPrefix(creds, "{") {
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	} else {
		opts = append(opts, option.WithCredentialsFile(creds))
	}
	return opts
}

// NewService builds the underlying spreadsheet API service.
func NewService(ctx context.Context, opts ...option.ClientOption) (*gsheets.Service, error) {
	return gsheets.NewService(ctx, opts...)
}
