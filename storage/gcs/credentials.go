package gcs

import (
	"context"
	"encoding/base64"
	"fmt"

	gstorage "cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	apperrors "github.com/siri1404/OSPSD-Spring-26/errors"
)

// credentialOptions resolves client options from the configuration.
//
// Precedence: an explicit credentials file path wins outright and any key
// material is ignored; otherwise key material is decoded and validated;
// otherwise no options are returned and the SDK falls back to ambient
// application default credentials.
func credentialOptions(ctx context.Context, cfg *Config) ([]option.ClientOption, error) {
	if cfg.CredentialsPath != "" {
		return []option.ClientOption{option.WithCredentialsFile(cfg.CredentialsPath)}, nil
	}

	if cfg.ServiceKey != "" {
		keyJSON := decodeServiceKey(cfg.ServiceKey)
		creds, err := google.CredentialsFromJSON(ctx, keyJSON, gstorage.ScopeFullControl)
		if err != nil {
			return nil, apperrors.Configuration(
				fmt.Sprintf("service key is not a valid credentials document: %v", err)).WithCause(err)
		}
		return []option.ClientOption{option.WithCredentials(creds)}, nil
	}

	return nil, nil
}

// decodeServiceKey interprets key material as strict base64 first and falls
// back to treating it as raw JSON text when decoding fails.
func decodeServiceKey(key string) []byte {
	if decoded, err := base64.StdEncoding.Strict().DecodeString(key); err == nil {
		return decoded
	}
	return []byte(key)
}
