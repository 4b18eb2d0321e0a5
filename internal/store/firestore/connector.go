package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// ConnectOptions configures the Firestore client connection.
type ConnectOptions struct {
	ProjectID       string
	CredentialsFile string // empty = application default credentials
}

// Connect builds the Firestore client. Credentials resolution follows
// the usual GCP chain; FIRESTORE_EMULATOR_HOST is honored by the SDK
// for local development.
func Connect(ctx context.Context, opts ConnectOptions) (*firestore.Client, error) {
	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, opts.ProjectID, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return client, nil
}
