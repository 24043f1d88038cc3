// Package media wraps the external media host (Cloudinary). The client is
// constructed from explicit credentials and injected into whoever needs it;
// nothing in this package reads process-wide state.
package media

import "context"

// SignedUpload is the descriptor a browser needs to upload an asset directly
// to the media host. The signing secret itself never leaves the server.
type SignedUpload struct {
	CloudName    string `json:"cloud_name"`
	APIKey       string `json:"api_key"`
	Timestamp    int64  `json:"timestamp"`
	Signature    string `json:"signature"`
	Folder       string `json:"folder"`
	ResourceType string `json:"resource_type"`
}

// Client is the media-host surface the application depends on.
type Client interface {
	// Destroy removes a remotely hosted asset by its public id.
	Destroy(ctx context.Context, publicID string) error

	// SignUpload produces a signed-upload descriptor for the given unix
	// timestamp.
	SignUpload(timestamp int64) (*SignedUpload, error)
}
