package media

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Ensure CloudinaryClient implements Client
var _ Client = (*CloudinaryClient)(nil)

// CloudinaryClient implements Client against the Cloudinary API.
type CloudinaryClient struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
}

// NewCloudinaryClient creates a client from explicit credentials. folder is
// the upload folder offered to signed uploads; it defaults to "itineraries".
func NewCloudinaryClient(cloudName, apiKey, apiSecret, folder string) (*CloudinaryClient, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	if folder == "" {
		folder = "itineraries"
	}

	return &CloudinaryClient{
		cld:       cld,
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		folder:    folder,
	}, nil
}

// Destroy removes the asset with the given public id from Cloudinary.
// "not found" is treated as success: the asset is already gone.
func (c *CloudinaryClient) Destroy(ctx context.Context, publicID string) error {
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("cloudinary destroy %s: %s", publicID, res.Result)
	}
	return nil
}

// SignUpload signs the timestamp and upload folder with the API secret.
func (c *CloudinaryClient) SignUpload(timestamp int64) (*SignedUpload, error) {
	params := url.Values{}
	params.Set("timestamp", strconv.FormatInt(timestamp, 10))
	params.Set("folder", c.folder)

	signature, err := api.SignParameters(params, c.apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign upload parameters: %w", err)
	}

	return &SignedUpload{
		CloudName:    c.cloudName,
		APIKey:       c.apiKey,
		Timestamp:    timestamp,
		Signature:    signature,
		Folder:       c.folder,
		ResourceType: "image",
	}, nil
}
