package mediastore

import (
	"context"
	"time"

	"github.com/bioquip/bioquip/config"
	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
)

// Client relays uploaded files to an external media host using the
// cloudinary-style unsigned upload API and returns the hosted URL.
type Client struct {
	uploadURL string
	preset    string
	folder    string
	timeout   time.Duration
}

func NewClient(cfg config.MediaConfig) *Client {
	return &Client{
		uploadURL: cfg.UploadURL,
		preset:    cfg.Preset,
		folder:    cfg.Folder,
		timeout:   30 * time.Second,
	}
}

// Configured reports whether an upload endpoint is set.
func (c *Client) Configured() bool {
	return c.uploadURL != ""
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the file body to the media host and returns the public URL
// of the stored asset.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if !c.Configured() {
		return "", errors.New("media host not configured")
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var res uploadResponse
	var code int
	err := gout.POST(c.uploadURL).
		WithContext(reqCtx).
		SetForm(gout.H{
			"upload_preset": c.preset,
			"folder":        c.folder,
			"file":          gout.FormMem(data),
		}).
		BindJSON(&res).
		Code(&code).
		Do()
	if err != nil {
		return "", errors.Wrap(err, "media host upload")
	}
	if code < 200 || code >= 300 {
		if res.Error.Message != "" {
			return "", errors.Errorf("media host rejected upload: %s", res.Error.Message)
		}
		return "", errors.Errorf("media host rejected upload: status %d", code)
	}
	if res.SecureURL != "" {
		return res.SecureURL, nil
	}
	if res.URL != "" {
		return res.URL, nil
	}
	return "", errors.New("media host returned no url")
}
