package publish

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/hashicorp/go-retryablehttp"
)

const graphAPI = "https://graph.facebook.com/v19.0"

// Facebook posts photos to a Page through the Graph API.
type Facebook struct {
	Token  string
	PageID string
	// BaseURL overrides the Graph API root.
	BaseURL string
	Client  *retryablehttp.Client
}

func (f *Facebook) Name() string { return "facebook" }

func (f *Facebook) Publish(ctx context.Context, post Post) (Receipt, error) {
	if f.Token == "" {
		return Receipt{}, fmt.Errorf("facebook: access token missing: %w", ErrNotConfigured)
	}
	if f.PageID == "" {
		return Receipt{}, fmt.Errorf("facebook: page id missing: %w", ErrNotConfigured)
	}

	body, contentType, err := photoForm(f.Token, post)
	if err != nil {
		return Receipt{}, fmt.Errorf("facebook: build form: %w", err)
	}
	base := f.BaseURL
	if base == "" {
		base = graphAPI
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, base+"/"+f.PageID+"/photos", body)
	if err != nil {
		return Receipt{}, fmt.Errorf("facebook: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	id, err := do(clientOrDefault(f.Client), req, f.Name())
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{Platform: f.Name(), ID: id, URL: "https://www.facebook.com/" + id}, nil
}

// photoForm encodes the multipart body. The message is the post caption,
// which for Facebook is Post.Description.
func photoForm(token string, post Post) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	contentType := post.ContentType
	if contentType == "" {
		contentType = "image/png"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="source"; filename="poster.png"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(post.Image); err != nil {
		return nil, "", err
	}

	fields := [][2]string{
		{"access_token", token},
		{"message", post.Description},
		{"published", "true"},
	}
	for _, kv := range fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
