package kegg

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// FetchImage streams the image at imageRef into w and returns its content type.
func (c *Client) FetchImage(ctx context.Context, imageRef string, w io.Writer) (string, error) {
	resp, err := c.fetch(ctx, imageRef)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", err
	}
	return resp.Header.Get("Content-Type"), nil
}

// FetchAndSaveImage writes the image at imageRef to filePath, creating its directory when needed.
// Nothing is written when KEGG does not return the image.
func (c *Client) FetchAndSaveImage(ctx context.Context, imageRef, filePath string) (err error) {
	resp, err := c.fetch(ctx, imageRef)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}
	f, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(f, resp.Body)
	return err
}

func (c *Client) fetch(ctx context.Context, imageRef string) (*http.Response, error) {
	resp, err := c.get(ctx, imageRef)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, newStatusError(imageRef, resp)
	}
	return resp, nil
}
