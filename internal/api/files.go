package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"artes-cli/internal/model"
)

// UploadFile attaches a file to an activity via multipart form upload.
func (c *Client) UploadFile(ctx context.Context, activityID int, filename string, content io.Reader) (model.ActivityFile, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return model.ActivityFile{}, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return model.ActivityFile{}, err
	}
	if err := w.Close(); err != nil {
		return model.ActivityFile{}, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, filesPath(activityID), nil, &buf)
	if err != nil {
		return model.ActivityFile{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return model.ActivityFile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.ActivityFile{}, decodeError(resp)
	}
	var f model.ActivityFile
	err = decodeJSONBody(resp, &f)
	return f, err
}

// ListFiles returns an activity's attachments. Best-effort.
func (c *Client) ListFiles(ctx context.Context, activityID int) ([]model.ActivityFile, error) {
	var out []model.ActivityFile
	err := c.doJSON(ctx, http.MethodGet, filesPath(activityID), nil, nil, &out)
	if err := bestEffort("list files", err); err != nil {
		return nil, err
	}
	return out, nil
}

// DownloadFile fetches the binary content of an attachment. The bearer
// token rides along as usual; the caller decides where the bytes land.
func (c *Client) DownloadFile(ctx context.Context, activityID, fileID int) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, fmt.Sprintf("%s/%d", filesPath(activityID), fileID), nil)
}

func (c *Client) DeleteFile(ctx context.Context, activityID, fileID int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", filesPath(activityID), fileID), nil, nil, nil)
}

func filesPath(activityID int) string {
	return fmt.Sprintf("/activities/%d/files", activityID)
}
