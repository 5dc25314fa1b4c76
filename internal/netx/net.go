// Package netx builds request bodies that net/http leaves to the caller.
package netx

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// FilePart is a file attached to a multipart form.
type FilePart struct {
	Field string
	Path  string
}

// MultipartBody encodes fields (in the given order) and an optional file
// into a multipart/form-data body. It returns the body and its content type.
func MultipartBody(fields [][2]string, file *FilePart) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, kv := range fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", kv[0], err)
		}
	}

	if file != nil {
		f, err := os.Open(file.Path)
		if err != nil {
			return nil, "", fmt.Errorf("open %s: %w", file.Path, err)
		}
		defer f.Close()

		part, err := w.CreateFormFile(file.Field, filepath.Base(file.Path))
		if err != nil {
			return nil, "", fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, "", fmt.Errorf("copy %s: %w", file.Path, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
