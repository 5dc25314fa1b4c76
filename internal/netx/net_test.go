package netx

import (
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultipartBody_FieldsAndFile(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(doc, []byte("%PDF-1.4 fake"), 0o600))

	body, ct, err := MultipartBody([][2]string{
		{"subject_id", "7"},
		{"task", "Build a parser"},
	}, &FilePart{Field: "documentation", Path: doc})
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(ct)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(1 << 20)
	require.NoError(t, err)
	require.Equal(t, []string{"7"}, form.Value["subject_id"])
	require.Equal(t, []string{"Build a parser"}, form.Value["task"])

	require.Len(t, form.File["documentation"], 1)
	fh := form.File["documentation"][0]
	require.Equal(t, "report.pdf", fh.Filename)
	f, err := fh.Open()
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.4 fake", string(data))
}

func TestMultipartBody_NoFile(t *testing.T) {
	_, ct, err := MultipartBody([][2]string{{"a", "b"}}, nil)
	require.NoError(t, err)
	require.Contains(t, ct, "multipart/form-data")
}

func TestMultipartBody_MissingFile(t *testing.T) {
	_, _, err := MultipartBody(nil, &FilePart{Field: "documentation", Path: "/does/not/exist"})
	require.Error(t, err)
}
