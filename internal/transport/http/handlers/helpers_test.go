package handlers

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

// newMultipartBody writes a multipart form with the given text fields
// into buf and returns the Content-Type header value to send with it.
func newMultipartBody(t *testing.T, buf *bytes.Buffer, fields map[string]string) string {
	t.Helper()
	w := multipart.NewWriter(buf)
	for name, value := range fields {
		require.NoError(t, w.WriteField(name, value))
	}
	require.NoError(t, w.Close())
	return w.FormDataContentType()
}
