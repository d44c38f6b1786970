package apiclient

import (
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_EncodeKeepsOrderAndQuotes(t *testing.T) {
	form := NewForm()
	form.AddField("colorVariants", `["Red","Blue"]`)
	form.AddField("images", "/src/uploads/a.jpg")
	form.AddField("images", "/src/uploads/b.jpg")
	form.AddFile("images", `we"ird.png`, "image/png", []byte{0x89, 'P', 'N', 'G'})

	assert.Equal(t, []string{"/src/uploads/a.jpg", "/src/uploads/b.jpg"}, form.Values("images"))
	assert.Equal(t, `["Red","Blue"]`, form.Value("colorVariants"))
	assert.Equal(t, 1, form.FileCount("images"))
	assert.Equal(t, "", form.Value("missing"))

	body, contentType, err := form.Encode()
	require.NoError(t, err)

	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)

	r := multipart.NewReader(body, params["boundary"])
	var names []string
	for {
		part, err := r.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		names = append(names, part.FormName())
		if part.FileName() != "" {
			assert.Equal(t, `we"ird.png`, part.FileName())
			assert.Equal(t, "image/png", part.Header.Get("Content-Type"))
		}
	}

	assert.Equal(t, []string{"colorVariants", "images", "images", "images"}, names)
}
