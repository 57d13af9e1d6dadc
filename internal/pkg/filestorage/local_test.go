package filestorage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qlin/dormtrade/internal/pkg/apperrors"
)

func TestValidateImageExtension(t *testing.T) {
	for _, name := range []string{"cover.jpg", "photo.JPEG", "a.png", "b.gif", "c.webp"} {
		assert.NoError(t, ValidateImageExtension(name), name)
	}

	for _, name := range []string{"shell.php", "doc.pdf", "archive.zip", "noext", "script.js"} {
		err := ValidateImageExtension(name)
		assert.ErrorIs(t, err, apperrors.ErrInvalidFileType, name)
	}
}

func TestGetFullPath(t *testing.T) {
	ls := &LocalStorage{basePath: "/srv/data/uploads", baseURL: "http://localhost:8080/uploads"}

	assert.Equal(t, "/srv/data/uploads/postings/x.jpg", ls.GetFullPath("http://localhost:8080/uploads/postings/x.jpg"))
	assert.Equal(t, "/srv/data/uploads/postings/x.jpg", ls.GetFullPath("uploads/postings/x.jpg"))
	assert.Equal(t, "", ls.GetFullPath(""))
}
