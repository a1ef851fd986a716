package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoredName(t *testing.T) {
	at := time.UnixMilli(1640995200123)

	tests := []struct {
		name     string
		original string
		want     string
	}{
		{name: "keeps extension", original: "cat.png", want: "cat_1640995200123.png"},
		{name: "no extension", original: "README", want: "README_1640995200123"},
		{name: "strips directories", original: "../../etc/passwd", want: "passwd_1640995200123"},
		{name: "strips windows directories", original: `C:\pics\dog.jpg`, want: "dog_1640995200123.jpg"},
		{name: "dotfile", original: ".png", want: "image_1640995200123.png"},
		{name: "empty", original: "", want: "image_1640995200123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StoredName(tt.original, at))
		})
	}
}

func TestDiskImageStorageSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewDiskImageStorage(dir)
	require.NoError(t, err)
	s.Now = func() time.Time { return time.UnixMilli(42) }

	ref, err := s.Save(context.Background(), "photo.jpg", "image/jpeg", strings.NewReader("jpeg bytes"))
	require.NoError(t, err)
	assert.Equal(t, "photo_42.jpg", ref)

	data, err := os.ReadFile(filepath.Join(dir, ref))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	_, err = s.Save(context.Background(), "photo.jpg", "image/jpeg", strings.NewReader("again"))
	assert.Error(t, err, "same name and timestamp must not overwrite")
}
