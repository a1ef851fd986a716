package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// MaxImageSize is the largest upload accepted per file
const MaxImageSize = 20 << 20

// StoredName turns an uploaded file name into "<base>_<unix millis><ext>" so
// repeated uploads of the same file do not overwrite each other.
func StoredName(original string, now time.Time) string {
	name := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if name == "." || name == "/" {
		name = "image"
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("%s_%d%s", base, now.UnixMilli(), ext)
}
