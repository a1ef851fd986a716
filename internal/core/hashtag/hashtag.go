package hashtag

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofrs/uuid"
)

// MaxNameLength is the longest tag name (in runes) the store accepts.
const MaxNameLength = 255

type Hashtag struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// a '#' followed by anything that is neither whitespace nor another '#'
var tagPattern = regexp.MustCompile(`#[^#\s\p{Z}]+`)

// Extract returns the distinct, lowercased tag names found in text, in the
// order they first appear.
func Extract(text string) []string {
	matches := tagPattern.FindAllString(text, -1)
	names := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		name := strings.ToLower(m[1:])
		if utf8.RuneCountInString(name) > MaxNameLength {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
