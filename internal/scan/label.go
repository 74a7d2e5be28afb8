package scan

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var separators = strings.NewReplacer("_", " ", "-", " ")

// Label derives a human-readable caption from a file or directory name:
// the extension is dropped, underscores and hyphens become spaces, and
// every run of letters is title-cased. A letter is capitalised whenever it
// follows a character that is not a letter, digits and apostrophes included.
//
//	sunset-over_hills.png -> Sunset Over Hills
//	img2photo.png         -> Img2Photo
func Label(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return Heading(stem)
}

// Heading applies the label transform to a name that has no extension,
// such as a collection directory: my_collection-1 -> My Collection 1.
func Heading(name string) string {
	s := separators.Replace(name)
	title := cases.Title(language.Und)

	var b strings.Builder
	b.Grow(len(s))
	start := -1 // start of the current letter run, or -1
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if isCased(r) {
			if start < 0 {
				start = i
			}
		} else {
			if start >= 0 {
				b.WriteString(title.String(s[start:i]))
				start = -1
			}
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	if start >= 0 {
		b.WriteString(title.String(s[start:]))
	}
	return b.String()
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

// Locator returns file relative to documentDir using forward slashes,
// suitable as an image source in a document stored in documentDir.
func Locator(file, documentDir string) (string, error) {
	absFile, err := filepath.Abs(file)
	if err != nil {
		return "", err
	}
	absDir, err := filepath.Abs(documentDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absDir, absFile)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
