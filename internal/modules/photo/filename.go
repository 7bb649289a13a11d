package photo

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const fallbackStem = "photo"

var allowedExt = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"gif":  {},
	"webp": {},
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// extOf returns the lower-cased extension without the dot.
func extOf(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

func isAllowed(name string) bool {
	_, ok := allowedExt[extOf(name)]
	return ok
}

// sanitizeFilename reduces raw to a flat ASCII name: accents are decomposed and
// dropped, separators become underscores, anything outside [A-Za-z0-9_.-] is
// removed and leading/trailing dots and underscores are trimmed.
func sanitizeFilename(raw string) string {
	decomposed := norm.NFKD.String(raw)
	var b strings.Builder
	for _, r := range decomposed {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	s := strings.NewReplacer("/", " ", "\\", " ").Replace(b.String())
	s = strings.Join(strings.Fields(s), "_")
	s = unsafeFilenameChars.ReplaceAllString(s, "")
	return strings.Trim(s, "._")
}

// storedName sanitises an upload name, keeping the original allowed extension
// when sanitising destroys it.
func storedName(raw string) string {
	ext := extOf(raw)
	name := sanitizeFilename(raw)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" || extOf(name) != ext {
		return fallbackStem + "." + ext
	}
	return name
}

// collisionName appends _<suffix> before the lower-cased extension.
func collisionName(name string, suffix string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + suffix + strings.ToLower(ext)
}

// checkName accepts only a single plain path segment.
func checkName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || name == "." || name == ".." {
		return "", ErrInvalidName
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return "", ErrInvalidName
	}
	if filepath.Base(name) != name {
		return "", ErrInvalidName
	}
	return name, nil
}

// Items renders photos as public list entries under urlPrefix.
func Items(photos []Photo, urlPrefix string) []Item {
	items := make([]Item, 0, len(photos))
	for _, p := range photos {
		u := strings.TrimRight(urlPrefix, "/") + "/" + url.PathEscape(p.Name)
		if p.Version > 0 {
			u += "?v=" + strconv.FormatInt(p.Version, 10)
		}
		items = append(items, Item{URL: u, Name: p.Name})
	}
	return items
}
