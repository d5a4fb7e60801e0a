package helper

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

const DefaultSlugMaxLen = 160

// SlugOptions menentukan cara cek keunikan slug di DB.
type SlugOptions struct {
	Table       string
	SlugColumn  string
	MaxLen      int
	DefaultBase string
	// ExcludeID abaikan baris ini saat update
	ExcludeID any
}

// GenerateSlug: lower-case, non huruf/angka jadi "-", "-" beruntun dilebur.
// Huruf Arab dipertahankan (unicode.IsLetter).
func GenerateSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if unicode.Is(unicode.Mn, r) {
			// harakat ikut dibuang dari slug
			continue
		}
		if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

func cutToLen(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return strings.Trim(s, "-")
	}
	return strings.Trim(string(r[:n]), "-")
}

func isSlugTaken(db *gorm.DB, opts SlugOptions, candidate string) (bool, error) {
	q := db.Table(opts.Table).Where(fmt.Sprintf("%s = ?", opts.SlugColumn), candidate)
	if opts.ExcludeID != nil {
		q = q.Where("id <> ?", opts.ExcludeID)
	}
	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// GenerateUniqueSlug coba base, lalu base-2, base-3, ... sampai tidak bentrok.
func GenerateUniqueSlug(db *gorm.DB, opts SlugOptions, base string) (string, error) {
	if opts.Table == "" || opts.SlugColumn == "" {
		return "", errors.New("slug options: table/slug column required")
	}
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = DefaultSlugMaxLen
	}

	slug := GenerateSlug(base)
	if slug == "" {
		slug = GenerateSlug(opts.DefaultBase)
	}
	if slug == "" {
		slug = "x"
	}
	slug = cutToLen(slug, maxLen)

	taken, err := isSlugTaken(db, opts, slug)
	if err != nil {
		return "", err
	}
	if !taken {
		return slug, nil
	}

	for i := 2; i < 1000; i++ {
		suf := fmt.Sprintf("-%d", i)
		candidate := cutToLen(slug, maxLen-len(suf)) + suf
		taken, err = isSlugTaken(db, opts, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", errors.New("failed to generate unique slug")
}
