package service

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const MinMatchRatio = 0.8

var (
	bracketed    = regexp.MustCompile(`﴿([^﴾]*)﴾|\{([^}]*)\}`)
	arabicChunks = regexp.MustCompile(`[\x{0600}-\x{06FF}\s]+`)
)

func isTashkeel(r rune) bool {
	return (r >= 0x064B && r <= 0x065F) || r == 0x0670
}

// HasTashkeel: ada harakat (U+064B..U+065F, U+0670)
func HasTashkeel(s string) bool {
	for _, r := range s {
		if isTashkeel(r) {
			return true
		}
	}
	return false
}

func StripTashkeel(s string) string {
	return strings.Map(func(r rune) rune {
		if isTashkeel(r) {
			return -1
		}
		return r
	}, s)
}

// NormalizeArabic: tanpa harakat/tatwil, alif disatukan, ة -> ه, ى -> ي, spasi dirapikan
func NormalizeArabic(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case isTashkeel(r), r == 0x0640:
			return -1
		case r == 'أ', r == 'إ', r == 'آ', r == 'ٱ':
			return 'ا'
		case r == 'ة':
			return 'ه'
		case r == 'ى':
			return 'ي'
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// ExtractVerseText: isi ﴿...﴾ atau {...}; kalau tidak ada, gabungan potongan teks Arab.
func ExtractVerseText(s string) string {
	var parts []string
	for _, m := range bracketed.FindAllStringSubmatch(s, -1) {
		p := m[1]
		if p == "" {
			p = m[2]
		}
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		for _, p := range arabicChunks.FindAllString(s, -1) {
			if p = strings.TrimSpace(p); p != "" && containsArabicLetter(p) {
				parts = append(parts, p)
			}
		}
	}
	return strings.Join(parts, " ")
}

func containsArabicLetter(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) && unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// Ratio: 1 - jarak/panjang terpanjang (dalam rune)
func Ratio(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

type Match struct {
	Surah     int     `json:"surah"`
	SurahName string  `json:"surah_name"`
	Ayah      int     `json:"ayah"`
	Text      string  `json:"text"`
	Score     float64 `json:"score"`
}

// DetectVerse cari ayat al-Fatihah paling mirip; nil kalau skor < 0.8
func DetectVerse(text string) *Match {
	needle := NormalizeArabic(text)
	if needle == "" {
		return nil
	}
	var best *Match
	for _, v := range fatiha {
		score := Ratio(needle, NormalizeArabic(v.Text))
		if score < MinMatchRatio {
			continue
		}
		if best == nil || score > best.Score {
			best = &Match{Surah: v.Surah, SurahName: v.SurahName, Ayah: v.Ayah, Text: v.Text, Score: score}
		}
	}
	return best
}

type Detection struct {
	HasTashkeel bool   `json:"has_tashkeel"`
	VerseText   string `json:"verse_text"`
	Match       *Match `json:"match"`
}

// Detect: teks berharakat -> ekstrak ayat lalu cocokkan
func Detect(text string) Detection {
	out := Detection{HasTashkeel: HasTashkeel(text)}
	if !out.HasTashkeel {
		return out
	}
	out.VerseText = ExtractVerseText(text)
	if out.VerseText != "" {
		out.Match = DetectVerse(out.VerseText)
	}
	return out
}
