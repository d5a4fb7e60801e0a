package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasTashkeel(t *testing.T) {
	assert.True(t, HasTashkeel("الْحَمْدُ"))
	assert.False(t, HasTashkeel("الحمد لله"))
	assert.False(t, HasTashkeel("hello"))
}

func TestNormalizeArabic(t *testing.T) {
	assert.Equal(t, "الحمد لله", NormalizeArabic("  الْحَمْدُ   لِلَّهِ "))
	assert.Equal(t, "اياك", NormalizeArabic("إِيَّاكَ"))
	assert.Equal(t, "رحمه", NormalizeArabic("رحمة"))
	assert.Equal(t, "هدي", NormalizeArabic("هدى"))
	assert.Equal(t, "الله", NormalizeArabic("اللـــه"))
}

func TestExtractVerseText(t *testing.T) {
	assert.Equal(t, "الْحَمْدُ لِلَّهِ", ExtractVerseText("قال تعالى ﴿الْحَمْدُ لِلَّهِ﴾ صدق الله"))
	assert.Equal(t, "مَالِكِ يَوْمِ الدِّينِ", ExtractVerseText("ayat {مَالِكِ يَوْمِ الدِّينِ} ok"))
	assert.Equal(t, "الْحَمْدُ", ExtractVerseText("hello الْحَمْدُ world"))
	assert.Equal(t, "", ExtractVerseText("no arabic here"))
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 1.0, Ratio("", ""))
	assert.Equal(t, 1.0, Ratio("abc", "abc"))
	assert.InDelta(t, 2.0/3.0, Ratio("abc", "abd"), 0.0001)
}

func TestDetectVerse(t *testing.T) {
	m := DetectVerse("الْحَمْدُ لِلَّهِ رَبِّ الْعَالَمِينَ")
	require.NotNil(t, m)
	assert.Equal(t, 1, m.Surah)
	assert.Equal(t, 2, m.Ayah)
	assert.Equal(t, 1.0, m.Score)

	// satu huruf salah masih cocok
	m = DetectVerse("مالك يوم الدبن")
	require.NotNil(t, m)
	assert.Equal(t, 4, m.Ayah)

	assert.Nil(t, DetectVerse("السلام عليكم ورحمة الله"))
	assert.Nil(t, DetectVerse("   "))
}

func TestDetect(t *testing.T) {
	d := Detect("اقرأ ﴿اهْدِنَا الصِّرَاطَ الْمُسْتَقِيمَ﴾")
	assert.True(t, d.HasTashkeel)
	assert.Equal(t, "اهْدِنَا الصِّرَاطَ الْمُسْتَقِيمَ", d.VerseText)
	require.NotNil(t, d.Match)
	assert.Equal(t, 6, d.Match.Ayah)

	d = Detect("اهدنا الصراط المستقيم")
	assert.False(t, d.HasTashkeel)
	assert.Empty(t, d.VerseText)
	assert.Nil(t, d.Match)
}

func TestFatihaReturnsCopy(t *testing.T) {
	v := Fatiha()
	require.Len(t, v, 7)
	v[0].Text = "x"
	assert.NotEqual(t, "x", Fatiha()[0].Text)
}
