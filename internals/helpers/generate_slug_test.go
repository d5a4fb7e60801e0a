package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := map[string]string{
		"Hello World":            "hello-world",
		"  --Tafsir  Al-Fatiha!": "tafsir-al-fatiha",
		"الْحَمْدُ لِلَّهِ":      "الحمد-لله",
		"Dars 12: Mad Lazim":     "dars-12-mad-lazim",
		"***":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, GenerateSlug(in), in)
	}
}

func TestHashIP(t *testing.T) {
	a := HashIP("203.0.113.5", "salt")
	assert.Len(t, a, 16)
	assert.Equal(t, a, HashIP("203.0.113.5", "salt"))
	assert.NotEqual(t, a, HashIP("203.0.113.5", "other"))
}

func TestStrPtr(t *testing.T) {
	assert.Nil(t, StrPtr(""))
	if p := StrPtr("x"); assert.NotNil(t, p) {
		assert.Equal(t, "x", *p)
	}
}
