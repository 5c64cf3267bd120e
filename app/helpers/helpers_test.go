package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple name", "Classic Hoodie", "classic-hoodie"},
		{"punctuation is stripped", "Mom's Favorite Tee!", "moms-favorite-tee"},
		{"whitespace runs collapse", "Oversized   Denim\tJacket", "oversized-denim-jacket"},
		{"hyphen runs collapse", "Limited -- Edition", "limited-edition"},
		{"edges are trimmed", "  --Summer Drop--  ", "summer-drop"},
		{"symbols only yields empty", "???!!!", ""},
		{"numbers survive", "501 Original Fit", "501-original-fit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.in))
		})
	}
}

func TestFallbackSlug(t *testing.T) {
	slug := FallbackSlug()
	assert.True(t, strings.HasPrefix(slug, "product-"), "got %q", slug)
	assert.Greater(t, len(slug), len("product-"))
}

func TestPasswordHashing(t *testing.T) {
	hash := HashPassword("secret123")
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, PasswordCompare(hash, []byte("secret123")))
	assert.False(t, PasswordCompare(hash, []byte("wrong")))
}
