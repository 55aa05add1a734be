package security_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"job-board-backend/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func sampleImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	return img
}

func TestValidateResume(t *testing.T) {
	var pngBuf, jpegBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, sampleImage()))
	require.NoError(t, jpeg.Encode(&jpegBuf, sampleImage(), nil))

	t.Run("png", func(t *testing.T) {
		res := security.ValidateResume(pngBuf.Bytes())
		assert.True(t, res.Valid, res.Error)
		assert.Equal(t, ".png", res.Extension)
	})

	t.Run("jpeg", func(t *testing.T) {
		res := security.ValidateResume(jpegBuf.Bytes())
		assert.True(t, res.Valid, res.Error)
		assert.Equal(t, ".jpg", res.Extension)
	})

	t.Run("pdf rejected", func(t *testing.T) {
		res := security.ValidateResume([]byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n"))
		assert.False(t, res.Valid)
		assert.Equal(t, "application/pdf", res.DetectedMIME)
	})

	t.Run("truncated png rejected", func(t *testing.T) {
		res := security.ValidateResume(pngBuf.Bytes()[:12])
		assert.False(t, res.Valid)
	})
}

func TestIsAllowedResumeType(t *testing.T) {
	for _, ct := range []string{"image/png", "image/jpg", "image/jpeg", "image/webp", "IMAGE/PNG", "image/jpeg; charset=binary"} {
		assert.True(t, security.IsAllowedResumeType(ct), ct)
	}
	for _, ct := range []string{"", "application/pdf", "image/gif", "text/plain"} {
		assert.False(t, security.IsAllowedResumeType(ct), ct)
	}
}

func TestBcryptHasher(t *testing.T) {
	h := security.NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)
	assert.True(t, h.Compare(hash, "password123"))
	assert.False(t, h.Compare(hash, "password124"))
}

func TestMatchesDeclaredType(t *testing.T) {
	assert.True(t, security.MatchesDeclaredType("image/png", "image/png"))
	assert.True(t, security.MatchesDeclaredType("IMAGE/JPG", "image/jpeg"))
	assert.True(t, security.MatchesDeclaredType("image/webp; charset=binary", "image/webp"))
	assert.False(t, security.MatchesDeclaredType("image/jpeg", "image/png"))
	assert.False(t, security.MatchesDeclaredType("", ""))
}
