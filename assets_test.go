package docsite

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAssetSVG(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"logo.svg": testSVG,
		"bad.svg":  "just some text",
		"page.svg": "<!-- comment --><html/>",
	})

	info, err := CheckAsset(filepath.Join(dir, "logo.svg"))
	require.NoError(t, err)
	assert.Equal(t, "svg", info.Format)

	_, err = CheckAsset(filepath.Join(dir, "bad.svg"))
	assert.Error(t, err)

	_, err = CheckAsset(filepath.Join(dir, "page.svg"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root element is <html>")
}

func TestCheckAssetPNG(t *testing.T) {
	p := filepath.Join(t.TempDir(), "icon.png")
	f, err := os.Create(p)
	require.NoError(t, err)
	img := image.NewRGBA(image.Rect(0, 0, 48, 24))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	info, err := CheckAsset(p)
	require.NoError(t, err)
	assert.Equal(t, "png", info.Format)
	assert.Equal(t, 48, info.Width)
	assert.Equal(t, 24, info.Height)
}

func TestCheckAssetRejects(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"fake.webp":   "RIFF....not really",
		"empty.ico":   "",
		"favicon.ico": "\x00\x00\x01\x00",
	})

	_, err := CheckAsset(filepath.Join(dir, "fake.webp"))
	assert.ErrorContains(t, err, "decode image")

	_, err = CheckAsset(filepath.Join(dir, "empty.ico"))
	assert.ErrorContains(t, err, "empty icon file")

	info, err := CheckAsset(filepath.Join(dir, "favicon.ico"))
	require.NoError(t, err)
	assert.Equal(t, "ico", info.Format)

	_, err = CheckAsset(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
