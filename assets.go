package docsite

import (
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// AssetInfo describes an image asset referenced by the site config.
type AssetInfo struct {
	Path   string
	Format string // "svg", "png", "jpeg", "gif", "webp", "bmp" or "ico"
	Width  int    // 0 when the format carries no intrinsic size
	Height int
}

// CheckAsset verifies that path exists and holds a decodable image.
func CheckAsset(path string) (AssetInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return AssetInfo{}, err
	}
	defer f.Close()

	info := AssetInfo{Path: path}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		info.Format = "svg"
		if err := checkSVG(f); err != nil {
			return AssetInfo{}, fmt.Errorf("%s: %w", path, err)
		}
		return info, nil
	case ".ico":
		// No ico decoder is registered; any non-empty file passes.
		st, err := f.Stat()
		if err != nil {
			return AssetInfo{}, err
		}
		if st.Size() == 0 {
			return AssetInfo{}, fmt.Errorf("%s: empty icon file", path)
		}
		info.Format = "ico"
		return info, nil
	}

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return AssetInfo{}, fmt.Errorf("%s: decode image: %w", path, err)
	}
	info.Format = format
	info.Width = cfg.Width
	info.Height = cfg.Height
	return info, nil
}

// checkSVG accepts a document whose root element is <svg>.
func checkSVG(r io.Reader) error {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return errors.New("no <svg> root element")
		}
		if err != nil {
			return fmt.Errorf("parse svg: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			if se.Name.Local != "svg" {
				return fmt.Errorf("root element is <%s>, want <svg>", se.Name.Local)
			}
			return nil
		}
	}
}
