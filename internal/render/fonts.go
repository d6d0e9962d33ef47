package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type fontSet struct {
	regular *opentype.Font
	bold    *opentype.Font
}

var loadFonts = sync.OnceValues(func() (fontSet, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return fontSet{}, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return fontSet{}, fmt.Errorf("parse bold font: %w", err)
	}
	return fontSet{regular: regular, bold: bold}, nil
})

// faces holds the font faces of one drawing call. Faces keep glyph caches and
// are not shared between calls.
type faces struct {
	title  font.Face
	header font.Face
	cell   font.Face
	small  font.Face
	value  font.Face
}

func newFaces() (*faces, error) {
	fs, err := loadFonts()
	if err != nil {
		return nil, err
	}
	mk := func(f *opentype.Font, size float64) (font.Face, error) {
		return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	}

	var out faces
	for _, spec := range []struct {
		dst  *font.Face
		f    *opentype.Font
		size float64
	}{
		{&out.title, fs.bold, 22},
		{&out.header, fs.bold, 15},
		{&out.cell, fs.bold, 13},
		{&out.small, fs.regular, 12},
		{&out.value, fs.bold, 30},
	} {
		face, err := mk(spec.f, spec.size)
		if err != nil {
			return nil, fmt.Errorf("create font face: %w", err)
		}
		*spec.dst = face
	}
	return &out, nil
}

func (f *faces) Close() {
	for _, face := range []font.Face{f.title, f.header, f.cell, f.small, f.value} {
		if face != nil {
			_ = face.Close()
		}
	}
}
