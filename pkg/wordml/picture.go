package wordml

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// pixels render at 96 per inch; points are 72 per inch.
const pointsPerPixel = 72.0 / 96.0

// PictureContent builds the custom result content for a field whose literal
// result is an embedded picture (an INCLUDEPICTURE, typically): a run
// holding a VML shape that references the image part registered under relID.
// Dimensions are sniffed from the image bytes; PNG, JPEG, GIF, BMP, TIFF and
// WebP are recognized.
func PictureContent(data []byte, relID string) ([]*Element, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image dimensions: %w", err)
	}

	widthPt := float64(cfg.Width) * pointsPerPixel
	heightPt := float64(cfg.Height) * pointsPerPixel

	shape := NewElement("v:shape",
		Attr{Name: "style", Value: fmt.Sprintf("width:%.2fpt;height:%.2fpt", widthPt, heightPt)},
	)
	imagedata := &Element{
		Name: "v:imagedata",
		Attrs: []Attr{
			{Name: "r:id", Value: relID},
			{Name: "o:title", Value: format},
		},
		SelfClosing: true,
	}
	shape.Append(imagedata)

	run := NewElement("w:r").Append(NewElement("w:pict").Append(shape))
	return []*Element{run}, nil
}
