package convert

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func decodeArtifact(t *testing.T, a Artifact) image.Image {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(a.Data))
	if err != nil {
		t.Fatalf("decode %s: %v", a.Name, err)
	}
	return img
}

func TestResizeImagesByPercent(t *testing.T) {
	out, err := ResizeImages(
		[]InputFile{{Name: "a.png", Data: testPNG(t, 100, 40, color.White)}},
		ResizeOptions{Mode: ResizeByPercent, Percent: 50},
	)
	if err != nil {
		t.Fatal(err)
	}
	if out.IsArchive() {
		t.Error("single input should not archive")
	}
	a := out.Artifacts[0]
	if a.Name != "a_resized.png" {
		t.Errorf("name = %q, want a_resized.png", a.Name)
	}
	img := decodeArtifact(t, a)
	if img.Bounds().Dx() != 50 || img.Bounds().Dy() != 20 {
		t.Errorf("size = %dx%d, want 50x20", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestResizeImagesByDimensions(t *testing.T) {
	tests := []struct {
		name         string
		opts         ResizeOptions
		wantW, wantH int
	}{
		{"exact", ResizeOptions{Mode: ResizeByDimensions, Width: 30, Height: 10}, 30, 10},
		{"width with ratio", ResizeOptions{Mode: ResizeByDimensions, Width: 50, KeepRatio: true}, 50, 25},
		{"height with ratio", ResizeOptions{Mode: ResizeByDimensions, Height: 10, KeepRatio: true}, 20, 10},
		{"width only no ratio", ResizeOptions{Mode: ResizeByDimensions, Width: 25}, 25, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ResizeImages(
				[]InputFile{{Name: "a.png", Data: testPNG(t, 100, 50, color.White)}},
				tt.opts,
			)
			if err != nil {
				t.Fatal(err)
			}
			img := decodeArtifact(t, out.Artifacts[0])
			if img.Bounds().Dx() != tt.wantW || img.Bounds().Dy() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d",
					img.Bounds().Dx(), img.Bounds().Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResizeImagesNeverZero(t *testing.T) {
	out, err := ResizeImages(
		[]InputFile{{Name: "tiny.png", Data: testPNG(t, 3, 3, color.White)}},
		ResizeOptions{Mode: ResizeByPercent, Percent: 1},
	)
	if err != nil {
		t.Fatal(err)
	}
	img := decodeArtifact(t, out.Artifacts[0])
	if img.Bounds().Dx() < 1 || img.Bounds().Dy() < 1 {
		t.Errorf("size collapsed to %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestResizeImagesValidation(t *testing.T) {
	if _, err := ResizeImages(nil, ResizeOptions{Mode: ResizeByPercent, Percent: 50}); err == nil {
		t.Error("no files accepted")
	}
	files := []InputFile{{Name: "a.png", Data: testPNG(t, 4, 4, color.White)}}
	if _, err := ResizeImages(files, ResizeOptions{Mode: ResizeByPercent}); err == nil {
		t.Error("zero percent accepted")
	}
	if _, err := ResizeImages(files, ResizeOptions{Mode: ResizeByDimensions}); err == nil {
		t.Error("zero dimensions accepted")
	}
}

func TestResizeImagesArchiveName(t *testing.T) {
	out, err := ResizeImages([]InputFile{
		{Name: "a.png", Data: testPNG(t, 10, 10, color.White)},
		{Name: "b.png", Data: testPNG(t, 10, 10, color.White)},
	}, ResizeOptions{Mode: ResizeByPercent, Percent: 50})
	if err != nil {
		t.Fatal(err)
	}
	if !out.IsArchive() || out.ArchiveName != "resized_images.zip" {
		t.Errorf("archive name = %q, want resized_images.zip", out.ArchiveName)
	}
}

func TestCompressImages(t *testing.T) {
	out, err := CompressImages([]InputFile{
		{Name: "photo.jpg", Data: testJPEG(t, 16, 16, color.White)},
		{Name: "shot.png", Data: testPNG(t, 16, 16, color.White)},
	}, 40)
	if err != nil {
		t.Fatal(err)
	}
	if out.ArchiveName != "compressed_images.zip" {
		t.Errorf("archive name = %q", out.ArchiveName)
	}
	// JPEG stays jpg, everything else becomes png.
	if out.Artifacts[0].Name != "photo_compressed.jpg" {
		t.Errorf("name = %q, want photo_compressed.jpg", out.Artifacts[0].Name)
	}
	if out.Artifacts[1].Name != "shot_compressed.png" {
		t.Errorf("name = %q, want shot_compressed.png", out.Artifacts[1].Name)
	}
}

func TestCompressImagesQualityRange(t *testing.T) {
	files := []InputFile{{Name: "a.jpg", Data: testJPEG(t, 4, 4, color.White)}}
	for _, q := range []int{0, 96, -3} {
		if _, err := CompressImages(files, q); err == nil {
			t.Errorf("quality %d accepted", q)
		}
	}
}

func TestCropImage(t *testing.T) {
	f := InputFile{Name: "wide.png", Data: testPNG(t, 100, 60, color.White)}

	out, err := CropImage(f, 10, 20, 30, 30)
	if err != nil {
		t.Fatal(err)
	}
	if out.Artifacts[0].Name != "wide_cropped.png" {
		t.Errorf("name = %q", out.Artifacts[0].Name)
	}
	img := decodeArtifact(t, out.Artifacts[0])
	if img.Bounds().Dx() != 30 || img.Bounds().Dy() != 30 {
		t.Errorf("size = %dx%d, want 30x30", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestCropImageClamps(t *testing.T) {
	f := InputFile{Name: "a.png", Data: testPNG(t, 50, 50, color.White)}

	// Rectangle pokes past the right edge; result clamps to the image.
	out, err := CropImage(f, 40, 40, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	img := decodeArtifact(t, out.Artifacts[0])
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 10 {
		t.Errorf("size = %dx%d, want 10x10", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestCropImageOutOfBounds(t *testing.T) {
	f := InputFile{Name: "a.png", Data: testPNG(t, 50, 50, color.White)}

	if _, err := CropImage(f, 60, 0, 10, 10); err == nil {
		t.Error("crop outside the image accepted")
	}
	if _, err := CropImage(f, 0, 0, 0, 10); err == nil {
		t.Error("zero-width crop accepted")
	}
}

func TestRotateImage(t *testing.T) {
	f := InputFile{Name: "a.png", Data: testPNG(t, 40, 20, color.White)}

	tests := []struct {
		action       RotateAction
		wantW, wantH int
	}{
		{Rotate90, 20, 40},
		{Rotate180, 40, 20},
		{Rotate270, 20, 40},
		{FlipH, 40, 20},
		{FlipV, 40, 20},
	}
	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			out, err := RotateImage(f, tt.action)
			if err != nil {
				t.Fatal(err)
			}
			wantName := "a_" + string(tt.action) + ".png"
			if out.Artifacts[0].Name != wantName {
				t.Errorf("name = %q, want %q", out.Artifacts[0].Name, wantName)
			}
			img := decodeArtifact(t, out.Artifacts[0])
			if img.Bounds().Dx() != tt.wantW || img.Bounds().Dy() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d",
					img.Bounds().Dx(), img.Bounds().Dy(), tt.wantW, tt.wantH)
			}
		})
	}

	if _, err := RotateImage(f, RotateAction("sideways")); err == nil {
		t.Error("unknown action accepted")
	}
}

func TestRotate90IsClockwise(t *testing.T) {
	// Mark the top-left pixel; after a clockwise quarter turn it must be
	// in the top-right corner.
	src := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	out, err := RotateImage(InputFile{Name: "m.png", Data: buf.Bytes()}, Rotate90)
	if err != nil {
		t.Fatal(err)
	}
	img := decodeArtifact(t, out.Artifacts[0])
	r, g, _, _ := img.At(img.Bounds().Max.X-1, 0).RGBA()
	if r == 0 || g != 0 {
		t.Error("marker pixel did not land in the top-right corner")
	}
}

func TestBackgroundColorImages(t *testing.T) {
	// Fully transparent source over a red background.
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	out, err := BackgroundColorImages(
		[]InputFile{{Name: "logo.png", Data: buf.Bytes()}}, "#ff0000", "png")
	if err != nil {
		t.Fatal(err)
	}
	if out.Artifacts[0].Name != "logo_bg.png" {
		t.Errorf("name = %q, want logo_bg.png", out.Artifacts[0].Name)
	}
	img := decodeArtifact(t, out.Artifacts[0])
	r, g, b, _ := img.At(4, 4).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("center pixel = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
}

func TestBackgroundColorImagesValidation(t *testing.T) {
	files := []InputFile{{Name: "a.png", Data: testPNG(t, 4, 4, color.White)}}
	if _, err := BackgroundColorImages(files, "#ff0000", "gif"); err == nil {
		t.Error("bad output format accepted")
	}
	if _, err := BackgroundColorImages(files, "red", "png"); err == nil {
		t.Error("bad hex color accepted")
	}
	if _, err := BackgroundColorImages(nil, "#ff0000", "png"); err == nil {
		t.Error("no files accepted")
	}
}

func TestBackgroundColorImagesArchiveName(t *testing.T) {
	out, err := BackgroundColorImages([]InputFile{
		{Name: "a.png", Data: testPNG(t, 4, 4, color.White)},
		{Name: "b.png", Data: testPNG(t, 4, 4, color.White)},
	}, "#00ff00", "jpg")
	if err != nil {
		t.Fatal(err)
	}
	if out.ArchiveName != "bg_color_images.zip" {
		t.Errorf("archive name = %q, want bg_color_images.zip", out.ArchiveName)
	}
	if out.Artifacts[0].Name != "a_bg.jpg" {
		t.Errorf("name = %q, want a_bg.jpg", out.Artifacts[0].Name)
	}
}

func TestImagetoolsDecodeError(t *testing.T) {
	bad := []InputFile{{Name: "junk.png", Data: []byte("junk")}}

	_, err := ResizeImages(bad, ResizeOptions{Mode: ResizeByPercent, Percent: 50})
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("ResizeImages() = %v, want DecodeError", err)
	}
	if de.Filename != "junk.png" {
		t.Errorf("Filename = %q, want junk.png", de.Filename)
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := parseHexColor("#1a2b3c")
	if err != nil {
		t.Fatal(err)
	}
	if c.R != 0x1a || c.G != 0x2b || c.B != 0x3c || c.A != 255 {
		t.Errorf("parseHexColor() = %+v", c)
	}

	if _, err := parseHexColor("fff"); err == nil {
		t.Error("short hex accepted")
	}
	if _, err := parseHexColor("#zzzzzz"); err == nil {
		t.Error("non-hex accepted")
	}
}
