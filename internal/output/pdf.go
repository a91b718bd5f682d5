package output

import (
	"bytes"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/winshot/winshot/internal/capture"
)

// 96 DPI is the Windows logical pixel density; page sizes are derived from
// it so a capture prints at its on-screen size.
const (
	pixelsPerInch = 96
	mmPerInch     = 25.4
)

func pixelsToMm(pixels int) float64 {
	return float64(pixels) * mmPerInch / pixelsPerInch
}

// PDFEncoder writes a single-page PDF sized to the capture.
type PDFEncoder struct{}

func (PDFEncoder) Name() string { return "pdf" }

func (PDFEncoder) Encode(w io.Writer, buf *capture.PixelBuffer) error {
	var img bytes.Buffer
	if err := png.Encode(&img, buf.RGBA()); err != nil {
		return err
	}

	wMm := pixelsToMm(int(buf.Width))
	hMm := pixelsToMm(int(buf.Height))

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: wMm, Ht: hMm},
	})
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("capture", opt, &img)
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()
	pdf.ImageOptions("capture", 0, 0, pageW, pageH, false, opt, 0, "")
	return pdf.Output(w)
}
