package pdf

import (
	"github.com/skip2/go-qrcode"
)

// QRCode draws content as a QR symbol of side size whose top-left corner is
// (x, y). Dark modules on the same row are merged into one filled rect.
func QRCode(p *Page, tag, content string, x, y, size float64, color Color) error {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return err
	}
	qr.DisableBorder = true
	bmp := qr.Bitmap()
	if len(bmp) == 0 {
		return nil
	}

	module := size / float64(len(bmp))
	st := Style{Color: color, Fill: color, LineWidth: 0.1}
	for row, cells := range bmp {
		for col := 0; col < len(cells); {
			if !cells[col] {
				col++
				continue
			}
			start := col
			for col < len(cells) && cells[col] {
				col++
			}
			p.Rect(tag, x+float64(start)*module, y+float64(row)*module,
				float64(col-start)*module, module, Fill, st)
		}
	}
	return nil
}
