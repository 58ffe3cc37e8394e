package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
	"github.com/skip2/go-qrcode"

	"github.com/wordsolverx/postermaker/internal/render/layout"
)

const qrBadgePadding = 10

var qrBadgeFill = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// GenerateQRCodeImage returns a borderless QR code of sizePx for payload.
func GenerateQRCodeImage(payload string, sizePx int) (image.Image, error) {
	if payload == "" {
		return nil, fmt.Errorf("qr code: empty payload")
	}
	if sizePx <= 0 {
		return nil, fmt.Errorf("qr code: size %d: %w", sizePx, ErrInvalidDimensions)
	}

	qrCode, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr code: %w", err)
	}
	qrCode.DisableBorder = true
	return qrCode.Image(sizePx), nil
}

// DrawQRBadge draws a white rounded tile filling rect with a QR code for
// payload centered inside it.
func DrawQRBadge(canvas *image.RGBA, rect image.Rectangle, payload string) error {
	inner := layout.Inset(rect, qrBadgePadding)
	size := inner.Dx()
	if inner.Dy() < size {
		size = inner.Dy()
	}
	code, err := GenerateQRCodeImage(payload, size)
	if err != nil {
		return err
	}

	dc := gg.NewContextForRGBA(canvas)
	dc.DrawRoundedRectangle(float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()), float64(qrBadgePadding))
	dc.SetColor(qrBadgeFill)
	dc.Fill()

	b := code.Bounds()
	dst := layout.CenteredRect(layout.Center(inner), b.Dx(), b.Dy())
	draw.Draw(canvas, dst, code, b.Min, draw.Over)
	return nil
}
