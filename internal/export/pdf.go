package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/Tiliavir/timesheet/internal/model"
)

const (
	pdfRowHeight       = 5.0
	pdfSignatureWidth  = 60.0
	signatureImageName = "signature"
)

// WritePDF writes a printable landscape rendition of the export table. A PNG
// or JPEG signature data URL is drawn below the table; an undecodable
// signature is left out rather than failing the export.
func WritePDF(out io.Writer, w model.Week) error {
	rows := Rows(w, WeeklyTotal(w))
	cols := 1
	for _, r := range rows {
		cols = max(cols, len(r))
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(cols)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Timesheet", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	for _, row := range rows {
		if len(row) == 0 {
			pdf.Ln(pdfRowHeight / 2)
			continue
		}
		// Label/value pairs and section titles are not boxed.
		border := "1"
		if len(row) <= 2 {
			border = ""
		}
		for _, v := range row {
			pdf.CellFormat(colW, pdfRowHeight, tr(v), border, 0, "L", false, 0, "")
		}
		pdf.Ln(pdfRowHeight)
	}

	if data, imageType, ok := decodeDataURL(w.SignatureImage); ok {
		opts := gofpdf.ImageOptions{ImageType: imageType}
		pdf.RegisterImageOptionsReader(signatureImageName, opts, bytes.NewReader(data))
		if pdf.Err() {
			pdf.ClearError()
		} else {
			pdf.Ln(pdfRowHeight)
			pdf.CellFormat(0, pdfRowHeight, "Signature", "", 1, "L", false, 0, "")
			pdf.ImageOptions(signatureImageName, pdf.GetX(), pdf.GetY(), pdfSignatureWidth, 0, true, opts, 0, "")
		}
	}

	if err := pdf.Output(out); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// DataURL encodes an image as a base64 data URL as stored in Week.SignatureImage.
func DataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// decodeDataURL returns the bytes and gofpdf image type of a PNG or JPEG data URL.
func decodeDataURL(s string) ([]byte, string, bool) {
	meta, payload, found := strings.Cut(s, ",")
	if !found || !strings.HasPrefix(meta, "data:image/") || !strings.HasSuffix(meta, ";base64") {
		return nil, "", false
	}
	var imageType string
	switch strings.TrimSuffix(strings.TrimPrefix(meta, "data:image/"), ";base64") {
	case "png":
		imageType = "PNG"
	case "jpeg", "jpg":
		imageType = "JPG"
	default:
		return nil, "", false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return nil, "", false
	}
	return data, imageType, true
}
