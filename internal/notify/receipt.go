package notify

import (
	"bytes"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/luisnguyen2k9-alt/LibraNCT/internal/models"
)

// BuildReceipt renders the borrow receipt PDF: loan details plus a
// Code128 barcode of the borrow code for the librarian's scanner.
func BuildReceipt(tx models.Transaction) ([]byte, error) {
	barcodePNG, err := renderBarcode(tx.BorrowCode)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "LibraNCT Library - Borrow Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Book: "+tx.BookTitle, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Student: "+tx.StudentName+" - Class: "+tx.StudentClass, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Borrowed: "+tx.BorrowDate, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Due: "+tx.ReturnDate, "", 1, "L", false, 0, "")
	pdf.Ln(5)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("borrow-code", opts, bytes.NewReader(barcodePNG))
	pdf.ImageOptions("borrow-code", 70, pdf.GetY(), 70, 0, false, opts, 0, "")
	pdf.Ln(30)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 8, "Present this receipt to the librarian to collect the book.", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, "Thank you for using LibraNCT!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "render receipt pdf")
	}
	return buf.Bytes(), nil
}

func renderBarcode(code string) ([]byte, error) {
	bc, err := code128.Encode(code)
	if err != nil {
		return nil, errors.Wrap(err, "encode barcode")
	}
	scaled, err := barcode.Scale(bc, 400, 120)
	if err != nil {
		return nil, errors.Wrap(err, "scale barcode")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, errors.Wrap(err, "encode barcode png")
	}
	return buf.Bytes(), nil
}
