// Package receipt renders the printable order summary.
package receipt

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Bishesh-P/coffee-alpico-sub000/checkout"
	"github.com/Bishesh-P/coffee-alpico-sub000/models"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

var ErrRender = errors.New("could not render receipt")

const (
	pageMargin = 15.0
	lineHeight = 7.0

	colItem  = 90.0
	colQty   = 20.0
	colUnit  = 35.0
	colTotal = 35.0
)

// Render writes the PDF for snap to w. Any failure, including a panic in
// the layout code, is reported as ErrRender and nothing else changes.
func Render(w io.Writer, snap models.OrderSnapshot, storeName string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrRender, r)
		}
	}()

	pdf := build(snap, storeName)
	if pdf.Err() {
		return fmt.Errorf("%w: %w", ErrRender, pdf.Error())
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

func build(snap models.OrderSnapshot, storeName string) *fpdf.Fpdf {
	p := newPage()
	p.AddPage()

	header(p, snap, storeName)
	customer(p, snap.FormData)
	items(p, snap.CartItems)
	payment(p, snap.PaymentMethod, snap.ReceiptURL)
	summary(p, snap)
	return p.Fpdf
}

// page pairs the document with the translator from UTF-8 to the cp1252
// encoding of the core fonts. All text goes through text so accented
// names print as themselves.
type page struct {
	*fpdf.Fpdf
	tr func(string) string
}

func newPage() *page {
	pdf := fpdf.New("P", "mm", "A4", "")
	p := &page{Fpdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin+5)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pageMargin)
		pdf.SetFont("Helvetica", "I", 8)
		p.text(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false)
	})
	return p
}

func (p *page) text(w, h float64, s, border string, ln int, align string, fill bool) {
	p.CellFormat(w, h, p.tr(s), border, ln, align, fill, 0, "")
}

// truncate shortens s by whole runes until it fits width with an ellipsis.
func (p *page) truncate(s string, width float64) string {
	if p.GetStringWidth(p.tr(s)) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && p.GetStringWidth(p.tr(string(r)+"...")) > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

func header(p *page, snap models.OrderSnapshot, storeName string) {
	p.SetFont("Helvetica", "B", 18)
	p.text(0, 10, storeName, "", 1, "L", false)
	p.SetFont("Helvetica", "", 11)
	p.text(0, lineHeight, "Order Receipt", "", 1, "L", false)
	p.Ln(2)

	completed := snap.CompletedAt
	if completed.IsZero() {
		completed = time.Now()
	}
	p.SetFont("Helvetica", "B", 10)
	p.text(30, lineHeight, "Order ID:", "", 0, "L", false)
	p.SetFont("Helvetica", "", 10)
	p.text(0, lineHeight, snap.OrderID, "", 1, "L", false)
	p.SetFont("Helvetica", "B", 10)
	p.text(30, lineHeight, "Date:", "", 0, "L", false)
	p.SetFont("Helvetica", "", 10)
	p.text(0, lineHeight, completed.Format("January 2, 2006 15:04"), "", 1, "L", false)
	p.Ln(4)
}

func customer(p *page, form models.ShippingForm) {
	section(p, "Customer")
	p.SetFont("Helvetica", "", 10)
	for _, line := range []string{
		form.FullName(),
		form.Email,
		form.Phone,
		form.Address,
		form.City + ", " + form.State,
	} {
		p.text(0, 6, line, "", 1, "L", false)
	}
	p.Ln(4)
}

func items(p *page, lines []models.SnapshotItem) {
	section(p, "Items")

	p.SetFont("Helvetica", "B", 10)
	p.SetFillColor(240, 234, 226)
	p.text(colItem, lineHeight, "Item", "1", 0, "L", true)
	p.text(colQty, lineHeight, "Qty", "1", 0, "C", true)
	p.text(colUnit, lineHeight, "Price", "1", 0, "R", true)
	p.text(colTotal, lineHeight, "Total", "1", 1, "R", true)

	p.SetFont("Helvetica", "", 10)
	for _, it := range lines {
		name := it.Name
		if it.Variant != "" {
			name += " (" + it.Variant + ")"
		}
		if it.Machine != "" {
			name += " - for " + it.Machine
		}
		p.text(colItem, lineHeight, p.truncate(name, colItem-2), "1", 0, "L", false)
		p.text(colQty, lineHeight, fmt.Sprintf("%d", it.Quantity), "1", 0, "C", false)
		p.text(colUnit, lineHeight, formatNPR(it.UnitPrice), "1", 0, "R", false)
		p.text(colTotal, lineHeight, formatNPR(it.FinalPrice), "1", 1, "R", false)
	}
	p.Ln(4)
}

func payment(p *page, method, receiptURL string) {
	section(p, "Payment")
	p.SetFont("Helvetica", "", 10)
	name := method
	if platform, ok := checkout.ParsePlatform(method); ok {
		name = platform.DisplayName()
	}
	p.text(0, 6, "Method: "+name, "", 1, "L", false)
	if receiptURL != "" {
		p.text(0, 6, "Receipt: "+receiptURL, "", 1, "L", false)
	}
	p.Ln(4)
}

func summary(p *page, snap models.OrderSnapshot) {
	const (
		boxWidth = colUnit + colTotal + 10
		rows     = 3
	)
	_, pageHeight := p.GetPageSize()
	if p.GetY()+rows*lineHeight+4 > pageHeight-pageMargin-5 {
		p.AddPage()
	}

	pageWidth, _ := p.GetPageSize()
	x := pageWidth - pageMargin - boxWidth
	y := p.GetY()
	p.Rect(x, y, boxWidth, rows*lineHeight+4, "D")

	p.SetXY(x+2, y+2)
	row := func(label string, amount decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		p.SetFont("Helvetica", style, 10)
		p.SetX(x + 2)
		p.text(boxWidth/2-2, lineHeight, label, "", 0, "L", false)
		p.text(boxWidth/2-2, lineHeight, formatNPR(amount), "", 1, "R", false)
	}
	row("Subtotal", snap.Subtotal, false)
	shipping := snap.Shipping
	if shipping.IsZero() {
		p.SetFont("Helvetica", "", 10)
		p.SetX(x + 2)
		p.text(boxWidth/2-2, lineHeight, "Shipping", "", 0, "L", false)
		p.text(boxWidth/2-2, lineHeight, "Free", "", 1, "R", false)
	} else {
		row("Shipping", shipping, false)
	}
	row("Total", snap.Total, true)
}

func section(p *page, title string) {
	p.SetFont("Helvetica", "B", 12)
	p.text(0, 8, title, "B", 1, "L", false)
	p.Ln(1)
}

func formatNPR(d decimal.Decimal) string {
	return "Rs. " + d.StringFixed(2)
}
