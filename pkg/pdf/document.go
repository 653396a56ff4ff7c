// Package pdf renders invoices and quotations as A4 PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"
)

// Shop is printed in the document header.
type Shop struct {
	Name    string
	Address string
	Phone   string
	Email   string
	TaxID   string
}

// Line is one priced row.
type Line struct {
	Description string
	Quantity    int
	UnitPrice   float64
	Total       float64
}

// Document is everything needed to lay out an invoice or quotation.
type Document struct {
	Title     string // INVOICE or QUOTATION
	Number    string
	Date      string
	DueLabel  string // "Due" or "Valid until"
	DueDate   string
	Status    string
	Shop      Shop
	BillTo    []string
	Vehicle   string
	Lines     []Line
	Subtotal  float64
	Split     bool
	GSTRate   float64
	PSTRate   float64
	TaxRate   float64
	GSTAmount float64
	PSTAmount float64
	TaxAmount float64
	Total     float64
	Notes     string
}

const (
	pageWidth = 190.0
	colDesc   = 100.0
	colQty    = 20.0
	colPrice  = 35.0
	colTotal  = 35.0
)

// Render lays out doc and returns the PDF bytes.
func Render(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(fmt.Sprintf("%s %s", doc.Title, doc.Number), true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("%s %s - page %d", doc.Title, doc.Number, pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	header(pdf, tr, doc)
	parties(pdf, tr, doc)
	lines(pdf, tr, doc)
	totals(pdf, doc)

	if doc.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(pageWidth, 6, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(pageWidth, 5, tr(doc.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render %s pdf: %w", strings.ToLower(doc.Title), err)
	}
	return buf.Bytes(), nil
}

func header(pdf *gofpdf.Fpdf, tr func(string) string, doc Document) {
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(pageWidth/2, 8, tr(doc.Shop.Name), "", 0, "L", false, 0, "")
	pdf.CellFormat(pageWidth/2, 8, doc.Title, "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	left := compact(doc.Shop.Address, doc.Shop.Phone, doc.Shop.Email)
	if doc.Shop.TaxID != "" {
		left = append(left, "Tax ID: "+doc.Shop.TaxID)
	}
	right := []string{"No: " + doc.Number, "Date: " + doc.Date}
	if doc.DueDate != "" {
		right = append(right, fmt.Sprintf("%s: %s", doc.DueLabel, doc.DueDate))
	}
	if doc.Status != "" {
		right = append(right, "Status: "+doc.Status)
	}
	for i := 0; i < len(left) || i < len(right); i++ {
		pdf.CellFormat(pageWidth/2, 5, tr(at(left, i)), "", 0, "L", false, 0, "")
		pdf.CellFormat(pageWidth/2, 5, tr(at(right, i)), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func parties(pdf *gofpdf.Fpdf, tr func(string) string, doc Document) {
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(pageWidth/2, 7, "Bill To", "1", 0, "L", true, 0, "")
	pdf.CellFormat(pageWidth/2, 7, "Vehicle", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	rows := len(doc.BillTo)
	if rows == 0 {
		rows = 1
	}
	for i := 0; i < rows; i++ {
		vehicle := ""
		if i == 0 {
			vehicle = doc.Vehicle
		}
		border := "LR"
		if i == rows-1 {
			border = "LRB"
		}
		pdf.CellFormat(pageWidth/2, 6, tr(at(doc.BillTo, i)), border, 0, "L", false, 0, "")
		pdf.CellFormat(pageWidth/2, 6, tr(vehicle), border, 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

func lines(pdf *gofpdf.Fpdf, tr func(string) string, doc Document) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(colDesc, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colQty, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colPrice, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colTotal, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, l := range doc.Lines {
		desc := tr(l.Description)
		if pdf.GetStringWidth(desc) > colDesc-2 {
			for pdf.GetStringWidth(desc+"...") > colDesc-2 && len(desc) > 0 {
				desc = desc[:len(desc)-1]
			}
			desc += "..."
		}
		pdf.CellFormat(colDesc, 6, desc, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 6, fmt.Sprintf("%d", l.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colPrice, 6, money(l.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 6, money(l.Total), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)
}

func totals(pdf *gofpdf.Fpdf, doc Document) {
	label := pageWidth - colTotal
	row := func(name, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(label, 6, name, "", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 6, value, "", 1, "R", false, 0, "")
	}

	row("Subtotal", money(doc.Subtotal), false)
	if doc.Split {
		row(fmt.Sprintf("GST (%s)", percent(doc.GSTRate)), money(doc.GSTAmount), false)
		row(fmt.Sprintf("PST (%s)", percent(doc.PSTRate)), money(doc.PSTAmount), false)
	} else {
		row(fmt.Sprintf("Tax (%s)", percent(doc.TaxRate)), money(doc.TaxAmount), false)
	}
	row("Total", money(doc.Total), true)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func percent(rate float64) string {
	s := fmt.Sprintf("%.3f", rate*100)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + "%"
}

func compact(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}
