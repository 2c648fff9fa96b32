// Package pdf renders the customer-facing order receipt and the admin
// sales report. Amounts print as "PHP 1,234.50" because the built-in
// cp1252 fonts have no peso glyph.
package pdf

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/jcgamayo/pcbulacan-golang/internal/models"
	"github.com/jcgamayo/pcbulacan-golang/internal/pricing"
)

// Brand palette, mirrored from the storefront stylesheet.
var (
	brandBlue = [3]int{37, 99, 235}
	slateDark = [3]int{30, 41, 59}
	slateMid  = [3]int{100, 116, 139}
	slateDim  = [3]int{148, 163, 184}
	rowTint   = [3]int{248, 250, 252}
	gridLine  = [3]int{226, 232, 240}
)

func php(amount float64) string {
	return "PHP " + pricing.FormatPlain(amount)
}

// GenerateOrderReceipt renders the receipt PDF for one order.
func GenerateOrderReceipt(order *models.Order, items []models.OrderItem) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "Letter", "")
	doc.SetMargins(25, 25, 25)
	doc.AddPage()

	// Company header
	doc.SetFont("Helvetica", "B", 24)
	doc.SetTextColor(brandBlue[0], brandBlue[1], brandBlue[2])
	doc.CellFormat(0, 12, "PCBulacan", "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(slateMid[0], slateMid[1], slateMid[2])
	doc.CellFormat(0, 6, "Your Premium PC Components Store", "", 1, "C", false, 0, "")
	doc.Ln(6)

	// Receipt title with order number
	doc.SetFont("Helvetica", "B", 18)
	doc.SetTextColor(brandBlue[0], brandBlue[1], brandBlue[2])
	doc.CellFormat(0, 9, "ORDER RECEIPT", "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 7, "#"+order.OrderNumber, "", 1, "C", false, 0, "")
	doc.Ln(5)

	// Order information
	infoRow(doc, "Order Date:", order.CreatedAt.Format("January 2, 2006 3:04 PM"))
	infoRow(doc, "Status:", strings.ToUpper(order.Status))
	infoRow(doc, "Payment Method:", strings.ToUpper(order.PaymentMethod))
	doc.Ln(6)

	// Customer information
	sectionHeading(doc, "Customer Information")
	infoRow(doc, "Name:", order.FullName)
	infoRow(doc, "Email:", order.Email)
	phone := order.Phone
	if phone == "" {
		phone = "Not provided"
	}
	infoRow(doc, "Phone:", phone)
	doc.Ln(4)

	// Shipping address
	sectionHeading(doc, "Shipping Address")
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(slateDark[0], slateDark[1], slateDark[2])
	doc.CellFormat(0, 6, order.Address, "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, order.City+", "+order.State+" "+order.ZipCode, "", 1, "L", false, 0, "")
	doc.Ln(6)

	// Items table
	sectionHeading(doc, "Order Items")
	itemsTable(doc, items)
	doc.Ln(6)

	// Summary
	summaryRow(doc, "Subtotal:", php(order.Subtotal()), false)
	summaryRow(doc, "Shipping Fee:", php(order.ShippingCost), false)
	doc.Ln(2)
	summaryRow(doc, "TOTAL:", php(order.Total), true)
	doc.Ln(10)

	// Footer
	doc.SetFont("Helvetica", "B", 9)
	doc.SetTextColor(slateDim[0], slateDim[1], slateDim[2])
	doc.CellFormat(0, 5, "Thank you for your order!", "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 9)
	doc.CellFormat(0, 5, "For questions or concerns, please contact us at support@pcbulacan.com", "", 1, "C", false, 0, "")
	doc.Ln(3)
	doc.SetFont("Helvetica", "I", 9)
	doc.CellFormat(0, 5, "This is a computer-generated receipt and does not require a signature.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sectionHeading(doc *gofpdf.Fpdf, title string) {
	doc.SetFont("Helvetica", "B", 14)
	doc.SetTextColor(slateDark[0], slateDark[1], slateDark[2])
	doc.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	doc.Ln(1)
}

func infoRow(doc *gofpdf.Fpdf, label, value string) {
	doc.SetFont("Helvetica", "B", 10)
	doc.SetTextColor(slateMid[0], slateMid[1], slateMid[2])
	doc.CellFormat(50, 6, label, "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(slateDark[0], slateDark[1], slateDark[2])
	doc.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func itemsTable(doc *gofpdf.Fpdf, items []models.OrderItem) {
	widths := []float64{85, 30, 18, 32}
	headers := []string{"Product", "Price", "Qty", "Total"}
	aligns := []string{"L", "R", "R", "R"}

	doc.SetFillColor(brandBlue[0], brandBlue[1], brandBlue[2])
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 11)
	for i, head := range headers {
		doc.CellFormat(widths[i], 10, head, "1", 0, aligns[i], true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(slateDark[0], slateDark[1], slateDark[2])
	doc.SetDrawColor(gridLine[0], gridLine[1], gridLine[2])
	for idx, item := range items {
		fill := idx%2 == 1
		if fill {
			doc.SetFillColor(rowTint[0], rowTint[1], rowTint[2])
		} else {
			doc.SetFillColor(255, 255, 255)
		}
		cells := []string{
			item.ProductName,
			php(item.Price),
			strconv.Itoa(item.Quantity),
			php(item.ItemTotal()),
		}
		for i, cell := range cells {
			doc.CellFormat(widths[i], 9, cell, "1", 0, aligns[i], fill, 0, "")
		}
		doc.Ln(-1)
	}
}

func summaryRow(doc *gofpdf.Fpdf, label, value string, total bool) {
	if total {
		doc.SetFont("Helvetica", "B", 14)
		doc.SetTextColor(brandBlue[0], brandBlue[1], brandBlue[2])
	} else {
		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(slateMid[0], slateMid[1], slateMid[2])
	}
	doc.CellFormat(125, 7, label, "", 0, "R", false, 0, "")
	doc.CellFormat(40, 7, value, "", 1, "R", false, 0, "")
}
