package pdf

import (
	"bytes"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// SalesReport is the analytics snapshot the dashboard exports.
type SalesReport struct {
	PeriodLabel  string
	StartDate    time.Time
	EndDate      time.Time
	TotalRevenue float64
	TotalOrders  int
	ItemsSold    int
	AverageOrder float64
	TopProducts  []ProductSales
	DailyRevenue []DailyPoint
}

// ProductSales is one row of the top-sellers table.
type ProductSales struct {
	Name    string
	Units   int
	Revenue float64
}

// DailyPoint is one row of the revenue-by-day table.
type DailyPoint struct {
	Date    string
	Orders  int
	Revenue float64
}

// GenerateSalesReport renders the analytics export PDF.
func GenerateSalesReport(report *SalesReport) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "Letter", "")
	doc.SetMargins(25, 25, 25)
	doc.AddPage()

	// Header
	doc.SetFont("Helvetica", "B", 22)
	doc.SetTextColor(brandBlue[0], brandBlue[1], brandBlue[2])
	doc.CellFormat(0, 11, "PCBulacan Sales Report", "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(slateMid[0], slateMid[1], slateMid[2])
	period := report.PeriodLabel + " (" +
		report.StartDate.Format("Jan 2, 2006") + " to " +
		report.EndDate.Format("Jan 2, 2006") + ")"
	doc.CellFormat(0, 6, period, "", 1, "C", false, 0, "")
	doc.CellFormat(0, 6, "Generated "+time.Now().Format("January 2, 2006 3:04 PM"), "", 1, "C", false, 0, "")
	doc.Ln(8)

	// Headline numbers
	sectionHeading(doc, "Summary")
	infoRow(doc, "Total Revenue:", php(report.TotalRevenue))
	infoRow(doc, "Orders:", strconv.Itoa(report.TotalOrders))
	infoRow(doc, "Items Sold:", strconv.Itoa(report.ItemsSold))
	infoRow(doc, "Average Order Value:", php(report.AverageOrder))
	doc.Ln(6)

	// Top sellers
	if len(report.TopProducts) > 0 {
		sectionHeading(doc, "Top Products")
		widths := []float64{95, 25, 45}
		headers := []string{"Product", "Units", "Revenue"}
		aligns := []string{"L", "R", "R"}

		doc.SetFillColor(brandBlue[0], brandBlue[1], brandBlue[2])
		doc.SetTextColor(255, 255, 255)
		doc.SetFont("Helvetica", "B", 11)
		for i, head := range headers {
			doc.CellFormat(widths[i], 9, head, "1", 0, aligns[i], true, 0, "")
		}
		doc.Ln(-1)

		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(slateDark[0], slateDark[1], slateDark[2])
		doc.SetDrawColor(gridLine[0], gridLine[1], gridLine[2])
		for idx, row := range report.TopProducts {
			fill := idx%2 == 1
			if fill {
				doc.SetFillColor(rowTint[0], rowTint[1], rowTint[2])
			} else {
				doc.SetFillColor(255, 255, 255)
			}
			doc.CellFormat(widths[0], 8, row.Name, "1", 0, "L", fill, 0, "")
			doc.CellFormat(widths[1], 8, strconv.Itoa(row.Units), "1", 0, "R", fill, 0, "")
			doc.CellFormat(widths[2], 8, php(row.Revenue), "1", 0, "R", fill, 0, "")
			doc.Ln(-1)
		}
		doc.Ln(6)
	}

	// Revenue by day
	if len(report.DailyRevenue) > 0 {
		sectionHeading(doc, "Revenue by Day")
		widths := []float64{60, 40, 65}
		doc.SetFillColor(brandBlue[0], brandBlue[1], brandBlue[2])
		doc.SetTextColor(255, 255, 255)
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(widths[0], 9, "Date", "1", 0, "L", true, 0, "")
		doc.CellFormat(widths[1], 9, "Orders", "1", 0, "R", true, 0, "")
		doc.CellFormat(widths[2], 9, "Revenue", "1", 0, "R", true, 0, "")
		doc.Ln(-1)

		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(slateDark[0], slateDark[1], slateDark[2])
		for idx, row := range report.DailyRevenue {
			fill := idx%2 == 1
			if fill {
				doc.SetFillColor(rowTint[0], rowTint[1], rowTint[2])
			} else {
				doc.SetFillColor(255, 255, 255)
			}
			doc.CellFormat(widths[0], 8, row.Date, "1", 0, "L", fill, 0, "")
			doc.CellFormat(widths[1], 8, strconv.Itoa(row.Orders), "1", 0, "R", fill, 0, "")
			doc.CellFormat(widths[2], 8, php(row.Revenue), "1", 0, "R", fill, 0, "")
			doc.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
