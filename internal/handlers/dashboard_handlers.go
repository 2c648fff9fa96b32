package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jcgamayo/pcbulacan-golang/internal/models"
	"github.com/jcgamayo/pcbulacan-golang/internal/pdf"
)

// revenueCondition selects the orders that count as revenue. COD money
// only exists once the customer confirms receipt; prepaid money exists
// unless the order is cancelled.
const revenueCondition = `
	((payment_method = 'cod' AND status = 'received')
	 OR (payment_method <> 'cod' AND status <> 'cancelled'))`

//
// --- Dashboard Handlers ---
//

// GetDashboardMetrics is the handler for GET /v1/admin/dashboard/metrics
func (h *Handlers) GetDashboardMetrics(c *gin.Context) {
	var totalSales float64
	var totalOrders, pendingOrders, lowStockItems int

	err := h.DB.QueryRow(
		"SELECT COALESCE(SUM(total), 0) FROM orders WHERE " + revenueCondition).Scan(&totalSales)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to compute total sales."))
		return
	}
	err = h.DB.QueryRow("SELECT COUNT(*) FROM orders WHERE status <> 'cancelled'").Scan(&totalOrders)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to count orders."))
		return
	}
	err = h.DB.QueryRow("SELECT COUNT(*) FROM orders WHERE status = 'pending'").Scan(&pendingOrders)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to count pending orders."))
		return
	}
	err = h.DB.QueryRow("SELECT COUNT(*) FROM products WHERE is_active = 1 AND stock > 0 AND stock <= ?",
		models.LowStockThreshold).Scan(&lowStockItems)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to count low stock items."))
		return
	}

	c.JSON(http.StatusOK, ok(gin.H{
		"totalSales":    totalSales,
		"totalOrders":   totalOrders,
		"pendingOrders": pendingOrders,
		"lowStockItems": lowStockItems,
	}))
}

// GetSalesOverview is the handler for GET /v1/admin/dashboard/sales-overview.
// Returns this week's and last week's daily revenue, Monday through
// Sunday, for the dashboard chart.
func (h *Handlers) GetSalesOverview(c *gin.Context) {
	now := time.Now()
	// back up to Monday 00:00 of the current week
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	thisMonday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(weekday - 1))
	lastMonday := thisMonday.AddDate(0, 0, -7)

	weekRevenue := func(monday time.Time) ([]float64, error) {
		days := make([]float64, 7)
		rows, err := h.DB.Query(`
			SELECT DATE(created_at) AS day, COALESCE(SUM(total), 0)
			FROM orders
			WHERE created_at >= ? AND created_at < ? AND `+revenueCondition+`
			GROUP BY DATE(created_at)`,
			monday, monday.AddDate(0, 0, 7))
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		for rows.Next() {
			var day string
			var revenue float64
			if err := rows.Scan(&day, &revenue); err != nil {
				return nil, err
			}
			t, err := time.ParseInLocation("2006-01-02", day, monday.Location())
			if err != nil {
				continue
			}
			idx := int(t.Sub(monday).Hours() / 24)
			if idx >= 0 && idx < 7 {
				days[idx] = revenue
			}
		}
		return days, rows.Err()
	}

	current, err := weekRevenue(thisMonday)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to compute sales overview."))
		return
	}
	previous, err := weekRevenue(lastMonday)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to compute sales overview."))
		return
	}

	c.JSON(http.StatusOK, ok(gin.H{
		"labels":       []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		"currentWeek":  current,
		"previousWeek": previous,
	}))
}

// GetSalesByCategory is the handler for GET /v1/admin/dashboard/sales-by-category
func (h *Handlers) GetSalesByCategory(c *gin.Context) {
	rows, err := h.DB.Query(`
		SELECT c.name, COALESCE(SUM(oi.price * oi.quantity), 0) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE ` + revenueCondition + `
		GROUP BY c.id, c.name
		ORDER BY revenue DESC
		LIMIT 5`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to compute sales by category."))
		return
	}
	defer rows.Close()

	type categorySales struct {
		Category string  `json:"category"`
		Revenue  float64 `json:"revenue"`
	}
	sales := []categorySales{}
	for rows.Next() {
		var row categorySales
		if err := rows.Scan(&row.Category, &row.Revenue); err != nil {
			c.JSON(http.StatusInternalServerError, fail("Failed to scan category sales."))
			return
		}
		sales = append(sales, row)
	}

	c.JSON(http.StatusOK, ok(gin.H{"categories": sales}))
}

// GetRecentOrders is the handler for GET /v1/admin/dashboard/recent-orders
func (h *Handlers) GetRecentOrders(c *gin.Context) {
	rows, err := h.DB.Query("SELECT " + orderColumns + " FROM orders ORDER BY created_at DESC LIMIT 10")
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to query recent orders."))
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, fail("Failed to scan order."))
			return
		}
		orders = append(orders, o)
	}

	c.JSON(http.StatusOK, ok(gin.H{"orders": orders}))
}

// GetTopProducts is the handler for GET /v1/admin/dashboard/top-products
func (h *Handlers) GetTopProducts(c *gin.Context) {
	rows, err := h.DB.Query(`
		SELECT oi.product_name, SUM(oi.quantity) AS units, SUM(oi.price * oi.quantity) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE ` + revenueCondition + `
		GROUP BY oi.product_id, oi.product_name
		ORDER BY revenue DESC
		LIMIT 5`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to query top products."))
		return
	}
	defer rows.Close()

	products := []pdf.ProductSales{}
	for rows.Next() {
		var row pdf.ProductSales
		if err := rows.Scan(&row.Name, &row.Units, &row.Revenue); err != nil {
			c.JSON(http.StatusInternalServerError, fail("Failed to scan top product."))
			return
		}
		products = append(products, row)
	}

	c.JSON(http.StatusOK, ok(gin.H{"products": products}))
}

//
// --- Sales Analytics ---
//

// resolveDateRange turns a named preset (or a custom start/end pair)
// into a half-open [start, end) window plus a display label.
func resolveDateRange(name, startStr, endStr string, now time.Time) (time.Time, time.Time, string, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch name {
	case "", "last30days":
		return today.AddDate(0, 0, -29), today.AddDate(0, 0, 1), "Last 30 Days", nil
	case "today":
		return today, today.AddDate(0, 0, 1), "Today", nil
	case "yesterday":
		return today.AddDate(0, 0, -1), today, "Yesterday", nil
	case "last7days":
		return today.AddDate(0, 0, -6), today.AddDate(0, 0, 1), "Last 7 Days", nil
	case "thismonth":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0), "This Month", nil
	case "lastmonth":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
		return start, start.AddDate(0, 1, 0), "Last Month", nil
	case "thisyear":
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0), "This Year", nil
	case "lastyear":
		start := time.Date(now.Year()-1, 1, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0), "Last Year", nil
	case "custom":
		start, err := time.ParseInLocation("2006-01-02", startStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, "", fmt.Errorf("invalid start_date: %q", startStr)
		}
		end, err := time.ParseInLocation("2006-01-02", endStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, "", fmt.Errorf("invalid end_date: %q", endStr)
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, "", fmt.Errorf("end_date before start_date")
		}
		label := start.Format("Jan 2, 2006") + " to " + end.Format("Jan 2, 2006")
		return start, end.AddDate(0, 0, 1), label, nil
	default:
		return time.Time{}, time.Time{}, "", fmt.Errorf("unknown date_range: %q", name)
	}
}

// salesAnalytics aggregates the analytics window once so the JSON
// endpoint and the PDF export share the same numbers.
type salesAnalytics struct {
	Start, End      time.Time
	Label           string
	TotalOrders     int
	TotalRevenue    float64
	TotalSubtotal   float64
	TotalShipping   float64
	ItemsSold       int
	AverageOrder    float64
	UniqueCustomers int
	SalesByDate     []pdf.DailyPoint
	ByPayment       map[string]float64
	ByStatus        map[string]int
	TopProducts     []pdf.ProductSales
}

func (h *Handlers) computeSalesAnalytics(start, end time.Time, label string) (*salesAnalytics, error) {
	a := &salesAnalytics{
		Start: start, End: end, Label: label,
		ByPayment: map[string]float64{},
		ByStatus:  map[string]int{},
	}

	err := h.DB.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(total), 0), COALESCE(SUM(shipping_cost), 0), COUNT(DISTINCT user_id)
		FROM orders
		WHERE created_at >= ? AND created_at < ? AND `+revenueCondition,
		start, end).Scan(&a.TotalOrders, &a.TotalRevenue, &a.TotalShipping, &a.UniqueCustomers)
	if err != nil {
		return nil, err
	}
	a.TotalSubtotal = a.TotalRevenue - a.TotalShipping
	if a.TotalOrders > 0 {
		a.AverageOrder = a.TotalRevenue / float64(a.TotalOrders)
	}

	err = h.DB.QueryRow(`
		SELECT COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at >= ? AND o.created_at < ? AND `+revenueCondition,
		start, end).Scan(&a.ItemsSold)
	if err != nil {
		return nil, err
	}

	rows, err := h.DB.Query(`
		SELECT DATE(created_at) AS day, COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= ? AND created_at < ? AND `+revenueCondition+`
		GROUP BY DATE(created_at)
		ORDER BY day`, start, end)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var point pdf.DailyPoint
		if err := rows.Scan(&point.Date, &point.Orders, &point.Revenue); err != nil {
			rows.Close()
			return nil, err
		}
		a.SalesByDate = append(a.SalesByDate, point)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = h.DB.Query(`
		SELECT payment_method, COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= ? AND created_at < ? AND `+revenueCondition+`
		GROUP BY payment_method`, start, end)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var method string
		var revenue float64
		if err := rows.Scan(&method, &revenue); err != nil {
			rows.Close()
			return nil, err
		}
		a.ByPayment[method] = revenue
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = h.DB.Query(`
		SELECT status, COUNT(*)
		FROM orders
		WHERE created_at >= ? AND created_at < ?
		GROUP BY status`, start, end)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			rows.Close()
			return nil, err
		}
		a.ByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = h.DB.Query(`
		SELECT oi.product_name, SUM(oi.quantity) AS units, SUM(oi.price * oi.quantity) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at >= ? AND o.created_at < ? AND `+revenueCondition+`
		GROUP BY oi.product_id, oi.product_name
		ORDER BY revenue DESC
		LIMIT 10`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var row pdf.ProductSales
		if err := rows.Scan(&row.Name, &row.Units, &row.Revenue); err != nil {
			return nil, err
		}
		a.TopProducts = append(a.TopProducts, row)
	}
	return a, rows.Err()
}

// GetSalesAnalytics is the handler for GET /v1/admin/analytics
func (h *Handlers) GetSalesAnalytics(c *gin.Context) {
	start, end, label, err := resolveDateRange(
		c.Query("date_range"), c.Query("start_date"), c.Query("end_date"), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, fail(err.Error()))
		return
	}

	analytics, err := h.computeSalesAnalytics(start, end, label)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to compute analytics."))
		return
	}

	c.JSON(http.StatusOK, ok(gin.H{
		"period":          label,
		"startDate":       start.Format("2006-01-02"),
		"endDate":         end.AddDate(0, 0, -1).Format("2006-01-02"),
		"totalOrders":     analytics.TotalOrders,
		"totalRevenue":    analytics.TotalRevenue,
		"totalSubtotal":   analytics.TotalSubtotal,
		"totalShipping":   analytics.TotalShipping,
		"itemsSold":       analytics.ItemsSold,
		"averageOrder":    analytics.AverageOrder,
		"uniqueCustomers": analytics.UniqueCustomers,
		"salesByDate":     analytics.SalesByDate,
		"byPaymentMethod": analytics.ByPayment,
		"byStatus":        analytics.ByStatus,
		"topProducts":     analytics.TopProducts,
	}))
}

// ExportSalesReportPDF is the handler for GET /v1/admin/analytics/export.pdf
func (h *Handlers) ExportSalesReportPDF(c *gin.Context) {
	start, end, label, err := resolveDateRange(
		c.Query("date_range"), c.Query("start_date"), c.Query("end_date"), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, fail(err.Error()))
		return
	}

	analytics, err := h.computeSalesAnalytics(start, end, label)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to compute analytics."))
		return
	}

	report := &pdf.SalesReport{
		PeriodLabel:  label,
		StartDate:    start,
		EndDate:      end.AddDate(0, 0, -1),
		TotalRevenue: analytics.TotalRevenue,
		TotalOrders:  analytics.TotalOrders,
		ItemsSold:    analytics.ItemsSold,
		AverageOrder: analytics.AverageOrder,
		TopProducts:  analytics.TopProducts,
		DailyRevenue: analytics.SalesByDate,
	}

	out, err := pdf.GenerateSalesReport(report)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to generate report."))
		return
	}

	filename := "sales-report-" + start.Format("20060102") + "-" + end.AddDate(0, 0, -1).Format("20060102") + ".pdf"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", out)
}
