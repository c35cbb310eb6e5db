package admin

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"calyx/config"
	"calyx/repo"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// Invoice handles GET /api/admin/order/invoice/:orderId and streams a PDF
// invoice for the order, with a QR code that encodes the order reference.
func Invoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("orderId")
	order, err := repo.Orders().FindOne(ctx, bson.M{"orderId": orderID})
	if err != nil {
		log.Println("Invoice lookup error:", err)
		http.Error(w, "Error retrieving order", http.StatusBadRequest)
		return
	}
	if order == nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	cfg := config.Load()

	qrPNG, err := qrcode.Encode(fmt.Sprintf("%s|%s", order.OrderID, order.OrderPaymentID), qrcode.Medium, 256)
	if err != nil {
		log.Println("Invoice QR error:", err)
		http.Error(w, "Failed to generate invoice", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, cfg.CartTitle+" - Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Order: %s", order.OrderID))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", order.OrderDate.Format("2 Jan 2006 15:04")))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", order.OrderStatus))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Customer: %s %s", order.OrderFirstname, order.OrderLastname))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", order.OrderEmail))
	pdf.Ln(6)
	address := order.OrderAddr1
	if order.OrderAddr2 != "" {
		address += ", " + order.OrderAddr2
	}
	pdf.Cell(0, 8, fmt.Sprintf("Address: %s, %s %s, %s", address, order.OrderState, order.OrderPostcode, order.OrderCountry))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(110, 8, "Product")
	pdf.Cell(20, 8, "Qty")
	pdf.Cell(30, 8, "Price")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	for _, line := range order.OrderProducts {
		title := line.Title
		if line.VariantTitle != "" {
			title += " / " + line.VariantTitle
		}
		pdf.Cell(110, 8, title)
		pdf.Cell(20, 8, fmt.Sprintf("%d", line.Quantity))
		pdf.Cell(30, 8, fmt.Sprintf("%s%.2f", cfg.CurrencySymbol, line.TotalItemPrice))
		pdf.Ln(8)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(110, 8, "")
	pdf.Cell(20, 8, "Shipping")
	pdf.Cell(30, 8, fmt.Sprintf("%s%.2f", cfg.CurrencySymbol, order.OrderShipping))
	pdf.Ln(8)
	pdf.Cell(110, 8, "")
	pdf.Cell(20, 8, "Total")
	pdf.Cell(30, 8, fmt.Sprintf("%s%.2f", cfg.CurrencySymbol, order.OrderTotal))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 20, 30, 30, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Println("Invoice output error:", err)
		http.Error(w, "Failed to generate invoice", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=invoice-"+order.OrderID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
