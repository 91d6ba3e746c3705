package calculator

import (
	"math"

	"github.com/mmynk/sharezin/internal/models"
)

// ItemTotal is quantity × price for one line.
func ItemTotal(item models.ReceiptItem) float64 {
	return item.Quantity * item.Price
}

// ItemsTotal sums every item on the receipt at full precision.
func ItemsTotal(r *models.Receipt) float64 {
	var total float64
	for _, item := range r.Items {
		total += ItemTotal(item)
	}
	return total
}

// ServiceChargeAmount is the service charge on the items total.
func ServiceChargeAmount(r *models.Receipt) float64 {
	return ItemsTotal(r) * (r.ServiceChargePercent / 100)
}

// ReceiptTotal is items + service charge + cover, unrounded.
func ReceiptTotal(r *models.Receipt) float64 {
	return ItemsTotal(r) + ServiceChargeAmount(r) + r.Cover
}

// Round rounds a currency figure to cents, halves going up.
// Only call it where a figure is reported, never inside a running sum.
func Round(value float64) float64 {
	return math.Floor(value*100+0.5) / 100
}
