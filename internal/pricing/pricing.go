// Package pricing computes checkout totals.  The marketplace charges a flat
// 18% platform fee and tax (GST) on top of the booked line items.
package pricing

// GSTRate is the fixed platform fee and tax rate applied at checkout.
const GSTRate = 0.18

// LineTotal is the price of booking one space for an inclusive number of
// days at its daily rate.
func LineTotal(pricePerDay float64, days int) float64 {
    if days < 1 {
        days = 1
    }
    return pricePerDay * float64(days)
}

// Quote summarizes a cart at checkout.
type Quote struct {
    Subtotal float64 `json:"subtotal"`
    GST      float64 `json:"gst"`
    Total    float64 `json:"total"`
}

// QuoteFor sums the given line totals and applies GST.
func QuoteFor(lineTotals []float64) Quote {
    var sub float64
    for _, t := range lineTotals {
        sub += t
    }
    gst := sub * GSTRate
    return Quote{Subtotal: sub, GST: gst, Total: sub + gst}
}
