package pricing

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
    cases := []struct {
        name  string
        price float64
        days  int
        want  float64
    }{
        {"one day", 1500, 1, 1500},
        {"week", 1500, 7, 10500},
        {"zero days clamps to one", 1500, 0, 1500},
        {"negative days clamps to one", 1500, -3, 1500},
        {"fractional rate", 999.50, 2, 1999},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.InDelta(t, tc.want, LineTotal(tc.price, tc.days), 1e-9)
        })
    }
}

func TestQuoteFor(t *testing.T) {
    q := QuoteFor([]float64{10000, 4500, 500})
    assert.InDelta(t, 15000, q.Subtotal, 1e-9)
    assert.InDelta(t, 2700, q.GST, 1e-9)
    assert.InDelta(t, 17700, q.Total, 1e-9)
}

func TestQuoteForEmptyCart(t *testing.T) {
    q := QuoteFor(nil)
    assert.Zero(t, q.Subtotal)
    assert.Zero(t, q.GST)
    assert.Zero(t, q.Total)
}

func TestGSTRateApplied(t *testing.T) {
    q := QuoteFor([]float64{100})
    assert.InDelta(t, 100*GSTRate, q.GST, 1e-9)
    assert.InDelta(t, q.Subtotal+q.GST, q.Total, 1e-9)
}
