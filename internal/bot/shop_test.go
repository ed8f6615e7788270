package bot

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShopLedgerClampsSell(t *testing.T) {
	l := newShopLedger()
	assert.Equal(t, 3, l.Buy("diamond", 3))
	assert.Equal(t, 0, l.Sell("diamond", 5))
	assert.Equal(t, 0, l.Quantity("diamond"))
}

func TestShopLedgerSaturatesBuy(t *testing.T) {
	l := newShopLedger()
	assert.Equal(t, math.MaxInt, l.Buy("diamond", math.MaxInt))
	assert.Equal(t, math.MaxInt, l.Buy("diamond", 2))
	assert.Equal(t, math.MaxInt-5, l.Sell("diamond", 5))
}

func TestShopLedgerIsCaseSensitive(t *testing.T) {
	l := newShopLedger()
	l.Buy("Diamond", 2)
	assert.Equal(t, 0, l.Quantity("diamond"))
	assert.Equal(t, 2, l.Quantity("Diamond"))
}

func TestShopLedgerRandomSequences(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	items := []string{"diamond", "iron_ingot", "bread"}

	for round := 0; round < 200; round++ {
		l := newShopLedger()
		for op := 0; op < 50; op++ {
			item := items[r.IntN(len(items))]
			amount := 1 + r.IntN(10)
			prev := l.Quantity(item)
			if r.IntN(2) == 0 {
				assert.Equal(t, prev+amount, l.Buy(item, amount))
			} else {
				got := l.Sell(item, amount)
				assert.GreaterOrEqual(t, got, 0)
				assert.Equal(t, max(prev-amount, 0), got)
			}
		}
	}
}
