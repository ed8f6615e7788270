package bot

import "math"

// shopLedger — игрушечный склад магазина: имя предмета (как набрано, с учётом
// регистра) -> количество. Живёт ровно столько, сколько сессия.
type shopLedger struct {
	stock map[string]int
}

func newShopLedger() *shopLedger {
	return &shopLedger{stock: make(map[string]int)}
}

// touch создаёт запись лениво при первом упоминании предмета.
func (l *shopLedger) touch(item string) {
	if _, ok := l.stock[item]; !ok {
		l.stock[item] = 0
	}
}

// Buy упирается в math.MaxInt вместо переполнения.
func (l *shopLedger) Buy(item string, amount int) int {
	l.touch(item)
	if amount > math.MaxInt-l.stock[item] {
		l.stock[item] = math.MaxInt
		return l.stock[item]
	}
	l.stock[item] += amount
	return l.stock[item]
}

// Sell уменьшает остаток, но никогда не уходит ниже нуля.
func (l *shopLedger) Sell(item string, amount int) int {
	l.touch(item)
	l.stock[item] = max(l.stock[item]-amount, 0)
	return l.stock[item]
}

func (l *shopLedger) Quantity(item string) int {
	return l.stock[item]
}
