package shop

// StockLevel classifies a plant's stock count for display.
type StockLevel int

const (
	StockOut StockLevel = iota
	StockLow
	StockIn
)

// lowStockThreshold is the largest stock count still badged as low.
const lowStockThreshold = 5

// StockLevelFor buckets a stock count: 0 is out of stock, 1..5 is low,
// anything above is in stock.
func StockLevelFor(stock int) StockLevel {
	switch {
	case stock <= 0:
		return StockOut
	case stock <= lowStockThreshold:
		return StockLow
	}
	return StockIn
}

// Label returns the badge text for a stock level.
func (l StockLevel) Label() string {
	switch l {
	case StockOut:
		return "Out of Stock"
	case StockLow:
		return "Low Stock"
	}
	return "In Stock"
}
