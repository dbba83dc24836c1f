package material

// StockLevel classifies a material's balance against its minimum.
type StockLevel string

const (
	LevelNormal   StockLevel = "NORMAL"
	LevelLow      StockLevel = "LOW"
	LevelCritical StockLevel = "CRITICAL"
)

func (l StockLevel) String() string {
	return string(l)
}

// NeedsAttention reports whether the level should be surfaced to buyers.
func (l StockLevel) NeedsAttention() bool {
	return l == LevelLow || l == LevelCritical
}
