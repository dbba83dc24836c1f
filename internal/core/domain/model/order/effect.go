package order

// StockEffect is what applying a status change does to raw material stock.
type StockEffect int

const (
	EffectNone StockEffect = iota
	EffectDeduct
	EffectRestore
)

func (e StockEffect) String() string {
	switch e {
	case EffectDeduct:
		return "DEDUCT"
	case EffectRestore:
		return "RESTORE"
	default:
		return "NONE"
	}
}

// Inverse returns the effect that undoes e.
func (e StockEffect) Inverse() StockEffect {
	switch e {
	case EffectDeduct:
		return EffectRestore
	case EffectRestore:
		return EffectDeduct
	default:
		return EffectNone
	}
}

// ParseStockEffect is the inverse of String. Unrecognised names map to EffectNone.
func ParseStockEffect(s string) StockEffect {
	switch s {
	case "DEDUCT":
		return EffectDeduct
	case "RESTORE":
		return EffectRestore
	default:
		return EffectNone
	}
}

func (e StockEffect) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *StockEffect) UnmarshalText(b []byte) error {
	*e = ParseStockEffect(string(b))
	return nil
}
