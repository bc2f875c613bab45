package counter

// Kind classifies a counter for external reporting systems.
type Kind int

const (
	// KindCounter marks a monotone, cumulative value.
	KindCounter Kind = iota
	// KindGauge marks a value that can rise and fall.
	KindGauge
)

func (k Kind) String() string {
	switch k {
	case KindCounter:
		return "counter"
	case KindGauge:
		return "gauge"
	default:
		return "unknown"
	}
}
