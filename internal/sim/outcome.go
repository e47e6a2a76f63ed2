package sim

// Outcome is how the current run stands.
type Outcome int

const (
	Playing Outcome = iota
	Won
	OutOfTime
	Fell
)

func (o Outcome) String() string {
	switch o {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case OutOfTime:
		return "out of time"
	case Fell:
		return "fell"
	default:
		return "unknown"
	}
}

// Over reports whether the run has ended, won or lost.
func (o Outcome) Over() bool {
	return o != Playing
}
