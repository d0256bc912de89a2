package oddeven

import "strconv"

// Channel names of the pipeline.
const (
	NumberChannel  = "number-channel"
	EvenChannel    = "even-channel"
	OddChannel     = "odd-channel"
	DiscardChannel = "discard-channel"
)

// Route returns the channel for p: EvenChannel if p%2 == 0, OddChannel otherwise.
// Negative numbers follow the same rule, so -4 is even and -99 is odd.
func Route(p int) string {
	if p%2 == 0 {
		return EvenChannel
	}
	return OddChannel
}

// Format renders v the way the parity stages emit it.
func Format(v int) string {
	return "Number " + strconv.Itoa(v)
}
