package types

// Mark is a persisted record of one evaluated bar: the bar, its signal and
// what the run decided to do with it.
type Mark struct {
	Bar      Bar
	Signal   Signal
	Decision Action
	// Reason is the exit reason for sells and the met entry conditions for buys.
	Reason string
}
