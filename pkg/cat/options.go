package cat

// Options holds the display switches of a run. The zero value concatenates the sources unchanged.
type Options struct {
	// ShowAll enables ShowEnds and ShowTabs.
	ShowAll bool
	// ShowEnds appends "$" to every line.
	ShowEnds bool
	// Number numbers every line. Ignored when NumberNonblank is set.
	Number bool
	// NumberNonblank numbers non-empty lines only.
	NumberNonblank bool
	// ShowTabs renders tab characters as "^I".
	ShowTabs bool
	// SqueezeBlanks collapses runs of empty lines into one.
	SqueezeBlanks bool
}
