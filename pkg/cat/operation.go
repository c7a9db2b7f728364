package cat

import "strconv"

// Operation is a single line transform stage.
type Operation int

// Operations are declared in the order they must run.
const (
	SqueezeBlanks Operation = iota + 1
	NumberNonblank
	Number
	ShowTabs
	ShowEnds
)

var operationNames = map[Operation]string{
	SqueezeBlanks:  "squeeze-blanks",
	NumberNonblank: "number-nonblank",
	Number:         "number",
	ShowTabs:       "show-tabs",
	ShowEnds:       "show-ends",
}

// String returns the stage name of the operation.
func (op Operation) String() string {
	if name, ok := operationNames[op]; ok {
		return name
	}

	return "operation(" + strconv.Itoa(int(op)) + ")"
}

// Apply runs the operation over lines and returns the resulting sequence.
// An unknown operation returns a copy of lines.
func (op Operation) Apply(lines Lines) Lines {
	switch op {
	case SqueezeBlanks:
		return SqueezeBlankLines(lines)
	case NumberNonblank:
		return NumberNonblankLines(lines)
	case Number:
		return NumberLines(lines)
	case ShowTabs:
		return ShowTabLines(lines)
	case ShowEnds:
		return ShowEndLines(lines)
	default:
		return lines.clone()
	}
}

// Operations derives the ordered operation set enabled by opts.
//
// Squeezing always runs first so numbering never counts lines that are removed, and end markers always run last so
// they land after every other change. Non-blank numbering wins over plain numbering.
func Operations(opts Options) []Operation {
	ops := make([]Operation, 0, len(operationNames))

	if opts.SqueezeBlanks {
		ops = append(ops, SqueezeBlanks)
	}

	switch {
	case opts.NumberNonblank:
		ops = append(ops, NumberNonblank)
	case opts.Number:
		ops = append(ops, Number)
	}

	if opts.ShowTabs || opts.ShowAll {
		ops = append(ops, ShowTabs)
	}

	if opts.ShowEnds || opts.ShowAll {
		ops = append(ops, ShowEnds)
	}

	return ops
}
