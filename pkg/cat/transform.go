package cat

import (
	"fmt"
	"strings"
)

// numberWidth is the minimum width of the line number gutter.
const numberWidth = 6

// Lines is an ordered sequence of lines without their terminators.
type Lines []string

func (l Lines) clone() Lines {
	if l == nil {
		return nil
	}

	out := make(Lines, len(l))
	copy(out, l)

	return out
}

func (l Lines) mapLines(fn func(string) string) Lines {
	if l == nil {
		return nil
	}

	out := make(Lines, len(l))
	for i, line := range l {
		out[i] = fn(line)
	}

	return out
}

// Transform applies ops to lines in the given order. Each operation consumes the output of the previous one.
func Transform(lines Lines, ops []Operation) Lines {
	out := lines.clone()
	for _, op := range ops {
		out = op.Apply(out)
	}

	return out
}

// SqueezeBlankLines collapses every run of consecutive empty lines into a single empty line.
func SqueezeBlankLines(lines Lines) Lines {
	if lines == nil {
		return nil
	}

	out := make(Lines, 0, len(lines))

	for i, line := range lines {
		if line == "" && i > 0 && lines[i-1] == "" {
			continue
		}

		out = append(out, line)
	}

	return out
}

// NumberNonblankLines prefixes every non-empty line with its 1-based rank among the non-empty lines.
// Empty lines are kept as they are.
func NumberNonblankLines(lines Lines) Lines {
	n := 0

	return lines.mapLines(func(line string) string {
		if line == "" {
			return line
		}

		n++

		return numbered(n, line)
	})
}

// NumberLines prefixes every line, empty or not, with its 1-based position.
func NumberLines(lines Lines) Lines {
	n := 0

	return lines.mapLines(func(line string) string {
		n++

		return numbered(n, line)
	})
}

// ShowTabLines replaces every tab character with "^I".
func ShowTabLines(lines Lines) Lines {
	return lines.mapLines(func(line string) string {
		return strings.ReplaceAll(line, "\t", "^I")
	})
}

// ShowEndLines appends "$" to every line.
func ShowEndLines(lines Lines) Lines {
	return lines.mapLines(func(line string) string {
		return line + "$"
	})
}

// numbered right-justifies n in the gutter; the number is always followed by two spaces.
func numbered(n int, line string) string {
	return fmt.Sprintf("%*d  %s", numberWidth, n, line)
}
