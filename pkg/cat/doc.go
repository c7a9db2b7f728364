// Package cat implements the text concatenation core of catpipe.
//
// Sources are resolved into one ordered sequence of lines by an Assembler. The display switches of a run are turned
// once into an ordered Operation set, and each Operation is a pure stage over the whole sequence: squeezing blank
// lines, numbering lines, showing tabs and marking line ends. Write emits the final sequence.
//
// The stages never fail and never modify their input; the only failure of the package is a ReadFailure raised while
// assembling the sources.
package cat
