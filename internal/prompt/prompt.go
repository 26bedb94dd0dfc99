// Package prompt builds the natural-language instructions sent to the
// generation endpoint. Construction is pure: the same mode, option and input
// always produce the same prompt, and changing an option only changes the
// trailing style clause.
package prompt

import "fmt"

// Mode selects which task clause the prompt opens with.
type Mode string

const (
	ModeSummarize  Mode = "summarize"
	ModeParaphrase Mode = "paraphrase"
)

// SummaryLength controls the style clause of a summarize prompt.
type SummaryLength string

const (
	LengthConcise  SummaryLength = "concise"
	LengthStandard SummaryLength = "standard"
	LengthDetailed SummaryLength = "detailed"
)

// ParaphraseStyle controls the style clause of a paraphrase prompt.
type ParaphraseStyle string

const (
	StyleFormal   ParaphraseStyle = "formal"
	StyleCasual   ParaphraseStyle = "casual"
	StyleCreative ParaphraseStyle = "creative"
)

// SummaryLengths lists the selectable lengths in display order.
var SummaryLengths = []SummaryLength{LengthConcise, LengthStandard, LengthDetailed}

// ParaphraseStyles lists the selectable styles in display order.
var ParaphraseStyles = []ParaphraseStyle{StyleFormal, StyleCasual, StyleCreative}

// Summarize returns the instruction for summarizing text at the given length.
// The input text is embedded verbatim in quotes. Unknown lengths fall back to
// the standard clause.
func Summarize(text string, length SummaryLength) string {
	var style string
	switch length {
	case LengthConcise:
		style = "Make the summary very concise and brief."
	case LengthDetailed:
		style = "Provide a detailed and comprehensive summary."
	default:
		style = "Provide a standard length summary."
	}
	return fmt.Sprintf("Summarize the following text: \"%s\". %s", text, style)
}

// Paraphrase returns the instruction for rephrasing text in the given style.
// Unknown styles fall back to the creative clause.
func Paraphrase(text string, style ParaphraseStyle) string {
	var clause string
	switch style {
	case StyleFormal:
		clause = "Use a formal tone and vocabulary."
	case StyleCasual:
		clause = "Use a casual and informal tone."
	default:
		clause = "Be creative and imaginative in your rephrasing."
	}
	return fmt.Sprintf("Paraphrase the following text: \"%s\". %s", text, clause)
}

// Build dispatches to Summarize or Paraphrase based on mode. Unknown modes
// are treated as summarize.
func Build(mode Mode, text string, length SummaryLength, style ParaphraseStyle) string {
	if mode == ModeParaphrase {
		return Paraphrase(text, style)
	}
	return Summarize(text, length)
}
