// Package session owns the single page's worth of interaction state and the
// transitions that mutate it. The TUI renders the state but never mutates it
// directly; every user action goes through a transition function here, which
// keeps the interaction logic testable without a terminal.
package session

import (
	"errors"
	"strings"
	"time"

	"textsmith/internal/gemini"
	"textsmith/internal/prompt"
)

// StatusTTL is how long a banner stays visible before auto-dismissing.
const StatusTTL = 3 * time.Second

// StatusKind classifies a banner message.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusSuccess
	StatusError
)

// Status is the transient banner shown after an action. Seq identifies the
// banner so a dismiss timer armed for an earlier banner cannot clear a newer
// one.
type Status struct {
	Text string
	Kind StatusKind
	Seq  uint64
}

// State holds all UI-bound session state. Everything is in-memory only and
// dies with the process; the API key in particular is never persisted.
type State struct {
	Input  string
	Output string
	Busy   bool
	Status Status
	APIKey string

	SummaryLength   prompt.SummaryLength
	ParaphraseStyle prompt.ParaphraseStyle

	mode      prompt.Mode
	statusSeq uint64
}

// New returns a fresh state with the default option selections.
func New() *State {
	return &State{
		SummaryLength:   prompt.LengthStandard,
		ParaphraseStyle: prompt.StyleFormal,
	}
}

// Begin validates an action trigger. On acceptance it clears the previous
// result and banner, marks the session busy, and returns the prompt to send.
// A trigger while a call is already in flight is ignored outright; blank
// input and a blank key fail fast with an error banner and no prompt.
func (s *State) Begin(mode prompt.Mode) (string, bool) {
	if s.Busy {
		return "", false
	}
	if strings.TrimSpace(s.Input) == "" {
		s.SetStatus(StatusError, "Please enter some text first!")
		return "", false
	}
	if strings.TrimSpace(s.APIKey) == "" {
		s.SetStatus(StatusError, "Please enter your API key!")
		return "", false
	}

	s.Output = ""
	s.Status = Status{}
	s.Busy = true
	s.mode = mode
	return prompt.Build(mode, s.Input, s.SummaryLength, s.ParaphraseStyle), true
}

// FinishSuccess records the generated text and clears the busy flag.
func (s *State) FinishSuccess(text string) {
	s.Busy = false
	s.Output = text
	if s.mode == prompt.ModeParaphrase {
		s.SetStatus(StatusSuccess, "Paraphrase generated!")
	} else {
		s.SetStatus(StatusSuccess, "Summary generated!")
	}
}

// FinishFailure clears the busy flag and maps the failure to a short
// user-facing error banner.
func (s *State) FinishFailure(err error) {
	s.Busy = false
	s.SetStatus(StatusError, failureMessage(err))
}

func failureMessage(err error) string {
	var upstream *gemini.UpstreamError
	switch {
	case errors.Is(err, gemini.ErrMissingCredential):
		return "Please enter your API key!"
	case errors.Is(err, gemini.ErrEmptyGeneration):
		return "No text was generated. Please try again."
	case errors.As(err, &upstream):
		return "Error: " + upstream.Message
	default:
		return "Network error. Please check your connection."
	}
}

// ClearInput resets input, output and banner in one transition, then confirms
// with a success banner. Safe to call mid-flight; the busy flag is untouched
// so a late response still lands through Finish*.
func (s *State) ClearInput() {
	s.Input = ""
	s.Output = ""
	s.Status = Status{}
	s.SetStatus(StatusSuccess, "Input cleared!")
}

// CopyResult copies the current output using write, which is injected so the
// clipboard can be mocked in tests. An empty result never touches the
// clipboard.
func (s *State) CopyResult(write func(string) error) {
	if s.Output == "" {
		s.SetStatus(StatusError, "Nothing to copy!")
		return
	}
	if err := write(s.Output); err != nil {
		s.SetStatus(StatusError, "Failed to copy to clipboard")
		return
	}
	s.SetStatus(StatusSuccess, "Copied to clipboard!")
}

// SetStatus replaces the current banner and returns its sequence number,
// which callers use to arm the matching dismiss timer.
func (s *State) SetStatus(kind StatusKind, text string) uint64 {
	s.statusSeq++
	s.Status = Status{Text: text, Kind: kind, Seq: s.statusSeq}
	return s.statusSeq
}

// ExpireStatus clears the banner, but only if seq still identifies it. A
// timer armed for a banner that has since been superseded is a no-op.
func (s *State) ExpireStatus(seq uint64) {
	if s.Status.Seq == seq {
		s.Status = Status{}
	}
}
