package model

import (
	"strings"
)

// Speaker identifies who produced an utterance in the interview conversation.
type Speaker string

const (
	SpeakerAgent     Speaker = "Agent"
	SpeakerCandidate Speaker = "Candidate"
)

// ParseSpeaker normalizes a raw speaker label into one of the two canonical
// speakers. "You" is accepted as a legacy alias for Candidate because the
// voice-capture client labels the candidate's turns that way.
func ParseSpeaker(raw string) (Speaker, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "agent":
		return SpeakerAgent, true
	case "candidate", "you":
		return SpeakerCandidate, true
	}
	return "", false
}

// Utterance is one speaker turn. Time is a display timestamp from the capture
// client and is advisory only.
type Utterance struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
	Time    string  `json:"time,omitempty"`
}

// Transcript is the ordered conversation, chronological and immutable once
// submitted for analysis.
type Transcript []Utterance

// Conversation renders the transcript one line per utterance in the form
// "Speaker: text", preserving order. The model receives the conversation
// verbatim; no filtering or truncation happens here.
func (t Transcript) Conversation() string {
	var b strings.Builder
	for i, u := range t {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(u.Speaker))
		b.WriteString(": ")
		b.WriteString(u.Text)
	}
	return b.String()
}
