package main

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// maxTranscript bounds the text kept in the transcript view.
const maxTranscript = 64 * 1024

// transcript is a scrolling, monospace log of the operator session.
// All methods must run on the main Fyne thread.
type transcript struct {
	label  *widget.Label
	scroll *container.Scroll
	text   string
}

func newTranscript() *transcript {
	label := widget.NewLabel("")
	label.Wrapping = fyne.TextWrapWord
	label.TextStyle = fyne.TextStyle{Monospace: true}

	return &transcript{
		label:  label,
		scroll: container.NewVScroll(label),
	}
}

// Append adds s and scrolls to the end. The oldest lines are dropped once the
// transcript grows past maxTranscript.
func (t *transcript) Append(s string) {
	t.text += s
	if len(t.text) > maxTranscript {
		cut := len(t.text) - maxTranscript/2
		if i := strings.IndexByte(t.text[cut:], '\n'); i >= 0 {
			cut += i + 1
		}
		t.text = t.text[cut:]
	}
	t.label.SetText(t.text)
	t.scroll.ScrollToBottom()
}

// Clear empties the transcript.
func (t *transcript) Clear() {
	t.text = ""
	t.label.SetText("")
}
