package script

import "strings"

// Kind discriminates the variants of a provider response part.
type Kind int

const (
	KindText Kind = iota
	KindAudio
	KindContainer
)

// Part is one node of a provider response tree. Providers return
// heterogeneous payloads (text blocks, inline audio, nested message
// containers); folding them through one collector keeps the backends
// free of ad hoc traversal code.
type Part struct {
	Kind     Kind
	Text     string
	Audio    []byte
	Children []Part
}

func TextPart(text string) Part {
	return Part{Kind: KindText, Text: text}
}

func AudioPart(audio []byte) Part {
	return Part{Kind: KindAudio, Audio: audio}
}

func Container(children ...Part) Part {
	return Part{Kind: KindContainer, Children: children}
}

// Collect folds a part tree in document order into the script text and
// narration audio it carries. Text blocks are joined with newlines;
// audio chunks are concatenated.
func Collect(parts []Part) (script string, audio []byte) {
	var sb strings.Builder
	for _, p := range parts {
		switch p.Kind {
		case KindText:
			appendText(&sb, p.Text)
		case KindAudio:
			audio = append(audio, p.Audio...)
		case KindContainer:
			s, a := Collect(p.Children)
			appendText(&sb, s)
			audio = append(audio, a...)
		}
	}
	return sb.String(), audio
}

func appendText(sb *strings.Builder, text string) {
	if text == "" {
		return
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(text)
}
