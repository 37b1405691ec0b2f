package output

import (
	"fmt"
	"io"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) Merging(count int) {
	fmt.Fprintf(f.w, "🎛️  Merging %d audio segment(s)...\n", count)
}

func (f *Formatter) Merged(path string) {
	fmt.Fprintf(f.w, "✅ Recording ready: %s\n", path)
}

func (f *Formatter) Transcribing() {
	fmt.Fprintf(f.w, "📝 Transcribing audio...\n")
}

func (f *Formatter) TranscribeDone(segments int) {
	fmt.Fprintf(f.w, "✅ Transcript ready (%d segments)\n", segments)
}

func (f *Formatter) Summarizing() {
	fmt.Fprintf(f.w, "🤖 Generating summary...\n")
}

func (f *Formatter) SummarizeDone(actionItems int) {
	fmt.Fprintf(f.w, "✅ Summary ready (%d action items)\n", actionItems)
}

func (f *Formatter) ArtifactSaved(path string) {
	fmt.Fprintf(f.w, "📁 Meeting notes saved: %s\n", path)
}

func (f *Formatter) EmailSent(to string) {
	fmt.Fprintf(f.w, "📧 Summary emailed to %s\n", to)
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

func (f *Formatter) ArtifactListHeader() {
	fmt.Fprintf(f.w, "📁 Meetings:\n\n")
}

func (f *Formatter) ArtifactListItem(name string) {
	fmt.Fprintf(f.w, "  %s\n", name)
}

func (f *Formatter) SetupCheck(name string, ok bool, detail string) {
	if ok {
		fmt.Fprintf(f.w, "  ✅ %s: %s\n", name, detail)
	} else {
		fmt.Fprintf(f.w, "  ❌ %s: %s\n", name, detail)
	}
}
