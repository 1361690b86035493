package searchui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"
)

var tableHeader = strings.Join([]string{"NAZWA", "REGON", "ADRES", "SKRYTKA", "ID"}, "\t")

// TerminalView renders the table, the annotation and alerts as text.
type TerminalView struct {
	mu  sync.Mutex
	out io.Writer
}

func NewTerminalView(out io.Writer) *TerminalView {
	return &TerminalView{out: out}
}

// Replace prints the result table with aligned columns.
func (v *TerminalView) Replace(lines []string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	tw := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, tableHeader)
	for _, line := range lines {
		fmt.Fprintln(tw, line)
	}
	_ = tw.Flush()
}

// Annotate prints msg as a warning line. Clearing prints nothing.
func (v *TerminalView) Annotate(msg string) {
	if msg == "" {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "(!) %s\n", msg)
}

// Alert prints msg as an error line.
func (v *TerminalView) Alert(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "[BŁĄD] %s\n", msg)
}

// Detail returns the surface showing the skrytka list of one entity.
func (v *TerminalView) Detail() Surface {
	return detailSurface{v: v}
}

type detailSurface struct {
	v *TerminalView
}

func (s detailSurface) Replace(lines []string) {
	s.v.mu.Lock()
	defer s.v.mu.Unlock()
	fmt.Fprintln(s.v.out, "--- skrytki ---")
	if len(lines) > 0 {
		fmt.Fprintln(s.v.out, strings.Join(lines, "\n"))
	}
	fmt.Fprintln(s.v.out, "---------------")
}

var (
	_ Surface  = (*TerminalView)(nil)
	_ Notifier = (*TerminalView)(nil)
)
