// Package console prints status lines for the user watching a build.
package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/uf2idf/internal/domain"
)

// Ensure Reporter implements domain.Reporter.
var _ domain.Reporter = (*Reporter)(nil)

// Prefix starts every status line.
const Prefix = "[uf2idf]"

// Colors is the console palette.
var Colors = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Value   lipgloss.Color
}{
	Primary: lipgloss.Color("#6C5CE7"), // Purple
	Muted:   lipgloss.Color("#636E72"), // Gray
	Value:   lipgloss.Color("#DFE6E9"), // Light gray
}

// Styles holds the styles used for status lines.
type Styles struct {
	Prefix lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
}

// NewStyles returns styles bound to r so color is only emitted on terminals.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Prefix: r.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),
		Label: r.NewStyle().
			Foreground(Colors.Muted),
		Value: r.NewStyle().
			Foreground(Colors.Value),
	}
}

// Reporter writes styled status lines to w.
type Reporter struct {
	w      io.Writer
	styles Styles
	mu     sync.Mutex
}

// NewReporter creates a Reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{
		w:      w,
		styles: NewStyles(lipgloss.NewRenderer(w)),
	}
}

// Field prints "[uf2idf] label: value".
func (r *Reporter) Field(label, value string) {
	r.println(r.styles.Label.Render(label+":") + " " + r.styles.Value.Render(value))
}

// Info prints "[uf2idf] msg".
func (r *Reporter) Info(msg string) {
	r.println(r.styles.Value.Render(msg))
}

func (r *Reporter) println(body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.w, r.styles.Prefix.Render(Prefix)+" "+body)
}
