// Package terminal writes cell output to a terminal: streams as they arrive,
// markdown through glamour, errors in a warning style.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/ports"
)

const wordWrap = 100

type Output struct {
	stdout   io.Writer
	stderr   io.Writer
	markdown *glamour.TermRenderer
	errStyle lipgloss.Style
	mu       sync.Mutex
	// lastByte tracks whether stdout ends mid-line so displays start fresh.
	lastByte byte
}

var _ ports.Output = (*Output)(nil)

type Option func(*options)

type options struct {
	glamour []glamour.TermRendererOption
}

// WithStyle picks a named glamour style such as "dark" or "notty" instead of
// detecting one from the terminal.
func WithStyle(style string) Option {
	return func(o *options) {
		o.glamour = []glamour.TermRendererOption{glamour.WithStandardStyle(style), glamour.WithWordWrap(wordWrap)}
	}
}

func New(stdout, stderr io.Writer, opts ...Option) (*Output, error) {
	cfg := options{glamour: []glamour.TermRendererOption{glamour.WithAutoStyle(), glamour.WithWordWrap(wordWrap)}}
	for _, opt := range opts {
		opt(&cfg)
	}

	renderer, err := glamour.NewTermRenderer(cfg.glamour...)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}

	return &Output{
		stdout:   stdout,
		stderr:   stderr,
		markdown: renderer,
		errStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		lastByte: '\n',
	}, nil
}

func (o *Output) Stream(name domain.StreamName, text string) error {
	if text == "" {
		return nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if name == domain.StreamStderr {
		_, err := io.WriteString(o.stderr, text)
		return err
	}
	if _, err := io.WriteString(o.stdout, text); err != nil {
		return err
	}
	o.lastByte = text[len(text)-1]
	return nil
}

// Display prefers markdown, then plain text. HTML-only bundles print their
// source.
func (o *Output) Display(data domain.DisplayData) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	var rendered string
	switch {
	case data[domain.MIMEMarkdown] != "":
		out, err := o.markdown.Render(data[domain.MIMEMarkdown])
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		rendered = out
	case data[domain.MIMEPlain] != "":
		rendered = data[domain.MIMEPlain]
	default:
		rendered = data[domain.MIMEHTML]
	}
	if rendered == "" {
		return nil
	}

	if o.lastByte != '\n' {
		rendered = "\n" + rendered
	}
	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}
	_, err := io.WriteString(o.stdout, rendered)
	o.lastByte = '\n'
	return err
}

func (o *Output) ReportError(execErr *domain.ExecutionError) error {
	if execErr == nil {
		return nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	prefix := ""
	if o.lastByte != '\n' {
		prefix = "\n"
		o.lastByte = '\n'
	}
	_, err := fmt.Fprintf(o.stderr, "%s%s %s\n", prefix, o.errStyle.Render(execErr.Name+":"), execErr.Value)
	return err
}

// EndCell terminates a streamed line so the next prompt starts clean.
func (o *Output) EndCell() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.lastByte == '\n' {
		return nil
	}
	o.lastByte = '\n'
	_, err := io.WriteString(o.stdout, "\n")
	return err
}
