// Package jsonl writes cell output as one JSON object per line, for hosts
// that drive the kernel over stdio.
package jsonl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/yuin/goldmark"

	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/ports"
)

const (
	TypeStream       = "stream"
	TypeDisplayData  = "display_data"
	TypeError        = "error"
	TypeExecuteReply = "execute_reply"
)

// Message is one output line. Only the fields relevant to Type are set.
type Message struct {
	Type           string            `json:"type"`
	CellID         string            `json:"cell_id,omitempty"`
	Name           string            `json:"name,omitempty"`
	Text           string            `json:"text,omitempty"`
	Data           map[string]string `json:"data,omitempty"`
	EName          string            `json:"ename,omitempty"`
	EValue         string            `json:"evalue,omitempty"`
	Status         string            `json:"status,omitempty"`
	ExecutionCount int               `json:"execution_count,omitempty"`
}

type Writer struct {
	mu     sync.Mutex
	enc    *json.Encoder
	cellID string
}

var _ ports.Output = (*Writer)(nil)

func NewWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Writer{enc: enc}
}

// SetCell tags every following message with id, until the next call.
func (w *Writer) SetCell(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cellID = id
}

func (w *Writer) Stream(name domain.StreamName, text string) error {
	return w.write(Message{Type: TypeStream, Name: string(name), Text: text})
}

// Display adds a text/html rendering to markdown-only bundles.
func (w *Writer) Display(data domain.DisplayData) error {
	bundle := make(map[string]string, len(data)+1)
	for mime, value := range data {
		bundle[mime] = value
	}

	if markdown, ok := bundle[domain.MIMEMarkdown]; ok {
		if _, hasHTML := bundle[domain.MIMEHTML]; !hasHTML {
			var html bytes.Buffer
			if err := goldmark.Convert([]byte(markdown), &html); err != nil {
				return fmt.Errorf("convert markdown: %w", err)
			}
			bundle[domain.MIMEHTML] = html.String()
		}
	}

	return w.write(Message{Type: TypeDisplayData, Data: bundle})
}

func (w *Writer) ReportError(execErr *domain.ExecutionError) error {
	if execErr == nil {
		return nil
	}
	return w.write(Message{Type: TypeError, EName: execErr.Name, EValue: execErr.Value})
}

func (w *Writer) Reply(status string, executionCount int) error {
	return w.write(Message{Type: TypeExecuteReply, Status: status, ExecutionCount: executionCount})
}

func (w *Writer) write(msg Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	msg.CellID = w.cellID
	if err := w.enc.Encode(msg); err != nil {
		return fmt.Errorf("write %s message: %w", msg.Type, err)
	}
	return nil
}
