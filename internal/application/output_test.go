package application

import (
	"strings"

	"github.com/bnema/gothub-kernel/internal/domain"
)

// recordingOutput captures everything a cell sends to the host.
type recordingOutput struct {
	streams  []streamWrite
	displays []domain.DisplayData
	errors   []*domain.ExecutionError
}

type streamWrite struct {
	name domain.StreamName
	text string
}

func (o *recordingOutput) Stream(name domain.StreamName, text string) error {
	o.streams = append(o.streams, streamWrite{name: name, text: text})
	return nil
}

func (o *recordingOutput) Display(data domain.DisplayData) error {
	o.displays = append(o.displays, data)
	return nil
}

func (o *recordingOutput) ReportError(err *domain.ExecutionError) error {
	o.errors = append(o.errors, err)
	return nil
}

func (o *recordingOutput) stdout() string {
	var b strings.Builder
	for _, w := range o.streams {
		if w.name == domain.StreamStdout {
			b.WriteString(w.text)
		}
	}
	return b.String()
}
