package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/gothub-kernel/internal/domain"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []Message {
	t.Helper()

	var messages []Message
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var msg Message
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &msg))
		messages = append(messages, msg)
	}
	require.NoError(t, scanner.Err())
	return messages
}

func TestWriterEmitsOneLinePerMessage(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.SetCell("cell-1")

	require.NoError(t, w.Stream(domain.StreamStdout, "hi"))
	require.NoError(t, w.ReportError(&domain.ExecutionError{Name: "ProviderError", Value: "boom"}))
	require.NoError(t, w.Reply("error", 3))

	messages := decodeLines(t, &buf)
	require.Len(t, messages, 3)
	assert.Equal(t, Message{Type: TypeStream, CellID: "cell-1", Name: "stdout", Text: "hi"}, messages[0])
	assert.Equal(t, Message{Type: TypeError, CellID: "cell-1", EName: "ProviderError", EValue: "boom"}, messages[1])
	assert.Equal(t, Message{Type: TypeExecuteReply, CellID: "cell-1", Status: "error", ExecutionCount: 3}, messages[2])
}

func TestWriterAddsHTMLToMarkdownDisplay(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Display(domain.MarkdownDisplay("**DALL-E 3:**")))
	require.NoError(t, w.Display(domain.DisplayData{
		domain.MIMEMarkdown: "![image](https://x/y.png)",
		domain.MIMEHTML:     `<img src="https://x/y.png">`,
	}))

	messages := decodeLines(t, &buf)
	require.Len(t, messages, 2)
	assert.Equal(t, "**DALL-E 3:**", messages[0].Data[domain.MIMEMarkdown])
	assert.Equal(t, "<p><strong>DALL-E 3:</strong></p>\n", messages[0].Data[domain.MIMEHTML])
	assert.Equal(t, `<img src="https://x/y.png">`, messages[1].Data[domain.MIMEHTML])
}
