package domain

type StreamName string

const (
	StreamStdout StreamName = "stdout"
	StreamStderr StreamName = "stderr"
)

const (
	MIMEPlain    = "text/plain"
	MIMEMarkdown = "text/markdown"
	MIMEHTML     = "text/html"
)

// DisplayData is a mime bundle, keyed by mime type.
type DisplayData map[string]string

func MarkdownDisplay(markdown string) DisplayData {
	return DisplayData{MIMEMarkdown: markdown}
}

func HTMLDisplay(html string) DisplayData {
	return DisplayData{MIMEHTML: html}
}

type ImageRef struct {
	URL     string
	Caption string
}

// ImageBatch is the normalized result of any image provider.
type ImageBatch struct {
	Images []ImageRef
}

// CaptionLength counts the characters of every caption in the batch.
func (b ImageBatch) CaptionLength() int64 {
	var total int64
	for _, image := range b.Images {
		total += CharCount(image.Caption)
	}
	return total
}

// RealtimeEvent is one server-sent event from a realtime database subscription.
type RealtimeEvent struct {
	Type string
	Path string
	Data string
}
