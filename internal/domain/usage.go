package domain

import (
	"fmt"
	"time"
	"unicode/utf8"
)

type Capability string

const (
	CapabilityChat  Capability = "chat"
	CapabilityImage Capability = "image"
)

// Collection returns the document collection holding usage records for c.
func (c Capability) Collection() string {
	switch c {
	case CapabilityImage:
		return "chat_records_for_images"
	default:
		return "chat_records"
	}
}

func (c Capability) Valid() bool {
	switch c {
	case CapabilityChat, CapabilityImage:
		return true
	default:
		return false
	}
}

type UsageKey struct {
	UserID     string
	Capability Capability
}

func (k UsageKey) String() string {
	return k.Capability.Collection() + "/" + k.UserID
}

type UsageRecord struct {
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Chats         int64
	CharactersIn  int64
	CharactersOut int64
	Images        int64
}

// UsedPercent returns the share of maxCalls consumed, clamped to [0, 100].
func (r UsageRecord) UsedPercent(maxCalls int64) float64 {
	if maxCalls <= 0 {
		return 0
	}

	used := float64(r.Chats) / float64(maxCalls) * 100
	if used > 100 {
		return 100
	}
	if used < 0 {
		return 0
	}
	return used
}

func (r UsageRecord) Apply(delta UsageDelta, at time.Time) UsageRecord {
	r.Chats += delta.Chats
	r.CharactersIn += delta.CharactersIn
	r.CharactersOut += delta.CharactersOut
	r.Images += delta.Images
	r.UpdatedAt = at
	return r
}

type UsageDelta struct {
	Chats         int64
	CharactersIn  int64
	CharactersOut int64
	Images        int64
}

func (d UsageDelta) IsZero() bool {
	return d == UsageDelta{}
}

func (r UsageRecord) CharactersCompact() string {
	return compactNumber(r.CharactersIn + r.CharactersOut)
}

func compactNumber(v int64) string {
	if v < 1_000 {
		return fmt.Sprintf("%d", v)
	}

	if v < 1_000_000 {
		return fmt.Sprintf("%.1fk", float64(v)/1_000)
	}

	return fmt.Sprintf("%.1fM", float64(v)/1_000_000)
}

// CharCount counts characters the way usage is billed: in code points, not bytes.
func CharCount(s string) int64 {
	return int64(utf8.RuneCountInString(s))
}
