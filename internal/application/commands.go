package application

import "github.com/bnema/gothub-kernel/internal/domain"

type ReplyStatus string

const (
	ReplyOK    ReplyStatus = "ok"
	ReplyError ReplyStatus = "error"
)

// ExecuteRequest is one cell submitted by a host.
type ExecuteRequest struct {
	Code   string
	Silent bool
}

type ExecuteReply struct {
	Status         ReplyStatus
	ExecutionCount int
	Error          *domain.ExecutionError
}

type SetAPIKeyCommand struct {
	Value string
}
