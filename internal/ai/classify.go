package ai

import (
	"context"
	"errors"
	"net"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrorKind labels a failed completion for diagnostics. It is never shown to users.
type ErrorKind string

const (
	KindNetwork  ErrorKind = "network"
	KindAuth     ErrorKind = "auth"
	KindQuota    ErrorKind = "quota"
	KindServer   ErrorKind = "server"
	KindEmpty    ErrorKind = "empty"
	KindCanceled ErrorKind = "canceled"
	KindUnknown  ErrorKind = "unknown"
)

// Classify maps a completion error to an ErrorKind.
func Classify(err error) ErrorKind {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrEmptyResponse) {
		return KindEmpty
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return kindForStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return kindForStatus(reqErr.HTTPStatusCode)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "quota"):
		return KindQuota
	case strings.Contains(msg, "connection reset by peer"),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "timeout"):
		return KindNetwork
	}
	return KindUnknown
}

func kindForStatus(code int) ErrorKind {
	switch {
	case code == 401 || code == 403:
		return KindAuth
	case code == 429:
		return KindQuota
	case code >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}
