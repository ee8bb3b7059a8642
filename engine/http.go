package engine

import (
	serrors "baro-server/errors"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// maxReplyBytes bounds how much of an engine response is read; anything
// beyond it is almost certainly a misbehaving upstream.
const maxReplyBytes = 1 << 20

// HTTPEngine calls a response-generation service over HTTP.
// Whatever the service answers with a 2xx is accepted: a JSON object with
// an "answer" string becomes a StructuredReply, everything else is kept
// verbatim as an OpaqueReply.
type HTTPEngine struct {
	url    string
	client *http.Client
	log    *slog.Logger
}

func NewHTTPEngine(url string, timeout time.Duration, log *slog.Logger) *HTTPEngine {
	return &HTTPEngine{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

type engineRequest struct {
	Message string `json:"message"`
	Lang    string `json:"lang,omitempty"`
}

func (e *HTTPEngine) Respond(ctx context.Context, input Input) (Reply, error) {
	body, err := json.Marshal(engineRequest{Message: input.Message, Lang: input.Lang})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", serrors.ErrUpstreamFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", serrors.ErrUpstreamFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", serrors.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading reply: %v", serrors.ErrUpstreamFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s",
			serrors.ErrUpstreamFailure, resp.StatusCode, snippet(raw))
	}

	return ParseReply(raw), nil
}

// ParseReply applies the tolerant extraction rule: prefer a named "answer"
// field, otherwise fall back to a generic rendering of the whole result.
func ParseReply(raw []byte) Reply {
	var envelope struct {
		Answer *string `json:"answer"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Answer != nil {
		return StructuredReply{Answer: *envelope.Answer}
	}
	return OpaqueReply{Raw: strings.TrimSpace(string(raw))}
}

func snippet(raw []byte) string {
	const max = 200
	s := strings.TrimSpace(string(raw))
	if len(s) > max {
		return s[:max]
	}
	return s
}
