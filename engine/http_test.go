package engine

import (
	serrors "baro-server/errors"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestParseReply(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Reply
	}{
		{
			name:     "Structured reply with answer field",
			raw:      `{"answer": "Drink more water."}`,
			expected: StructuredReply{Answer: "Drink more water."},
		},
		{
			name:     "Structured reply with empty answer",
			raw:      `{"answer": ""}`,
			expected: StructuredReply{Answer: ""},
		},
		{
			name:     "JSON object without answer field",
			raw:      `{"result": "something else"}`,
			expected: OpaqueReply{Raw: `{"result": "something else"}`},
		},
		{
			name:     "Plain text payload",
			raw:      "  just some text\n",
			expected: OpaqueReply{Raw: "just some text"},
		},
		{
			name:     "Null answer falls back to opaque",
			raw:      `{"answer": null}`,
			expected: OpaqueReply{Raw: `{"answer": null}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, ParseReply([]byte(tt.raw)))
		})
	}
}

func TestHTTPEngine_Respond(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctx := context.Background()

	t.Run("should post the message and parse a structured reply", func(t *testing.T) {
		req := require.New(t)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req.Equal(http.MethodPost, r.Method)
			req.Equal("application/json", r.Header.Get("Content-Type"))

			var body engineRequest
			req.NoError(json.NewDecoder(r.Body).Decode(&body))
			req.Equal("hello bot", body.Message)
			req.Equal("en", body.Lang)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"answer": "hello human"}`))
		}))
		defer server.Close()

		responseEngine := NewHTTPEngine(server.URL, 5*time.Second, log)
		reply, err := responseEngine.Respond(ctx, Input{Message: "hello bot", Lang: "en"})

		req.NoError(err)
		req.Equal("hello human", reply.Text())
	})

	t.Run("should keep a non-JSON body as an opaque reply", func(t *testing.T) {
		req := require.New(t)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("plain advice"))
		}))
		defer server.Close()

		responseEngine := NewHTTPEngine(server.URL, 5*time.Second, log)
		reply, err := responseEngine.Respond(ctx, Input{Message: "hello"})

		req.NoError(err)
		req.Equal("plain advice", reply.Text())
	})

	t.Run("should wrap a non-2xx status as an upstream failure", func(t *testing.T) {
		req := require.New(t)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "model overloaded", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		responseEngine := NewHTTPEngine(server.URL, 5*time.Second, log)
		_, err := responseEngine.Respond(ctx, Input{Message: "hello"})

		req.ErrorIs(err, serrors.ErrUpstreamFailure)
		req.ErrorContains(err, "503")
		req.ErrorContains(err, "model overloaded")
	})

	t.Run("should wrap an unreachable upstream as an upstream failure", func(t *testing.T) {
		req := require.New(t)

		responseEngine := NewHTTPEngine("http://127.0.0.1:1", 500*time.Millisecond, log)
		_, err := responseEngine.Respond(ctx, Input{Message: "hello"})

		req.ErrorIs(err, serrors.ErrUpstreamFailure)
	})

	t.Run("should honor context cancellation", func(t *testing.T) {
		req := require.New(t)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()

		responseEngine := NewHTTPEngine(server.URL, 5*time.Second, log)
		_, err := responseEngine.Respond(cancelCtx, Input{Message: "hello"})

		req.ErrorIs(err, serrors.ErrUpstreamFailure)
	})
}
