package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
)

type BaseHTTPSuite struct {
	suite.Suite
	Config Config
	client *http.Client
}

// SetupSuite loads the environment configuration before running tests
// and skips the whole suite when no server address is configured.
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	if s.Config.ServerAddr == "" {
		s.T().Skip("SERVER_ADDR not set, skipping end-to-end scenarios")
	}
	s.client = &http.Client{Timeout: 60 * time.Second}
}

// Header prints a colorized section header in the test log.
func (s *BaseHTTPSuite) Header(t *testing.T, name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)
}

// Call performs one HTTP round-trip against the server, decodes the JSON
// response into out (when non-nil), and returns the status code.
func (s *BaseHTTPSuite) Call(t *testing.T, method, path string, body any, token string, out any) int {
	var reader io.Reader
	var requestJSON []byte
	if body != nil {
		var err error
		requestJSON, err = json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(requestJSON)
	}

	req, err := http.NewRequest(method, s.Config.ServerAddr+path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	s.Require().NoError(err, "Failed to reach server at "+s.Config.ServerAddr)
	defer resp.Body.Close()

	responseJSON, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	logBuilder := strings.Builder{}
	fmt.Fprintf(&logBuilder, "HTTP %s %s [%d] in %v", method, path, resp.StatusCode, time.Since(start))
	// Log full JSON request/response bodies if E2E_DEBUG_JSON is enabled
	if s.Config.DebugJSON {
		fmt.Fprintln(&logBuilder, "\nREQUEST:")
		fmt.Fprintln(&logBuilder, string(requestJSON))
		fmt.Fprintln(&logBuilder, "RESPONSE:")
		fmt.Fprintln(&logBuilder, string(responseJSON))
	}
	t.Log(logBuilder.String())

	if out != nil && len(responseJSON) > 0 {
		s.Require().NoError(json.Unmarshal(responseJSON, out),
			"Failed to decode response body: "+string(responseJSON))
	}
	return resp.StatusCode
}
