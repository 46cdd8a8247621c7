// File: services/jamai/client.go
package jamai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"realfun/models"
	"realfun/utils"

	"go.uber.org/zap"
)

const addRowsPath = "/api/v1/gen_tables/action/rows/add"

// Client talks to the JamAI Base generative tables API. Construct it once at
// boot and share it; it is immutable after construction and the embedded
// http.Client is safe for concurrent use.
type Client struct {
	baseURL   string
	projectID string
	token     string
	tableID   string
	httpc     *http.Client
}

// ClientConfig carries the credentials and table coordinates for one project.
type ClientConfig struct {
	BaseURL   string
	ProjectID string
	Token     string
	TableID   string
	Timeout   time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		projectID: strings.TrimSpace(cfg.ProjectID),
		token:     strings.TrimSpace(cfg.Token),
		tableID:   strings.TrimSpace(cfg.TableID),
		httpc:     &http.Client{Timeout: timeout},
	}
}

type addRowPayload struct {
	TableID string           `json:"table_id"`
	Data    []map[string]any `json:"data"`
	Stream  bool             `json:"stream"`
}

// AddActionRow submits one normalized request as an action table row and parses
// the completed columns into a CopilotResponse. One synchronous call, no retry;
// transport failures and unusable rows both come back as a ResponseError.
func (c *Client) AddActionRow(ctx context.Context, req models.CopilotRequest) (*models.CopilotResponse, error) {
	logger := utils.GetLogger()

	payload := addRowPayload{
		TableID: c.tableID,
		Data: []map[string]any{{
			"raw_request":   req.RawRequest,
			"student_name":  req.StudentName,
			"student_level": req.StudentLevel,
			"current_mode":  req.CurrentMode,
			"current_slot":  req.CurrentSlot,
			"notes":         req.NotesOrEmpty(),
		}},
		Stream: false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, NewParsingError(fmt.Sprintf("Unexpected error while calling JamAI: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+addRowsPath, bytes.NewReader(body))
	if err != nil {
		return nil, NewParsingError(fmt.Sprintf("Unexpected error while calling JamAI: %v", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("X-PROJECT-ID", c.projectID)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		logger.Error("JamAI action table call failed", zap.Error(err))
		return nil, NewParsingError(fmt.Sprintf("Unexpected error while calling JamAI: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logger.Error("JamAI action table returned an error status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", strings.TrimSpace(string(detail))))
		return nil, NewParsingError(fmt.Sprintf("JamAI returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))))
	}

	var rows TableRowsResponse
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		logger.Error("Failed to decode JamAI response", zap.Error(err))
		return nil, NewParsingError(fmt.Sprintf("Unexpected error while calling JamAI: %v", err))
	}

	columns, err := ExtractColumns(&rows)
	if err != nil {
		return nil, err
	}
	return BuildResponse(columns)
}
