package api

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"backend/engine"
	"backend/models"
)

const (
	briefingURL     = "https://api.anthropic.com/v1/messages"
	briefingVersion = "2023-06-01"
	briefingModel   = "claude-3-haiku-20240307"
	briefingTokens  = 1024
)

// BriefingClient turns the store's numbers into advisory text. Both calls
// are opaque enrichment: nothing downstream parses the briefing, and the
// forecast is passed through to the dashboard as-is.
type BriefingClient interface {
	DailyBriefing(ctx context.Context, report engine.DashboardReport) (string, error)
	SalesForecast(ctx context.Context, sales []models.Sale) (json.RawMessage, error)
}

type briefingClient struct {
	httpClient *resty.Client
}

// NewBriefingClient reads the API key from AI_API_KEY. Without a key the
// client is still usable and returns a canned line, callers never have to
// special-case a missing integration.
func NewBriefingClient() BriefingClient {
	client := resty.New().
		SetHeader("x-api-key", os.Getenv("AI_API_KEY")).
		SetHeader("anthropic-version", briefingVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(15 * time.Second)

	return &briefingClient{httpClient: client}
}

type briefingRequest struct {
	Model     string            `json:"model"`
	MaxTokens int               `json:"max_tokens"`
	System    string            `json:"system"`
	Messages  []briefingMessage `json:"messages"`
}

type briefingMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type briefingResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (c *briefingClient) DailyBriefing(ctx context.Context, report engine.DashboardReport) (string, error) {
	if os.Getenv("AI_API_KEY") == "" {
		return fallbackBriefing(report), nil
	}

	reportJSON, _ := json.Marshal(report)

	systemPrompt := fmt.Sprintf(`You are an assistant for a small retail store manager.

Today's figures (JSON):
%s

Write a short briefing in plain English, 3 sentences maximum:
- Lead with today's revenue and profit.
- Mention the cash position only if it is notable.
- If batches are low on stock or sold out, say which ones to restock first.
Do not invent numbers that are not in the data. No markdown, no lists.`, string(reportJSON))

	reqBody := briefingRequest{
		Model:     briefingModel,
		MaxTokens: briefingTokens,
		System:    systemPrompt,
		Messages: []briefingMessage{
			{Role: "user", Content: "Give me today's briefing."},
		},
	}

	var respBody briefingResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(briefingURL)

	if err != nil {
		return "", fmt.Errorf("briefing api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("briefing api error: %s", resp.String())
	}
	if len(respBody.Content) == 0 {
		return "", fmt.Errorf("empty response from ai")
	}

	return strings.TrimSpace(respBody.Content[0].Text), nil
}

// SalesForecast asks the model for a revenue projection over the recent
// sales log. The JSON comes back unparsed; shape is a contract between the
// prompt and the dashboard, not this backend.
func (c *briefingClient) SalesForecast(ctx context.Context, sales []models.Sale) (json.RawMessage, error) {
	if os.Getenv("AI_API_KEY") == "" {
		return json.RawMessage(`{"available":false}`), nil
	}

	// Recent window only, full history wastes tokens for no accuracy.
	if len(sales) > 200 {
		sales = sales[len(sales)-200:]
	}
	salesJSON, _ := json.Marshal(sales)

	systemPrompt := fmt.Sprintf(`You are a sales forecasting assistant for a small retail store.

Recent sales log (JSON array, oldest first):
%s

Respond with ONLY a JSON object, no markdown:
{"available": true, "days": [{"date": "YYYY-MM-DD", "revenue": number}, ...]}
Project the next 7 days of revenue from the pattern in the log.`, string(salesJSON))

	reqBody := briefingRequest{
		Model:     briefingModel,
		MaxTokens: briefingTokens,
		System:    systemPrompt,
		Messages: []briefingMessage{
			{Role: "user", Content: "Forecast the next 7 days."},
			{Role: "assistant", Content: "{"},
		},
	}

	var respBody briefingResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(briefingURL)

	if err != nil {
		return nil, fmt.Errorf("forecast api call: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("forecast api error: %s", resp.String())
	}
	if len(respBody.Content) == 0 {
		return nil, fmt.Errorf("empty response from ai")
	}

	raw := "{" + strings.TrimSpace(respBody.Content[0].Text)
	if !json.Valid([]byte(raw)) {
		return nil, fmt.Errorf("forecast response is not valid json")
	}
	return json.RawMessage(raw), nil
}

func fallbackBriefing(report engine.DashboardReport) string {
	return fmt.Sprintf("Revenue today %.2f with profit %.2f. Cash on hand %.2f, bank %.2f.",
		report.TodayRevenue, report.TodayProfit, report.CashOnHand, report.BankBalance)
}
