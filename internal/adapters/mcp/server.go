// Package mcpadapter exposes the text features as MCP tools so agents can
// call them over stdio.
package mcpadapter

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kirillkom/textdesk/internal/core/ports"
)

const (
	defaultSentences = 5
	defaultKeywords  = 10
)

type Services struct {
	Humanizer    ports.TextHumanizer
	Sentiment    ports.SentimentService
	Summaries    ports.SummaryService
	Keywords     ports.KeywordService
	Capabilities ports.CapabilityReader
}

type handlers struct {
	svc      Services
	language string
}

func NewServer(svc Services, version, defaultLanguage string) *server.MCPServer {
	s := server.NewMCPServer("textdesk", version, server.WithToolCapabilities(false))
	h := handlers{svc: svc, language: defaultLanguage}

	s.AddTool(mcp.NewTool("humanize",
		mcp.WithDescription("Rewrite text with light synonym substitution."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to rewrite.")),
	), h.humanize)

	s.AddTool(mcp.NewTool("sentiment",
		mcp.WithDescription("Score the sentiment of a text: label, compound score and icon."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to score.")),
	), h.sentiment)

	s.AddTool(mcp.NewTool("summarize",
		mcp.WithDescription("Extract the most representative sentences of a text, in document order."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to summarize.")),
		mcp.WithNumber("sentences", mcp.Description("Number of sentences, 1 to 50.")),
		mcp.WithString("language", mcp.Description("spanish or english.")),
	), h.summarize)

	s.AddTool(mcp.NewTool("keywords",
		mcp.WithDescription("Rank the key phrases of a text."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to analyze.")),
		mcp.WithString("language", mcp.Description("Stopword language.")),
		mcp.WithNumber("max", mcp.Description("Maximum number of phrases.")),
	), h.keywords)

	s.AddTool(mcp.NewTool("capabilities",
		mcp.WithDescription("Report which features can run right now and why not."),
		mcp.WithString("language", mcp.Description("Language used for resource checks.")),
	), h.capabilities)

	return s
}

func (h handlers) humanize(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(h.svc.Humanizer.Humanize(text)), nil
}

func (h handlers) sentiment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res := h.svc.Sentiment.AnalyzeSentiment(ctx, text)
	if res.Failed() {
		return mcp.NewToolResultError(res.Error), nil
	}
	return jsonResult(res)
}

func (h handlers) summarize(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res := h.svc.Summaries.SummarizeText(ctx, text,
		req.GetInt("sentences", defaultSentences),
		req.GetString("language", h.language),
	)
	if res.Failed() {
		return mcp.NewToolResultError(res.Error), nil
	}
	return mcp.NewToolResultText(res.Summary), nil
}

func (h handlers) keywords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res := h.svc.Keywords.ExtractKeywords(ctx, text,
		req.GetString("language", h.language),
		req.GetInt("max", defaultKeywords),
	)
	if res.Failed() {
		return mcp.NewToolResultError(res.Error), nil
	}
	return jsonResult(res.Keywords)
}

func (h handlers) capabilities(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.svc.Capabilities.Snapshot(req.GetString("language", h.language)))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(body)), nil
}
