package matcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Monesha-B/nexus-job-platform/internal/apperror"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// OpenAIConfig configures an OpenAI compatible chat completions client.
type OpenAIConfig struct {
	APIKey            string
	BaseURL           string
	Model             string
	Timeout           time.Duration
	RequestsPerSecond float64
	Retry             *RetryConfig
	HTTPClient        *http.Client
}

// OpenAIAdvisor calls a chat completions endpoint. Calls are throttled
// client side, retried on transient failures and guarded by a circuit
// breaker. Each public call is bounded by Timeout as a whole.
type OpenAIAdvisor struct {
	apiKey   string
	endpoint string
	model    string
	timeout  time.Duration
	retry    RetryConfig
	client   *http.Client
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker
}

// OpenAIRequest is the chat completions request body.
type OpenAIRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    *float64        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// OpenAIResponse is the subset of the chat completions response in use.
type OpenAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type completion struct {
	messages  []ChatMessage
	jsonMode  bool
	maxTokens int
	warm      bool
}

// NewOpenAIAdvisor returns an advisor for cfg, filling unset fields with defaults.
func NewOpenAIAdvisor(cfg OpenAIConfig) *OpenAIAdvisor {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 2
	}
	retry := DefaultRetryConfig
	if cfg.Retry != nil {
		retry = *cfg.Retry
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	burst := max(1, int(cfg.RequestsPerSecond))
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "match-advisor",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})

	return &OpenAIAdvisor{
		apiKey:   cfg.APIKey,
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions",
		model:    cfg.Model,
		timeout:  cfg.Timeout,
		retry:    retry,
		client:   client,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
		breaker:  breaker,
	}
}

// Name returns the model in use.
func (a *OpenAIAdvisor) Name() string { return a.model }

// Score asks the model for a compatibility assessment.
func (a *OpenAIAdvisor) Score(ctx context.Context, req ScoreRequest) (model.MatchResult, error) {
	raw, err := a.complete(ctx, completion{
		messages: []ChatMessage{
			{Role: "system", Content: scoreSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(scorePrompt, req.ResumeText, jobHeader(req.JobTitle, req.Company), req.JobDescription)},
		},
		jsonMode:  true,
		maxTokens: 1500,
	})
	if err != nil {
		return model.MatchResult{}, err
	}

	res, err := parseMatchResult(raw)
	if err != nil {
		return model.MatchResult{}, malformed(err)
	}
	return res, nil
}

// CoverLetter writes a cover letter in the requested tone.
func (a *OpenAIAdvisor) CoverLetter(ctx context.Context, req CoverLetterRequest) (string, error) {
	highlights := ""
	if req.Highlights != "" {
		highlights = "KEY STRENGTHS TO HIGHLIGHT: " + req.Highlights + "\n"
	}
	name := req.CandidateName
	if name == "" {
		name = "the candidate"
	}

	raw, err := a.complete(ctx, completion{
		messages: []ChatMessage{
			{Role: "system", Content: coverLetterSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(coverLetterPrompt,
				req.JobTitle, req.Company, req.JobDescription, name, req.ResumeText, toneDescription(req.Tone), highlights)},
		},
		maxTokens: 1000,
		warm:      true,
	})
	if err != nil {
		return "", err
	}

	letter := strings.TrimSpace(raw)
	if letter == "" {
		return "", malformed(errEmptyResponse)
	}
	return letter, nil
}

// InterviewQuestions generates likely interview questions with coaching.
func (a *OpenAIAdvisor) InterviewQuestions(ctx context.Context, req QuestionsRequest) ([]model.InterviewQuestion, error) {
	raw, err := a.complete(ctx, completion{
		messages: []ChatMessage{
			{Role: "user", Content: fmt.Sprintf(questionsPrompt, req.JobTitle, req.JobDescription, req.ResumeText)},
		},
		maxTokens: 2000,
	})
	if err != nil {
		return nil, err
	}

	qs, err := parseQuestions(raw)
	if err != nil {
		return nil, malformed(err)
	}
	return qs, nil
}

// SkillsGap compares the resume with a target role.
func (a *OpenAIAdvisor) SkillsGap(ctx context.Context, req SkillsGapRequest) (SkillsGapResult, error) {
	job := ""
	if req.JobDescription != "" {
		job = "Job description:\n" + req.JobDescription + "\n"
	}
	raw, err := a.complete(ctx, completion{
		messages: []ChatMessage{
			{Role: "user", Content: fmt.Sprintf(skillsGapPrompt, req.TargetRole, job, req.ResumeText)},
		},
		jsonMode:  true,
		maxTokens: 1000,
	})
	if err != nil {
		return SkillsGapResult{}, err
	}

	res, err := parseSkillsGap(raw)
	if err != nil {
		return SkillsGapResult{}, malformed(err)
	}
	return res, nil
}

// ParseResume extracts structured data from resume text.
func (a *OpenAIAdvisor) ParseResume(ctx context.Context, text string) (*model.ParsedResume, error) {
	raw, err := a.complete(ctx, completion{
		messages: []ChatMessage{
			{Role: "user", Content: fmt.Sprintf(parseResumePrompt, text)},
		},
		jsonMode:  true,
		maxTokens: 2000,
	})
	if err != nil {
		return nil, err
	}

	res, err := parseResumeData(raw)
	if err != nil {
		return nil, malformed(err)
	}
	return res, nil
}

// Chat answers the last message of a conversation.
func (a *OpenAIAdvisor) Chat(ctx context.Context, req ChatRequest) (string, error) {
	system := chatSystemPrompt
	if req.ResumeSummary != "" {
		system += "\nThe user's resume summary: " + req.ResumeSummary
	}
	msgs := make([]ChatMessage, 0, len(req.Messages)+1)
	msgs = append(msgs, ChatMessage{Role: "system", Content: system})
	msgs = append(msgs, req.Messages...)

	raw, err := a.complete(ctx, completion{messages: msgs, maxTokens: 300, warm: true})
	if err != nil {
		return "", err
	}

	reply := strings.TrimSpace(raw)
	if reply == "" {
		return "", malformed(errEmptyResponse)
	}
	return reply, nil
}

// complete runs one chat completion within the advisor timeout and returns
// the message content. Errors are classified as MatchServiceUnavailable.
func (a *OpenAIAdvisor) complete(ctx context.Context, c completion) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	body := OpenAIRequest{
		Model:     a.model,
		Messages:  c.messages,
		MaxTokens: c.maxTokens,
	}
	if c.jsonMode {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	if c.warm {
		t := 0.7
		body.Temperature = &t
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", apperror.Internal("Failed to encode advisor request", err)
	}

	start := time.Now()
	content, err := a.withRetry(ctx, func() (string, error) {
		if err := a.limiter.Wait(ctx); err != nil {
			return "", err
		}
		out, err := a.breaker.Execute(func() (interface{}, error) {
			return a.send(ctx, payload)
		})
		if err != nil {
			return "", err
		}
		return out.(string), nil
	})
	if err != nil {
		slog.Warn("advisor call failed",
			slog.String("model", a.model),
			slog.Duration("elapsed", time.Since(start)),
			slog.Any("error", err))
		return "", unavailable(err)
	}

	slog.Debug("advisor call finished", slog.String("model", a.model), slog.Duration("elapsed", time.Since(start)))
	return content, nil
}

func (a *OpenAIAdvisor) send(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Debug("failed to close advisor response body", slog.Any("error", cerr))
		}
	}()

	if isRetryableStatus(resp.StatusCode) {
		return "", newStatusError(resp)
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("advisor API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("no choices in advisor response")
	}
	return out.Choices[0].Message.Content, nil
}

func unavailable(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperror.Wrap(apperror.KindMatchServiceUnavailable, "Match service timed out", err)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return apperror.Wrap(apperror.KindMatchServiceUnavailable, "Match service is temporarily unavailable", err)
	default:
		return apperror.Wrap(apperror.KindMatchServiceUnavailable, "Match service request failed", err)
	}
}

func malformed(err error) error {
	return apperror.Wrap(apperror.KindMatchServiceUnavailable, "Match service returned an unusable response", err)
}
