// Package matcher is the boundary to the match advisory: an external,
// stateless service that compares a resume with a job posting.
package matcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/Monesha-B/nexus-job-platform/internal/config"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
	"github.com/redis/go-redis/v9"
)

// ScoreRequest is the input of a compatibility score.
type ScoreRequest struct {
	ResumeText     string
	JobDescription string
	JobTitle       string
	Company        string
}

// CoverLetterRequest is the input of cover letter generation.
type CoverLetterRequest struct {
	ResumeText     string
	JobDescription string
	JobTitle       string
	Company        string
	CandidateName  string
	Tone           string
	Highlights     string
}

// QuestionsRequest is the input of interview question generation.
type QuestionsRequest struct {
	ResumeText     string
	JobDescription string
	JobTitle       string
}

// SkillsGapRequest is the input of a skills gap analysis.
type SkillsGapRequest struct {
	ResumeText     string
	TargetRole     string
	JobDescription string
}

// SkillsGapResult compares a candidate's skills with a target role.
type SkillsGapResult struct {
	CurrentSkills    []string `json:"current_skills"`
	RequiredSkills   []string `json:"required_skills"`
	MatchingSkills   []string `json:"matching_skills"`
	MissingSkills    []string `json:"missing_skills"`
	OverallReadiness int      `json:"overall_readiness"`
}

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

// ChatRequest is a conversation with optional resume context.
type ChatRequest struct {
	Messages      []ChatMessage
	ResumeSummary string
}

// Advisor produces advisory output for resumes and jobs. Every failure is
// reported as an apperror of kind MatchServiceUnavailable.
type Advisor interface {
	Name() string
	Score(ctx context.Context, req ScoreRequest) (model.MatchResult, error)
	CoverLetter(ctx context.Context, req CoverLetterRequest) (string, error)
	InterviewQuestions(ctx context.Context, req QuestionsRequest) ([]model.InterviewQuestion, error)
	SkillsGap(ctx context.Context, req SkillsGapRequest) (SkillsGapResult, error)
	ParseResume(ctx context.Context, text string) (*model.ParsedResume, error)
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

// New builds the advisor described by cfg. Without an API key, or with
// UseMock set, the offline keyword advisor is used. Score results are cached
// in memory and, when rdb is non-nil, in Redis.
func New(cfg config.AIConfig, rdb *redis.Client) Advisor {
	var adv Advisor
	if cfg.UseMock || cfg.APIKey == "" {
		slog.Info("match advisor running offline", slog.String("advisor", KeywordAdvisorName))
		adv = NewKeywordAdvisor()
	} else {
		adv = NewOpenAIAdvisor(OpenAIConfig{
			APIKey:            cfg.APIKey,
			BaseURL:           cfg.BaseURL,
			Model:             cfg.Model,
			Timeout:           cfg.Timeout,
			RequestsPerSecond: cfg.RequestsPerSecond,
		})
	}
	return NewCachedAdvisor(adv, rdb, time.Hour)
}

// ScoreWithFallback scores req and substitutes DefaultResult when the
// advisor fails. The second value reports whether the default was used.
func ScoreWithFallback(ctx context.Context, adv Advisor, req ScoreRequest) (model.MatchResult, bool) {
	res, err := adv.Score(ctx, req)
	if err != nil {
		slog.Warn("match advisor failed, using default result",
			slog.String("advisor", adv.Name()),
			slog.Any("error", err))
		return DefaultResult(), true
	}
	return res, false
}

// DefaultResult is the neutral result returned when no score is available.
func DefaultResult() model.MatchResult {
	return model.MatchResult{
		MatchScore:      50,
		OverallFit:      model.FitModerate,
		Summary:         "Automated analysis is unavailable right now. This neutral score does not reflect your resume.",
		Strengths:       []string{},
		Gaps:            []string{},
		SkillsMatch:     []model.SkillMatch{},
		Recommendations: []string{"Run the analysis again in a few minutes for a detailed assessment."},
	}
}
