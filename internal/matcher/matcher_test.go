package matcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Monesha-B/nexus-job-platform/internal/apperror"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noRetry = &RetryConfig{MaxRetries: 0, InitialWait: time.Millisecond, MaxWait: time.Millisecond, Multiplier: 1}

// fakeCompletions serves a chat completions endpoint that answers with content.
func fakeCompletions(t *testing.T, calls *atomic.Int32, status int, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":"nope"}`))
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"content": content}}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAdvisor(url string, timeout time.Duration) *OpenAIAdvisor {
	return NewOpenAIAdvisor(OpenAIConfig{
		APIKey:            "sk-test",
		BaseURL:           url,
		Model:             "test-model",
		Timeout:           timeout,
		RequestsPerSecond: 100,
		Retry:             noRetry,
	})
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, stripFences("  {\"a\":1}  "))
}

func TestParseMatchResultCoerces(t *testing.T) {
	res, err := parseMatchResult("```json\n" + `{
		"match_score": 140,
		"overall_fit": "stellar",
		"summary": "  strong  ",
		"skills_match": [
			{"skill": "go", "status": "match", "importance": "required"},
			{"skill": "sql", "status": "kinda", "importance": "whatever"},
			{"skill": " ", "status": "match"}
		]
	}` + "\n```")
	require.NoError(t, err)

	assert.Equal(t, 100, res.MatchScore)
	assert.Equal(t, model.FitExcellent, res.OverallFit)
	assert.Equal(t, "strong", res.Summary)
	assert.NotNil(t, res.Strengths)
	assert.NotNil(t, res.Gaps)
	assert.NotNil(t, res.Recommendations)
	require.Len(t, res.SkillsMatch, 2)
	assert.Equal(t, model.SkillStatusPartial, res.SkillsMatch[1].Status)
	assert.Equal(t, model.SkillPreferred, res.SkillsMatch[1].Importance)

	res, err = parseMatchResult(`{"match_score": -3, "overall_fit": "good"}`)
	require.NoError(t, err)
	assert.Equal(t, 0, res.MatchScore)
	assert.Equal(t, model.FitGood, res.OverallFit)

	_, err = parseMatchResult("I think this candidate is great!")
	assert.Error(t, err)
}

func TestParseMatchResultRequiresScore(t *testing.T) {
	for _, raw := range []string{`{}`, `{"summary":"ok","overall_fit":"good"}`, `{"match_score": null}`} {
		_, err := parseMatchResult(raw)
		assert.ErrorIs(t, err, errMissingScore, raw)
	}
}

func TestParseMatchResultRoundsFractionalScore(t *testing.T) {
	res, err := parseMatchResult(`{"match_score": 72.5, "summary": "close"}`)
	require.NoError(t, err)
	assert.Equal(t, 73, res.MatchScore)
	assert.Equal(t, model.FitGood, res.OverallFit)

	res, err = parseMatchResult(`{"match_score": 84.4}`)
	require.NoError(t, err)
	assert.Equal(t, 84, res.MatchScore)
	assert.Equal(t, model.FitGood, res.OverallFit)
}

func TestOpenAIScoreWithoutScoreIsDegraded(t *testing.T) {
	var calls atomic.Int32
	srv := fakeCompletions(t, &calls, http.StatusOK, `{"summary": "looks fine"}`)
	adv := newTestAdvisor(srv.URL, time.Second)

	_, err := adv.Score(context.Background(), ScoreRequest{ResumeText: "r", JobDescription: "j"})
	assert.True(t, errors.Is(err, apperror.ErrMatchServiceUnavailable))

	res, degraded := ScoreWithFallback(context.Background(), adv, ScoreRequest{ResumeText: "r", JobDescription: "j"})
	assert.True(t, degraded)
	assert.Equal(t, DefaultResult(), res)
}

func TestParseQuestionsAcceptsWrappedArray(t *testing.T) {
	qs, err := parseQuestions(`{"questions":[{"question":"Why Go?","category":"technical"}]}`)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "Why Go?", qs[0].Question)

	_, err = parseQuestions(`[]`)
	assert.Error(t, err)
}

func TestOpenAIScore(t *testing.T) {
	var calls atomic.Int32
	srv := fakeCompletions(t, &calls, http.StatusOK,
		"```json\n{\"match_score\": 82, \"overall_fit\": \"good\", \"summary\": \"Solid match\", \"strengths\": [\"Go\"]}\n```")

	adv := newTestAdvisor(srv.URL, time.Second)
	res, err := adv.Score(context.Background(), ScoreRequest{ResumeText: "Go dev", JobDescription: "Go role", JobTitle: "Backend"})
	require.NoError(t, err)

	assert.Equal(t, 82, res.MatchScore)
	assert.Equal(t, model.FitGood, res.OverallFit)
	assert.Equal(t, []string{"Go"}, res.Strengths)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "test-model", adv.Name())
}

func TestOpenAIScoreMalformedFallsBackToDefault(t *testing.T) {
	var calls atomic.Int32
	srv := fakeCompletions(t, &calls, http.StatusOK, "Sure! The candidate looks like a great fit.")
	adv := newTestAdvisor(srv.URL, time.Second)

	_, err := adv.Score(context.Background(), ScoreRequest{ResumeText: "r", JobDescription: "j"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrMatchServiceUnavailable))

	res, degraded := ScoreWithFallback(context.Background(), adv, ScoreRequest{ResumeText: "r", JobDescription: "j"})
	assert.True(t, degraded)
	assert.Equal(t, DefaultResult(), res)
	assert.Equal(t, 50, res.MatchScore)
	assert.Equal(t, model.FitModerate, res.OverallFit)
}

func TestOpenAITimeoutIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)
	adv := newTestAdvisor(srv.URL, 100*time.Millisecond)

	_, err := adv.CoverLetter(context.Background(), CoverLetterRequest{JobTitle: "Backend", Company: "Acme"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindMatchServiceUnavailable, apperror.KindOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	res, degraded := ScoreWithFallback(context.Background(), adv, ScoreRequest{ResumeText: "r", JobDescription: "j"})
	assert.True(t, degraded)
	assert.Equal(t, 50, res.MatchScore)
}

func TestOpenAIRetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Dear Hiring Manager"}}]}`))
	}))
	t.Cleanup(srv.Close)

	adv := NewOpenAIAdvisor(OpenAIConfig{
		APIKey: "sk-test", BaseURL: srv.URL, Timeout: time.Second, RequestsPerSecond: 100,
		Retry: &RetryConfig{MaxRetries: 2, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond, Multiplier: 2},
	})
	letter, err := adv.CoverLetter(context.Background(), CoverLetterRequest{JobTitle: "Backend", Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Dear Hiring Manager", letter)
	assert.Equal(t, int32(2), calls.Load())
}

func TestOpenAIClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := fakeCompletions(t, &calls, http.StatusBadRequest, "")

	adv := NewOpenAIAdvisor(OpenAIConfig{
		APIKey: "sk-test", BaseURL: srv.URL, Timeout: time.Second, RequestsPerSecond: 100,
		Retry: &RetryConfig{MaxRetries: 3, InitialWait: time.Millisecond, MaxWait: time.Millisecond, Multiplier: 1},
	})
	_, err := adv.Chat(context.Background(), ChatRequest{Messages: []ChatMessage{{Role: "user", Content: "hi"}}})
	require.Error(t, err)
	assert.Equal(t, apperror.KindMatchServiceUnavailable, apperror.KindOf(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestOpenAIBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	srv := fakeCompletions(t, &calls, http.StatusBadRequest, "")
	adv := newTestAdvisor(srv.URL, time.Second)

	for i := 0; i < 5; i++ {
		_, err := adv.InterviewQuestions(context.Background(), QuestionsRequest{JobDescription: "j"})
		require.Error(t, err)
	}
	_, err := adv.InterviewQuestions(context.Background(), QuestionsRequest{JobDescription: "j"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temporarily unavailable")
	assert.Equal(t, int32(5), calls.Load())
}

func TestExtractKeywordsKeepsTechTokens(t *testing.T) {
	kw := extractKeywords("Experienced in C++, C#, Node.js and the Go toolchain. Go.")
	assert.True(t, kw["c++"])
	assert.True(t, kw["node.js"])
	assert.True(t, kw["toolchain"])
	assert.False(t, kw["and"])
	assert.False(t, kw["go"], "tokens shorter than three runes are dropped")
}

func TestKeywordAdvisorScore(t *testing.T) {
	adv := NewKeywordAdvisor()
	req := ScoreRequest{
		ResumeText:     "Backend engineer with 6 years of golang, postgresql and kubernetes",
		JobDescription: "We need golang and postgresql skills, plus terraform. 5+ years required.",
		JobTitle:       "Backend Engineer",
	}

	first, err := adv.Score(context.Background(), req)
	require.NoError(t, err)
	second, err := adv.Score(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second, "keyword scoring is deterministic")
	assert.GreaterOrEqual(t, first.MatchScore, 0)
	assert.LessOrEqual(t, first.MatchScore, 100)
	assert.Equal(t, model.FitForScore(first.MatchScore), first.OverallFit)
	assert.Contains(t, first.Strengths, "golang")
	assert.Contains(t, first.Gaps, "terraform")
	require.NotNil(t, first.ExperienceMatch)
	assert.Equal(t, 5.0, first.ExperienceMatch.YearsRequired)
	assert.Equal(t, 6.0, first.ExperienceMatch.YearsActual)
}

func TestKeywordAdvisorCoverLetterAndQuestions(t *testing.T) {
	adv := NewKeywordAdvisor()

	letter, err := adv.CoverLetter(context.Background(), CoverLetterRequest{
		ResumeText: "golang postgresql", JobDescription: "golang", JobTitle: "Backend Engineer", Company: "Acme", CandidateName: "Alice Smith",
	})
	require.NoError(t, err)
	assert.Contains(t, letter, "Backend Engineer position at Acme")
	assert.Contains(t, letter, "golang")
	assert.Contains(t, letter, "Alice Smith")

	_, err = adv.CoverLetter(context.Background(), CoverLetterRequest{})
	assert.Equal(t, apperror.KindMatchServiceUnavailable, apperror.KindOf(err))

	qs, err := adv.InterviewQuestions(context.Background(), QuestionsRequest{ResumeText: "golang", JobDescription: "golang"})
	require.NoError(t, err)
	assert.Len(t, qs, 4)
}

func TestKeywordAdvisorParseResume(t *testing.T) {
	parsed, err := NewKeywordAdvisor().ParseResume(context.Background(),
		"Alice Smith, backend engineer\nSkills: Go, PostgreSQL , Kubernetes\n7 years building APIs")
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith, backend engineer", parsed.Summary)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Kubernetes"}, parsed.Skills)
	assert.Equal(t, 7.0, parsed.TotalExperienceYears)
}

type countingAdvisor struct {
	KeywordAdvisor
	calls atomic.Int32
	fail  bool
}

func (c *countingAdvisor) Score(ctx context.Context, req ScoreRequest) (model.MatchResult, error) {
	c.calls.Add(1)
	if c.fail {
		return model.MatchResult{}, apperror.New(apperror.KindMatchServiceUnavailable, "down")
	}
	return c.KeywordAdvisor.Score(ctx, req)
}

func TestCachedAdvisorMemoizesSuccess(t *testing.T) {
	inner := &countingAdvisor{}
	adv := NewCachedAdvisor(inner, nil, time.Minute)
	req := ScoreRequest{ResumeText: "golang", JobDescription: "golang role"}

	first, err := adv.Score(context.Background(), req)
	require.NoError(t, err)
	second, err := adv.Score(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), inner.calls.Load())

	_, err = adv.Score(context.Background(), ScoreRequest{ResumeText: "python", JobDescription: "golang role"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCachedAdvisorDoesNotCacheFailures(t *testing.T) {
	inner := &countingAdvisor{fail: true}
	adv := NewCachedAdvisor(inner, nil, time.Minute)
	req := ScoreRequest{ResumeText: "r", JobDescription: "j"}

	_, err := adv.Score(context.Background(), req)
	require.Error(t, err)
	_, err = adv.Score(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, int32(2), inner.calls.Load())

	res, degraded := ScoreWithFallback(context.Background(), adv, req)
	assert.True(t, degraded)
	assert.Equal(t, DefaultResult(), res)
}

func TestCachedAdvisorBoundsMemory(t *testing.T) {
	inner := &countingAdvisor{}
	adv := NewCachedAdvisor(inner, nil, time.Minute)
	adv.maxL1 = 2

	reqs := []ScoreRequest{
		{ResumeText: "go", JobDescription: "one"},
		{ResumeText: "go", JobDescription: "two"},
		{ResumeText: "go", JobDescription: "three"},
	}
	for _, req := range reqs {
		_, err := adv.Score(context.Background(), req)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}
	assert.Len(t, adv.l1, 2)

	// The oldest entry made room for the third.
	_, err := adv.Score(context.Background(), reqs[2])
	require.NoError(t, err)
	assert.Equal(t, int32(3), inner.calls.Load())
	_, err = adv.Score(context.Background(), reqs[0])
	require.NoError(t, err)
	assert.Equal(t, int32(4), inner.calls.Load())
	assert.Len(t, adv.l1, 2)
}

func TestCachedAdvisorPrunesExpiredEntries(t *testing.T) {
	adv := NewCachedAdvisor(&countingAdvisor{}, nil, time.Minute)
	adv.maxL1 = 3
	now := time.Now()

	adv.store("a", []byte(`{}`), now.Add(-2*time.Minute))
	adv.store("b", []byte(`{}`), now.Add(-2*time.Minute))
	adv.store("c", []byte(`{}`), now)
	adv.store("d", []byte(`{}`), now)

	assert.Len(t, adv.l1, 2)
	assert.Contains(t, adv.l1, "c")
	assert.Contains(t, adv.l1, "d")

	_, ok := adv.load("c", now.Add(2*time.Minute))
	assert.False(t, ok)
	assert.NotContains(t, adv.l1, "c")
}

func TestTransientErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"throttled", &statusError{code: http.StatusTooManyRequests}, true},
		{"wrapped server error", fmt.Errorf("send: %w", &statusError{code: http.StatusBadGateway}), true},
		{"connection refused", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, true},
		{"breaker open", gobreaker.ErrOpenState, false},
		{"breaker half open", fmt.Errorf("execute: %w", gobreaker.ErrTooManyRequests), false},
		{"deadline", context.DeadlineExceeded, false},
		{"cancelled", context.Canceled, false},
		{"client error", errors.New("advisor API error (status 400)"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transient(tt.err))
		})
	}
}

func TestRetryWait(t *testing.T) {
	rc := RetryConfig{InitialWait: 10 * time.Millisecond, MaxWait: 2 * time.Second, Multiplier: 2}
	plain := errors.New("x")

	assert.Equal(t, 10*time.Millisecond, rc.wait(0, plain))
	assert.Equal(t, 40*time.Millisecond, rc.wait(2, plain))
	assert.Equal(t, 2*time.Second, rc.wait(20, plain))
	assert.Equal(t, time.Second, rc.wait(0, &statusError{code: http.StatusTooManyRequests, retryAfter: time.Second}))
	assert.Equal(t, 2*time.Second, rc.wait(0, &statusError{code: http.StatusTooManyRequests, retryAfter: time.Minute}))
}

func TestNewStatusErrorReadsRetryAfter(t *testing.T) {
	resp := &http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{"Retry-After": []string{"3"}}}
	assert.Equal(t, 3*time.Second, newStatusError(resp).retryAfter)

	resp.Header.Set("Retry-After", "Wed, 21 Oct 2026 07:28:00 GMT")
	assert.Zero(t, newStatusError(resp).retryAfter)
}

func TestOpenAIStopsRetryingOnceBreakerOpens(t *testing.T) {
	var calls atomic.Int32
	srv := fakeCompletions(t, &calls, http.StatusServiceUnavailable, "")

	adv := NewOpenAIAdvisor(OpenAIConfig{
		APIKey: "sk-test", BaseURL: srv.URL, Timeout: 5 * time.Second, RequestsPerSecond: 1000,
		Retry: &RetryConfig{MaxRetries: 10, InitialWait: time.Millisecond, MaxWait: time.Millisecond, Multiplier: 1},
	})
	_, err := adv.Chat(context.Background(), ChatRequest{Messages: []ChatMessage{{Role: "user", Content: "hi"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temporarily unavailable")
	assert.Equal(t, int32(5), calls.Load())
}
