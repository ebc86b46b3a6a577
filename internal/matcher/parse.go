package matcher

import (
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/Monesha-B/nexus-job-platform/internal/model"
)

var (
	errEmptyResponse = errors.New("empty advisor response")
	errMissingScore  = errors.New("advisor response has no match_score")
)

// stripFences removes markdown code fences around model output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// decodeJSON strips fences and decodes raw into v.
func decodeJSON(raw string, v any) error {
	body := stripFences(raw)
	if body == "" {
		return errEmptyResponse
	}
	return json.Unmarshal([]byte(body), v)
}

// scoredResult shadows MatchScore so a missing or fractional score can be
// told apart from zero.
type scoredResult struct {
	model.MatchResult
	MatchScore *float64 `json:"match_score"`
}

// parseMatchResult decodes and coerces a score response. A response without
// a score is rejected.
func parseMatchResult(raw string) (model.MatchResult, error) {
	var sr scoredResult
	if err := decodeJSON(raw, &sr); err != nil {
		return model.MatchResult{}, err
	}
	if sr.MatchScore == nil {
		return model.MatchResult{}, errMissingScore
	}
	res := sr.MatchResult
	res.MatchScore = int(math.Round(max(0, min(100, *sr.MatchScore))))
	return coerceMatchResult(res), nil
}

// coerceMatchResult clamps the score, repairs the fit band and replaces nil
// lists so the result always has the documented shape.
func coerceMatchResult(res model.MatchResult) model.MatchResult {
	switch {
	case res.MatchScore < 0:
		res.MatchScore = 0
	case res.MatchScore > 100:
		res.MatchScore = 100
	}
	if !model.IsValidFit(res.OverallFit) {
		res.OverallFit = model.FitForScore(res.MatchScore)
	}
	res.Summary = strings.TrimSpace(res.Summary)

	res.Strengths = nonNil(res.Strengths)
	res.Gaps = nonNil(res.Gaps)
	res.Recommendations = nonNil(res.Recommendations)

	skills := make([]model.SkillMatch, 0, len(res.SkillsMatch))
	for _, s := range res.SkillsMatch {
		if strings.TrimSpace(s.Skill) == "" {
			continue
		}
		switch s.Status {
		case model.SkillStatusMatch, model.SkillStatusPartial, model.SkillStatusMissing:
		default:
			s.Status = model.SkillStatusPartial
		}
		switch s.Importance {
		case model.SkillRequired, model.SkillPreferred, model.SkillNiceToHave:
		default:
			s.Importance = model.SkillPreferred
		}
		skills = append(skills, s)
	}
	res.SkillsMatch = skills
	return res
}

func parseQuestions(raw string) ([]model.InterviewQuestion, error) {
	body := stripFences(raw)
	if body == "" {
		return nil, errEmptyResponse
	}

	var qs []model.InterviewQuestion
	if strings.HasPrefix(body, "{") {
		// Some models wrap the array in an object even when asked not to.
		var wrapped struct {
			Questions []model.InterviewQuestion `json:"questions"`
		}
		if err := json.Unmarshal([]byte(body), &wrapped); err != nil {
			return nil, err
		}
		qs = wrapped.Questions
	} else if err := json.Unmarshal([]byte(body), &qs); err != nil {
		return nil, err
	}

	out := make([]model.InterviewQuestion, 0, len(qs))
	for _, q := range qs {
		if strings.TrimSpace(q.Question) != "" {
			out = append(out, q)
		}
	}
	if len(out) == 0 {
		return nil, errEmptyResponse
	}
	return out, nil
}

func parseSkillsGap(raw string) (SkillsGapResult, error) {
	var res SkillsGapResult
	if err := decodeJSON(raw, &res); err != nil {
		return SkillsGapResult{}, err
	}
	res.CurrentSkills = nonNil(res.CurrentSkills)
	res.RequiredSkills = nonNil(res.RequiredSkills)
	res.MatchingSkills = nonNil(res.MatchingSkills)
	res.MissingSkills = nonNil(res.MissingSkills)
	res.OverallReadiness = max(0, min(100, res.OverallReadiness))
	return res, nil
}

func parseResumeData(raw string) (*model.ParsedResume, error) {
	var res model.ParsedResume
	if err := decodeJSON(raw, &res); err != nil {
		return nil, err
	}
	res.Skills = nonNil(res.Skills)
	if res.TotalExperienceYears < 0 {
		res.TotalExperienceYears = 0
	}
	return &res, nil
}

func nonNil(s []string) []string {
	out := make([]string, 0, len(s))
	for _, v := range s {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
