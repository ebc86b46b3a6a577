package matcher

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/Monesha-B/nexus-job-platform/internal/apperror"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
)

// KeywordAdvisorName identifies results produced offline.
const KeywordAdvisorName = "keyword-overlap"

// matchStopWords filters common English words that add noise to keyword matching.
var matchStopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"work": true, "team": true, "role": true, "job": true, "join": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "high": true,
	"good": true, "able": true, "get": true, "set": true, "such": true,
	"years": true, "year": true, "experience": true, "including": true,
}

var yearsPattern = regexp.MustCompile(`(\d{1,2})\+?\s*(?:years|yrs)`)

// KeywordAdvisor is a deterministic offline advisor based on keyword overlap
// between the resume and the job text. It never fails.
type KeywordAdvisor struct{}

// NewKeywordAdvisor returns the offline advisor.
func NewKeywordAdvisor() *KeywordAdvisor { return &KeywordAdvisor{} }

// Name implements Advisor.
func (KeywordAdvisor) Name() string { return KeywordAdvisorName }

// extractKeywords tokenizes text into lowercase keywords, skipping stop words.
// Tech suffixes like "c++", "c#" and "node.js" survive because + # . count as word chars.
func extractKeywords(text string) map[string]bool {
	kw := make(map[string]bool)
	var word strings.Builder
	flush := func() {
		w := word.String()
		word.Reset()
		w = strings.TrimRight(w, ".")
		if len([]rune(w)) >= 3 && !matchStopWords[w] {
			kw[w] = true
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return kw
}

// keywordOverlap scores how much of the job vocabulary the resume covers.
//
// Returns:
//   - score: 0-100, share of job keywords present in the resume
//   - matching: keywords present in both, sorted
//   - missing: job keywords absent from the resume, sorted, at most 20
func keywordOverlap(resumeKW map[string]bool, jobText string) (score int, matching, missing []string) {
	jobKW := extractKeywords(jobText)
	for kw := range jobKW {
		if resumeKW[kw] {
			matching = append(matching, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	if len(jobKW) > 0 {
		score = int(float64(len(matching))/float64(len(jobKW))*100 + 0.5)
	}

	sort.Strings(matching)
	sort.Strings(missing)
	if len(missing) > 20 {
		missing = missing[:20]
	}
	return score, matching, missing
}

// Score implements Advisor.
func (KeywordAdvisor) Score(_ context.Context, req ScoreRequest) (model.MatchResult, error) {
	resumeKW := extractKeywords(req.ResumeText)
	jobText := strings.Join([]string{req.JobTitle, req.JobDescription}, "\n")
	score, matching, missing := keywordOverlap(resumeKW, jobText)

	res := model.MatchResult{
		MatchScore:      score,
		OverallFit:      model.FitForScore(score),
		Summary:         fmt.Sprintf("Your resume covers %d%% of the keywords in this posting.", score),
		Strengths:       limit(matching, 8),
		Gaps:            limit(missing, 8),
		SkillsMatch:     make([]model.SkillMatch, 0, len(matching)+len(missing)),
		Recommendations: []string{},
	}
	for _, kw := range limit(matching, 10) {
		res.SkillsMatch = append(res.SkillsMatch, model.SkillMatch{Skill: kw, Status: model.SkillStatusMatch, Importance: model.SkillPreferred})
	}
	for _, kw := range limit(missing, 10) {
		res.SkillsMatch = append(res.SkillsMatch, model.SkillMatch{Skill: kw, Status: model.SkillStatusMissing, Importance: model.SkillPreferred})
	}

	required := yearsIn(req.JobDescription)
	actual := yearsIn(req.ResumeText)
	if required > 0 {
		assessment := "Your experience level meets the requirements."
		if actual < required {
			assessment = "The posting asks for more experience than your resume shows."
		}
		res.ExperienceMatch = &model.ExperienceMatch{YearsRequired: required, YearsActual: actual, Assessment: assessment}
	}

	if len(missing) > 0 {
		res.Recommendations = append(res.Recommendations,
			"Mention "+strings.Join(limit(missing, 3), ", ")+" if you have worked with them.")
	}
	res.Recommendations = append(res.Recommendations, "Tailor your resume to the wording used in the job description.")
	return res, nil
}

// CoverLetter implements Advisor with a fixed template.
func (KeywordAdvisor) CoverLetter(_ context.Context, req CoverLetterRequest) (string, error) {
	if req.JobTitle == "" || req.Company == "" {
		return "", apperror.New(apperror.KindMatchServiceUnavailable, "Cover letter needs a job title and company")
	}
	name := req.CandidateName
	if name == "" {
		name = "[Your Name]"
	}
	_, matching, _ := keywordOverlap(extractKeywords(req.ResumeText), req.JobDescription)
	skills := "the skills this role calls for"
	if len(matching) > 0 {
		skills = "my experience with " + strings.Join(limit(matching, 3), ", ")
	}

	return fmt.Sprintf(`Dear Hiring Manager,

I am writing to express my strong interest in the %[1]s position at %[2]s. I am confident that %[3]s would make me a valuable addition to your team.

Throughout my career I have built expertise that aligns directly with this role. My background has given me the technical depth and problem-solving ability needed to succeed in this position.

What particularly excites me about %[2]s is the chance to contribute to its work while continuing to grow professionally.

I would welcome the opportunity to discuss how my background would benefit your organization. Thank you for considering my application.

Sincerely,
%[4]s`, req.JobTitle, req.Company, skills, name), nil
}

// InterviewQuestions implements Advisor with general questions plus one per
// matching keyword.
func (KeywordAdvisor) InterviewQuestions(_ context.Context, req QuestionsRequest) ([]model.InterviewQuestion, error) {
	qs := []model.InterviewQuestion{
		{Question: "Tell me about yourself.", Category: "behavioral", SuggestedAnswer: "Focus on experience relevant to this role.", Tip: "Keep it under two minutes."},
		{Question: "Why do you want this position?", Category: "behavioral", SuggestedAnswer: "Connect your goals with the company's work.", Tip: "Research the company first."},
		{Question: "Describe a challenging project you delivered.", Category: "experience", SuggestedAnswer: "Use the STAR method.", Tip: "Quantify the outcome."},
	}
	_, matching, _ := keywordOverlap(extractKeywords(req.ResumeText), req.JobDescription)
	for _, kw := range limit(matching, 3) {
		qs = append(qs, model.InterviewQuestion{
			Question:        fmt.Sprintf("How have you used %s in past work?", kw),
			Category:        "technical",
			SuggestedAnswer: "Describe a concrete problem and how you solved it.",
			Tip:             "Be specific about your own contribution.",
		})
	}
	return qs, nil
}

// SkillsGap implements Advisor by comparing keyword sets.
func (KeywordAdvisor) SkillsGap(_ context.Context, req SkillsGapRequest) (SkillsGapResult, error) {
	resumeKW := extractKeywords(req.ResumeText)
	target := strings.Join([]string{req.TargetRole, req.JobDescription}, "\n")
	score, matching, missing := keywordOverlap(resumeKW, target)

	current := make([]string, 0, len(resumeKW))
	for kw := range resumeKW {
		current = append(current, kw)
	}
	sort.Strings(current)

	required := append(append([]string{}, matching...), missing...)
	sort.Strings(required)

	return SkillsGapResult{
		CurrentSkills:    limit(current, 20),
		RequiredSkills:   required,
		MatchingSkills:   nonNil(matching),
		MissingSkills:    nonNil(missing),
		OverallReadiness: score,
	}, nil
}

// ParseResume implements Advisor with simple heuristics: the first line is
// the summary and a "Skills:" line lists skills.
func (KeywordAdvisor) ParseResume(_ context.Context, text string) (*model.ParsedResume, error) {
	res := &model.ParsedResume{Skills: []string{}}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if res.Summary == "" {
			res.Summary = line
		}
		if lower := strings.ToLower(line); strings.HasPrefix(lower, "skills:") {
			for _, s := range strings.Split(line[len("skills:"):], ",") {
				if s = strings.TrimSpace(s); s != "" {
					res.Skills = append(res.Skills, s)
				}
			}
		}
	}
	res.TotalExperienceYears = yearsIn(text)
	return res, nil
}

// Chat implements Advisor with a fixed reply.
func (KeywordAdvisor) Chat(_ context.Context, _ ChatRequest) (string, error) {
	return "I'm here to help with career questions. Try the AI Match page to compare your resume with a job.", nil
}

func yearsIn(text string) float64 {
	best := 0
	for _, m := range yearsPattern.FindAllStringSubmatch(strings.ToLower(text), -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > best {
			best = n
		}
	}
	return float64(best)
}

func limit(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	if s == nil {
		return []string{}
	}
	return s
}
