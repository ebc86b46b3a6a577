package matcher

import (
	"fmt"
	"strings"
)

const scoreSystemPrompt = "You are an expert career counselor. You must respond only with valid JSON."

const scorePrompt = `Analyze the compatibility between this resume and job.

RESUME:
%s

JOB:
%s
%s

Respond with valid JSON only (no markdown):
{
  "match_score": <0-100>,
  "overall_fit": "<excellent|good|moderate|low>",
  "summary": "<2-3 sentence assessment>",
  "strengths": ["<strength>"],
  "gaps": ["<gap>"],
  "skills_match": [{"skill": "<name>", "status": "<match|partial|missing>", "importance": "<required|preferred|nice-to-have>"}],
  "experience_match": {"years_required": <num>, "years_actual": <num>, "assessment": "<text>"},
  "education_match": {"required": "<text>", "actual": "<text>", "assessment": "<text>"},
  "recommendations": ["<recommendation>"]
}`

const coverLetterSystemPrompt = "You are an expert career coach and professional writer who creates compelling, personalized cover letters."

const coverLetterPrompt = `Write a cover letter of about 300-400 words.

POSITION: %s at %s
JOB DESCRIPTION:
%s

CANDIDATE: %s
RESUME:
%s

TONE: %s
%s
Open with the specific role and company, connect the candidate's experience to the requirements and close with a call to action.
Write only the letter text, no explanations or markdown. Do not use placeholders such as [Your Name].`

const questionsPrompt = `Generate 10 interview questions for this candidate and role.
Job: %s
%s

Resume:
%s

Respond with a JSON array only:
[{"question": "<text>", "category": "<behavioral|technical|situational|experience>", "suggested_answer": "<answer>", "tip": "<advice>"}]`

const skillsGapPrompt = `Analyze the skills gap for the role "%s".
%s
Profile:
%s

Respond with JSON only:
{"current_skills": [], "required_skills": [], "matching_skills": [], "missing_skills": [], "overall_readiness": <0-100>}`

const parseResumePrompt = `Extract structured data from this resume. Respond with JSON only:
{"summary": "", "contact_info": {"email": "", "phone": "", "location": "", "linkedin": ""}, "skills": [], "experience": [{"title": "", "company": "", "start_date": "", "end_date": "", "description": ""}], "education": [{"degree": "", "institution": "", "year": ""}], "certifications": [], "projects": [], "languages": [], "total_experience_years": 0}

Resume:
%s`

const chatSystemPrompt = `You are the NEXUS assistant, a career guidance helper for a job matching platform.
Keep answers to two or three sentences unless asked for more. Be encouraging.
Do not write cover letters or resumes here; point users to the AI Match, cover letter and profile features instead.`

var toneDescriptions = map[string]string{
	"professional": "professional, formal, and business-appropriate",
	"friendly":     "friendly, warm, and approachable while remaining professional",
	"enthusiastic": "enthusiastic, energetic, and passionate about the opportunity",
	"confident":    "confident, bold, and assertive about qualifications",
	"humble":       "humble, eager to learn, and appreciative of the opportunity",
}

// toneDescription returns the prompt wording for tone, defaulting to professional.
func toneDescription(tone string) string {
	if d, ok := toneDescriptions[strings.ToLower(tone)]; ok {
		return d
	}
	return toneDescriptions["professional"]
}

func jobHeader(title, company string) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "Title: %s\n", title)
	}
	if company != "" {
		fmt.Fprintf(&b, "Company: %s\n", company)
	}
	return strings.TrimRight(b.String(), "\n")
}
