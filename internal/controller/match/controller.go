// Package match provides the match advisory endpoints: scoring a resume
// against a job, cover letters, interview questions, skills gaps and chat.
package match

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Monesha-B/nexus-job-platform/internal/apperror"
	"github.com/Monesha-B/nexus-job-platform/internal/database"
	"github.com/Monesha-B/nexus-job-platform/internal/matcher"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
)

// MaxStoredTextLength caps resume and job text persisted on a match.
const MaxStoredTextLength = 10000

// MatchController handles match advisory endpoints
type MatchController struct {
	DB      *database.DBinstanceStruct
	Advisor matcher.Advisor
}

// NewMatchController creates a new instance of MatchController
func NewMatchController(db *database.DBinstanceStruct, advisor matcher.Advisor) *MatchController {
	return &MatchController{
		DB:      db,
		Advisor: advisor,
	}
}

// ResumeSource selects the resume text of an advisory request. Text wins
// over ResumeID, which wins over the caller's primary resume.
type ResumeSource struct {
	ResumeText string `json:"resume_text"`
	ResumeID   string `json:"resume_id"`
}

// JobSource selects the job of an advisory request. A JobID from the
// catalog fills any of the other fields left empty.
type JobSource struct {
	JobID          string `json:"job_id"`
	JobDescription string `json:"job_description"`
	JobTitle       string `json:"job_title"`
	Company        string `json:"company"`
}

type resolvedJob struct {
	ID          *uuid.UUID
	Description string
	Title       string
	Company     string
}

// Score runs the advisor and stores the outcome as a Match owned by userID.
// An unavailable advisor yields the default result with Degraded set.
func (mc *MatchController) Score(ctx context.Context, userID uuid.UUID, rs ResumeSource, js JobSource) (model.Match, error) {
	job, err := mc.resolveJob(ctx, js)
	if err != nil {
		return model.Match{}, err
	}
	if job.Description == "" {
		return model.Match{}, apperror.Validation("Job description is required")
	}
	text, resumeID, err := mc.resolveResume(ctx, userID, rs)
	if err != nil {
		return model.Match{}, err
	}

	start := time.Now()
	result, degraded := matcher.ScoreWithFallback(ctx, mc.Advisor, matcher.ScoreRequest{
		ResumeText:     text,
		JobDescription: job.Description,
		JobTitle:       job.Title,
		Company:        job.Company,
	})

	m := model.Match{
		UserID:           userID,
		ResumeID:         resumeID,
		JobID:            job.ID,
		ResumeText:       truncate(text, MaxStoredTextLength),
		JobDescription:   truncate(job.Description, MaxStoredTextLength),
		JobTitle:         job.Title,
		Company:          job.Company,
		Result:           datatypes.NewJSONType(result),
		ModelUsed:        mc.Advisor.Name(),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Degraded:         degraded,
	}
	if err := mc.DB.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return model.Match{}, apperror.Internal("Failed to save match", err)
	}
	return m, nil
}

// resolveResume returns the resume text for rs and, when it came from a
// stored resume, that resume's id.
func (mc *MatchController) resolveResume(ctx context.Context, userID uuid.UUID, rs ResumeSource) (string, *uuid.UUID, error) {
	if text := strings.TrimSpace(rs.ResumeText); text != "" {
		return text, nil, nil
	}

	query := mc.DB.WithContext(ctx).Select("id", "raw_text").Where("user_id = ? AND is_active = ?", userID, true)
	notFound := "Resume not found"
	if rs.ResumeID != "" {
		id, err := uuid.Parse(rs.ResumeID)
		if err != nil {
			return "", nil, apperror.NotFound(notFound)
		}
		query = query.Where("id = ?", id)
	} else {
		query = query.Where("is_primary = ?", true)
	}

	var resume model.Resume
	err := query.First(&resume).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound) && rs.ResumeID == "":
		return "", nil, apperror.New(apperror.KindResumeRequired, "No resume found. Please upload a resume first.")
	case err != nil:
		return "", nil, apperror.FromDB(err, notFound)
	}
	if strings.TrimSpace(resume.RawText) == "" {
		return "", nil, apperror.New(apperror.KindResumeRequired, "Resume text is not available. Parse the resume first.")
	}
	return resume.RawText, &resume.ID, nil
}

func (mc *MatchController) resolveJob(ctx context.Context, js JobSource) (resolvedJob, error) {
	out := resolvedJob{
		Description: strings.TrimSpace(js.JobDescription),
		Title:       strings.TrimSpace(js.JobTitle),
		Company:     strings.TrimSpace(js.Company),
	}
	if js.JobID == "" {
		return out, nil
	}

	id, err := uuid.Parse(js.JobID)
	if err != nil {
		return resolvedJob{}, apperror.NotFound("Job not found")
	}
	var job model.Job
	if err := mc.DB.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		return resolvedJob{}, apperror.FromDB(err, "Job not found")
	}

	out.ID = &job.ID
	if out.Description == "" {
		out.Description = jobText(job)
	}
	if out.Title == "" {
		out.Title = job.Title
	}
	if out.Company == "" {
		out.Company = job.Company
	}
	return out, nil
}

// jobText renders a catalog job as advisor input.
func jobText(job model.Job) string {
	var sb strings.Builder
	sb.WriteString(job.Description)
	sections := []struct {
		title string
		items []string
	}{
		{"Requirements", job.Requirements},
		{"Responsibilities", job.Responsibilities},
		{"Skills", job.Skills},
	}
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		sb.WriteString("\n\n" + s.title + ":\n- ")
		sb.WriteString(strings.Join(s.items, "\n- "))
	}
	if job.ExperienceLevel != "" {
		sb.WriteString("\n\nExperience level: " + job.ExperienceLevel)
	}
	return sb.String()
}

// ownedMatch loads a match of userID. A match owned by someone else is
// reported as not found.
func (mc *MatchController) ownedMatch(ctx context.Context, userID uuid.UUID, rawID string) (model.Match, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return model.Match{}, apperror.NotFound("Match not found")
	}
	var m model.Match
	if err := mc.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&m).Error; err != nil {
		return model.Match{}, apperror.FromDB(err, "Match not found")
	}
	return m, nil
}

// updateResult applies fn to a stored match result under a row lock.
func (mc *MatchController) updateResult(ctx context.Context, id uuid.UUID, fn func(*model.MatchResult)) error {
	return mc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.Match
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "result").
			Where("id = ?", id).
			First(&m).Error; err != nil {
			return apperror.FromDB(err, "Match not found")
		}
		res := m.Result.Data()
		fn(&res)
		return tx.Model(&m).UpdateColumns(map[string]any{
			"result":     datatypes.NewJSONType(res),
			"updated_at": time.Now(),
		}).Error
	})
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
