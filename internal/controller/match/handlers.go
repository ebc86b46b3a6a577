package match

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Monesha-B/nexus-job-platform/internal/apperror"
	"github.com/Monesha-B/nexus-job-platform/internal/matcher"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
	"github.com/Monesha-B/nexus-job-platform/internal/utilities"
)

// MatchRequest is the body of a match request.
type MatchRequest struct {
	ResumeSource
	JobSource
}

// MatchResponse is a stored match with its result flattened.
type MatchResponse struct {
	MatchID uuid.UUID `json:"match_id"`
	model.MatchResult
	Degraded         bool  `json:"degraded"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

// CoverLetterBody is the body of a cover letter request.
type CoverLetterBody struct {
	ResumeSource
	JobSource
	MatchID    string `json:"match_id"`
	Tone       string `json:"tone" binding:"omitempty,oneof=professional friendly enthusiastic confident humble"`
	Highlights string `json:"highlights"`
}

// CoverLetterResponse carries a generated cover letter.
type CoverLetterResponse struct {
	CoverLetter string `json:"cover_letter"`
}

// QuestionsBody is the body of an interview questions request.
type QuestionsBody struct {
	ResumeSource
	JobSource
	MatchID string `json:"match_id"`
}

// QuestionsResponse carries generated interview questions.
type QuestionsResponse struct {
	Questions []model.InterviewQuestion `json:"questions"`
}

// SkillsGapBody is the body of a skills gap request.
type SkillsGapBody struct {
	ResumeSource
	TargetRole     string `json:"target_role" binding:"required"`
	JobDescription string `json:"job_description"`
}

// ChatBody is the body of a chat request.
type ChatBody struct {
	Messages      []matcher.ChatMessage `json:"messages" binding:"required,min=1,max=50,dive"`
	ResumeSummary string                `json:"resume_summary"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Message string `json:"message"`
	Role    string `json:"role"`
}

// MatchListResponse lists stored matches.
type MatchListResponse struct {
	Matches []model.Match `json:"matches"`
	Count   int           `json:"count"`
}

// MatchHandler scores a resume against a job and stores the result.
// @Summary Match resume with job
// @Description The job comes from job_id or job_description; the resume from resume_text, resume_id or the primary resume. When the advisor is unavailable a neutral default result is returned with degraded set.
// @Tags AI
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param Match body MatchRequest true "Resume and job"
// @Success 200 {object} MatchResponse "Match result"
// @Failure 400 {object} utilities.ErrorResponse "Missing job description or resume"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job or resume not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /ai/match [post]
func (mc *MatchController) MatchHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	m, err := mc.Score(c.Request.Context(), user.ID, req.ResumeSource, req.JobSource)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MatchResponse{
		MatchID:          m.ID,
		MatchResult:      m.Result.Data(),
		Degraded:         m.Degraded,
		ProcessingTimeMs: m.ProcessingTimeMs,
	})
}

// CoverLetterHandler generates a cover letter.
// @Summary Generate cover letter
// @Description With match_id the stored match supplies the resume and job and receives the letter.
// @Tags AI
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param CoverLetter body CoverLetterBody true "Resume, job and style"
// @Success 200 {object} CoverLetterResponse "Cover letter"
// @Failure 400 {object} utilities.ErrorResponse "Missing job details or resume"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Match, job or resume not found"
// @Failure 503 {object} utilities.ErrorResponse "Match service unavailable"
// @Router /ai/cover-letter [post]
func (mc *MatchController) CoverLetterHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req CoverLetterBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}
	ctx := c.Request.Context()

	in, err := mc.resolveInput(ctx, user, req.MatchID, req.ResumeSource, req.JobSource)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	if in.job.Description == "" || in.job.Title == "" || in.job.Company == "" {
		utilities.RespondError(c, apperror.Validation("Job description, title, and company are required"))
		return
	}

	letter, err := mc.Advisor.CoverLetter(ctx, matcher.CoverLetterRequest{
		ResumeText:     in.resumeText,
		JobDescription: in.job.Description,
		JobTitle:       in.job.Title,
		Company:        in.job.Company,
		CandidateName:  user.FullName(),
		Tone:           req.Tone,
		Highlights:     strings.TrimSpace(req.Highlights),
	})
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	if in.match != nil {
		if err := mc.updateResult(ctx, in.match.ID, func(r *model.MatchResult) { r.CoverLetter = letter }); err != nil {
			utilities.RespondError(c, apperror.FromDB(err, "Match not found"))
			return
		}
	}

	c.JSON(http.StatusOK, CoverLetterResponse{CoverLetter: letter})
}

// InterviewQuestionsHandler generates likely interview questions.
// @Summary Generate interview questions
// @Tags AI
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param Questions body QuestionsBody true "Resume and job"
// @Success 200 {object} QuestionsResponse "Questions"
// @Failure 400 {object} utilities.ErrorResponse "Missing job description or resume"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Match, job or resume not found"
// @Failure 503 {object} utilities.ErrorResponse "Match service unavailable"
// @Router /ai/interview-questions [post]
func (mc *MatchController) InterviewQuestionsHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req QuestionsBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}
	ctx := c.Request.Context()

	in, err := mc.resolveInput(ctx, user, req.MatchID, req.ResumeSource, req.JobSource)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	if in.job.Description == "" {
		utilities.RespondError(c, apperror.Validation("Job description is required"))
		return
	}

	questions, err := mc.Advisor.InterviewQuestions(ctx, matcher.QuestionsRequest{
		ResumeText:     in.resumeText,
		JobDescription: in.job.Description,
		JobTitle:       in.job.Title,
	})
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	if in.match != nil {
		if err := mc.updateResult(ctx, in.match.ID, func(r *model.MatchResult) { r.InterviewQuestions = questions }); err != nil {
			utilities.RespondError(c, apperror.FromDB(err, "Match not found"))
			return
		}
	}

	c.JSON(http.StatusOK, QuestionsResponse{Questions: questions})
}

// SkillsGapHandler compares the caller's resume with a target role.
// @Summary Analyze skills gap
// @Tags AI
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param SkillsGap body SkillsGapBody true "Target role"
// @Success 200 {object} matcher.SkillsGapResult "Analysis"
// @Failure 400 {object} utilities.ErrorResponse "Missing target role or resume"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Resume not found"
// @Failure 503 {object} utilities.ErrorResponse "Match service unavailable"
// @Router /ai/skills-gap [post]
func (mc *MatchController) SkillsGapHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req SkillsGapBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}
	ctx := c.Request.Context()

	text, _, err := mc.resolveResume(ctx, user.ID, req.ResumeSource)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	res, err := mc.Advisor.SkillsGap(ctx, matcher.SkillsGapRequest{
		ResumeText:     text,
		TargetRole:     strings.TrimSpace(req.TargetRole),
		JobDescription: strings.TrimSpace(req.JobDescription),
	})
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ChatHandler answers a career question.
// @Summary Chat with the career assistant
// @Description Without resume_summary, the summary of the caller's parsed primary resume is used.
// @Tags AI
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param Chat body ChatBody true "Conversation"
// @Success 200 {object} ChatResponse "Reply"
// @Failure 400 {object} utilities.ErrorResponse "Invalid messages"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 503 {object} utilities.ErrorResponse "Match service unavailable"
// @Router /ai/chat [post]
func (mc *MatchController) ChatHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req ChatBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}
	ctx := c.Request.Context()

	summary := strings.TrimSpace(req.ResumeSummary)
	if summary == "" {
		var primary model.Resume
		err := mc.DB.WithContext(ctx).Select("id", "parsed_data").
			Where("user_id = ? AND is_primary = ? AND is_active = ?", user.ID, true, true).
			Limit(1).Find(&primary).Error
		if err == nil && primary.ParsedData.Data() != nil {
			summary = primary.ParsedData.Data().Summary
		}
	}

	reply, err := mc.Advisor.Chat(ctx, matcher.ChatRequest{Messages: req.Messages, ResumeSummary: summary})
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ChatResponse{Message: reply, Role: "assistant"})
}

// ListMatchesHandler lists the caller's stored matches, newest first.
// @Summary List my matches
// @Tags AI
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param limit query int false "Maximum number of matches, default 10"
// @Param saved query boolean false "Only saved matches"
// @Success 200 {object} MatchListResponse "Matches"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /ai/matches [get]
func (mc *MatchController) ListMatchesHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > utilities.MaxPageSize {
		limit = utilities.MaxPageSize
	}

	query := mc.DB.Where("user_id = ?", user.ID)
	if c.Query("saved") == "true" {
		query = query.Where("is_saved = ?", true)
	}
	matches := []model.Match{}
	if err := query.Order("created_at DESC").Limit(limit).Find(&matches).Error; err != nil {
		utilities.RespondError(c, apperror.Internal("Failed to fetch matches", err))
		return
	}

	c.JSON(http.StatusOK, MatchListResponse{Matches: matches, Count: len(matches)})
}

// GetMatchHandler returns one of the caller's matches.
// @Summary Get match by ID
// @Tags AI
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param id path string true "Match ID"
// @Success 200 {object} model.Match "Match"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Match not found"
// @Router /ai/matches/{id} [get]
func (mc *MatchController) GetMatchHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := mc.ownedMatch(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// ToggleSaveHandler flips the saved flag of a match.
// @Summary Save or unsave a match
// @Tags AI
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param id path string true "Match ID"
// @Success 200 {object} model.Match "Match after toggle"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Match not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /ai/matches/{id}/save [put]
func (mc *MatchController) ToggleSaveHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	ctx := c.Request.Context()

	m, err := mc.ownedMatch(ctx, user.ID, c.Param("id"))
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	m.IsSaved = !m.IsSaved
	if err := mc.DB.WithContext(ctx).Model(&m).UpdateColumn("is_saved", m.IsSaved).Error; err != nil {
		utilities.RespondError(c, apperror.Internal("Failed to update match", err))
		return
	}
	c.JSON(http.StatusOK, m)
}

type advisoryInput struct {
	resumeText string
	job        resolvedJob
	match      *model.Match
}

// resolveInput resolves resume and job for the generation endpoints. A
// match_id supplies defaults from the stored match.
func (mc *MatchController) resolveInput(ctx context.Context, user model.User, matchID string, rs ResumeSource, js JobSource) (advisoryInput, error) {
	var in advisoryInput

	if matchID != "" {
		m, err := mc.ownedMatch(ctx, user.ID, matchID)
		if err != nil {
			return advisoryInput{}, err
		}
		in.match = &m
		if rs.ResumeText == "" && rs.ResumeID == "" {
			rs.ResumeText = m.ResumeText
		}
		if js.JobID == "" && js.JobDescription == "" {
			js.JobDescription = m.JobDescription
		}
		if js.JobTitle == "" {
			js.JobTitle = m.JobTitle
		}
		if js.Company == "" {
			js.Company = m.Company
		}
	}

	job, err := mc.resolveJob(ctx, js)
	if err != nil {
		return advisoryInput{}, err
	}
	text, _, err := mc.resolveResume(ctx, user.ID, rs)
	if err != nil {
		return advisoryInput{}, err
	}
	in.job = job
	in.resumeText = text
	return in, nil
}
