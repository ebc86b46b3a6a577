package application

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Monesha-B/nexus-job-platform/internal/apperror"
	"github.com/Monesha-B/nexus-job-platform/internal/matcher"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
	"github.com/Monesha-B/nexus-job-platform/internal/utilities"
)

// SubmitRequest is the body of an application submission.
type SubmitRequest struct {
	JobID       string `json:"job_id" binding:"required"`
	CoverLetter string `json:"cover_letter"`
}

// StatusRequest is the body of a status change.
type StatusRequest struct {
	Status          string `json:"status" binding:"required"`
	Note            string `json:"note"`
	RejectionReason string `json:"rejection_reason"`
}

// WithdrawRequest is the optional body of a withdrawal.
type WithdrawRequest struct {
	Reason string `json:"reason"`
}

// NoteRequest is the body of a reviewer note.
type NoteRequest struct {
	Content string `json:"content" binding:"required"`
}

// InterviewRequest is the body of an interview schedule.
type InterviewRequest struct {
	Date         time.Time `json:"date" binding:"required"`
	Time         string    `json:"time"`
	Location     string    `json:"location"`
	Type         string    `json:"type" binding:"required"`
	Interviewers []string  `json:"interviewers"`
	Notes        string    `json:"notes"`
}

// ApplicationListResponse is one page of applications.
type ApplicationListResponse struct {
	Applications []model.Application  `json:"applications"`
	Pagination   utilities.Pagination `json:"pagination"`
}

// AnalyzeResponse is the outcome of a match analysis.
type AnalyzeResponse struct {
	Application model.Application `json:"application"`
	Analysis    model.MatchResult `json:"analysis"`
	Degraded    bool              `json:"degraded"`
}

// SubmitHandler applies the calling user to a job.
// @Summary Apply to a job
// @Description The applicant's most recently uploaded resume is attached automatically.
// @Tags Applications
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param Application body SubmitRequest true "Job to apply to"
// @Success 201 {object} model.Application "Application created"
// @Failure 400 {object} utilities.ErrorResponse "Invalid body, duplicate application or no resume"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications [post]
func (ac *ApplicationController) SubmitHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		utilities.RespondError(c, apperror.NotFound("Job not found"))
		return
	}

	app, err := ac.Submit(c.Request.Context(), user.ID, jobID, req.CoverLetter)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

// MyApplicationsHandler lists the calling user's applications, newest first.
// @Summary List my applications
// @Tags Applications
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size, default 10"
// @Success 200 {object} ApplicationListResponse "Applications"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/me [get]
func (ac *ApplicationController) MyApplicationsHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	page, limit := utilities.PageParams(c, 10)

	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("applicant_id = ?", user.ID)
		if status := c.Query("status"); status != "" {
			db = db.Where("status = ?", status)
		}
		return db
	}

	var total int64
	if err := ac.DB.Model(&model.Application{}).Scopes(scope).Count(&total).Error; err != nil {
		utilities.RespondError(c, apperror.Internal("Failed to count applications", err))
		return
	}
	apps := []model.Application{}
	err = ac.DB.Scopes(scope, utilities.Paginate(page, limit)).
		Preload("Job", jobSummary).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		utilities.RespondError(c, apperror.Internal("Failed to fetch applications", err))
		return
	}

	c.JSON(http.StatusOK, ApplicationListResponse{Applications: apps, Pagination: utilities.NewPagination(page, limit, total)})
}

// ListHandler lists every application, best match first.
// @Summary List all applications
// @Description Only admins have access to this endpoint. Ordered by match score (unscored last), then newest.
// @Tags Applications
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param status query string false "Filter by status"
// @Param job_id query string false "Filter by job"
// @Param applicant_id query string false "Filter by applicant"
// @Param page query int false "Page number"
// @Param limit query int false "Page size, default 20"
// @Success 200 {object} ApplicationListResponse "Applications"
// @Failure 400 {object} utilities.ErrorResponse "Invalid filter"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications [get]
func (ac *ApplicationController) ListHandler(c *gin.Context) {
	page, limit := utilities.PageParams(c, 20)

	conds := map[string]any{}
	if status := c.Query("status"); status != "" {
		if !model.IsValidApplicationStatus(status) {
			utilities.RespondError(c, apperror.New(apperror.KindInvalidStatus, "Invalid status: "+status))
			return
		}
		conds["status"] = status
	}
	for _, key := range []string{"job_id", "applicant_id"} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			utilities.RespondError(c, apperror.Validation("Invalid "+key))
			return
		}
		conds[key] = id
	}

	filter := func(db *gorm.DB) *gorm.DB {
		if len(conds) == 0 {
			return db
		}
		return db.Where(conds)
	}

	var total int64
	if err := ac.DB.Model(&model.Application{}).Scopes(filter).Count(&total).Error; err != nil {
		utilities.RespondError(c, apperror.Internal("Failed to count applications", err))
		return
	}
	apps := []model.Application{}
	err := ac.DB.Scopes(filter, utilities.Paginate(page, limit)).
		Preload("Job", jobSummary).
		Preload("Applicant", applicantSummary).
		Preload("Resume", resumeSummary).
		Order("match_score DESC NULLS LAST").
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		utilities.RespondError(c, apperror.Internal("Failed to fetch applications", err))
		return
	}

	c.JSON(http.StatusOK, ApplicationListResponse{Applications: apps, Pagination: utilities.NewPagination(page, limit, total)})
}

// GetHandler returns one application to its applicant or an admin.
// @Summary Get application by ID
// @Tags Applications
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param id path string true "Application ID"
// @Success 200 {object} model.Application "Application with status history"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the applicant"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id} [get]
func (ac *ApplicationController) GetHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	id, ok := utilities.ParseUUIDParam(c, "id", "Application not found")
	if !ok {
		return
	}

	app, err := ac.load(c.Request.Context(), id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	if app.ApplicantID != user.ID && !user.IsAdmin() {
		utilities.RespondError(c, apperror.New(apperror.KindNotAuthorized, "Not authorized to view this application"))
		return
	}

	c.JSON(http.StatusOK, app)
}

// UpdateStatusHandler moves an application to a new status.
// @Summary Update application status
// @Description Only admins have access to this endpoint. Every call appends to the status history.
// @Tags Applications
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param id path string true "Application ID"
// @Param Status body StatusRequest true "New status"
// @Success 200 {object} model.Application "Updated application"
// @Failure 400 {object} utilities.ErrorResponse "Invalid status"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id}/status [patch]
func (ac *ApplicationController) UpdateStatusHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	id, ok := utilities.ParseUUIDParam(c, "id", "Application not found")
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	app, err := ac.TransitionStatus(c.Request.Context(), id, strings.TrimSpace(req.Status), user.ID,
		strings.TrimSpace(req.Note), strings.TrimSpace(req.RejectionReason))
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

// WithdrawHandler withdraws an application.
// @Summary Withdraw application
// @Description The applicant or an admin may withdraw. The application is removed and the job's application count decremented.
// @Tags Applications
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param id path string true "Application ID"
// @Param Reason body WithdrawRequest false "Optional reason"
// @Success 200 {object} utilities.MessageResponse "Application withdrawn"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the applicant"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id} [delete]
func (ac *ApplicationController) WithdrawHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	id, ok := utilities.ParseUUIDParam(c, "id", "Application not found")
	if !ok {
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if err := ac.Withdraw(c.Request.Context(), id, user, strings.TrimSpace(req.Reason)); err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Application withdrawn successfully"})
}

// AddNoteHandler attaches a reviewer note.
// @Summary Add note to application
// @Description Only admins have access to this endpoint.
// @Tags Applications
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param id path string true "Application ID"
// @Param Note body NoteRequest true "Note"
// @Success 201 {object} model.ApplicationNote "Note added"
// @Failure 400 {object} utilities.ErrorResponse "Invalid body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id}/notes [post]
func (ac *ApplicationController) AddNoteHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	id, ok := utilities.ParseUUIDParam(c, "id", "Application not found")
	if !ok {
		return
	}

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}
	content := strings.TrimSpace(req.Content)
	switch {
	case content == "":
		utilities.RespondError(c, apperror.Validation("Note content is required"))
		return
	case utf8.RuneCountInString(content) > 2000:
		utilities.RespondError(c, apperror.Validation("Note cannot exceed 2000 characters"))
		return
	}

	note := model.ApplicationNote{
		ApplicationID: id,
		Content:       content,
		AddedBy:       user.ID,
		AddedAt:       time.Now(),
	}
	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").Where("id = ?", id).First(&model.Application{}).Error; err != nil {
			return err
		}
		return tx.Create(&note).Error
	})
	if err != nil {
		utilities.RespondError(c, apperror.FromDB(err, "Application not found"))
		return
	}

	c.JSON(http.StatusCreated, note)
}

// ScheduleInterviewHandler stores an interview schedule on an application.
// @Summary Schedule interview
// @Description Only admins have access to this endpoint. Scheduling does not change the status.
// @Tags Applications
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param id path string true "Application ID"
// @Param Interview body InterviewRequest true "Interview details"
// @Success 200 {object} model.Application "Updated application"
// @Failure 400 {object} utilities.ErrorResponse "Invalid body or interview type"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id}/interview [put]
func (ac *ApplicationController) ScheduleInterviewHandler(c *gin.Context) {
	id, ok := utilities.ParseUUIDParam(c, "id", "Application not found")
	if !ok {
		return
	}

	var req InterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}
	if !utilities.Contains([]string{model.InterviewPhone, model.InterviewVideo, model.InterviewOnsite}, req.Type) {
		utilities.RespondError(c, apperror.Validation("Invalid interview type"))
		return
	}

	schedule := &model.InterviewSchedule{
		Date:         req.Date,
		Time:         strings.TrimSpace(req.Time),
		Location:     strings.TrimSpace(req.Location),
		Type:         req.Type,
		Interviewers: req.Interviewers,
		Notes:        strings.TrimSpace(req.Notes),
	}
	if schedule.Interviewers == nil {
		schedule.Interviewers = []string{}
	}

	res := ac.DB.Model(&model.Application{}).Where("id = ?", id).UpdateColumns(map[string]any{
		"interview_schedule": datatypes.NewJSONType(schedule),
		"updated_at":         time.Now(),
	})
	if res.Error != nil {
		utilities.RespondError(c, apperror.Internal("Failed to schedule interview", res.Error))
		return
	}
	if res.RowsAffected == 0 {
		utilities.RespondError(c, apperror.NotFound("Application not found"))
		return
	}

	app, err := ac.load(c.Request.Context(), id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// AnalyzeHandler scores the application's resume against its job and stores
// the result. An unreachable advisor yields the neutral default result, which
// is returned with degraded set and never stored.
// @Summary Analyze application match
// @Description Only admins have access to this endpoint. A degraded result leaves the stored analysis unchanged.
// @Tags Applications
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param id path string true "Application ID"
// @Success 200 {object} AnalyzeResponse "Stored analysis"
// @Failure 400 {object} utilities.ErrorResponse "Resume has no text"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id}/analyze [post]
func (ac *ApplicationController) AnalyzeHandler(c *gin.Context) {
	id, ok := utilities.ParseUUIDParam(c, "id", "Application not found")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	app, err := ac.load(ctx, id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	if app.Resume == nil || strings.TrimSpace(app.Resume.RawText) == "" {
		utilities.RespondError(c, apperror.New(apperror.KindResumeRequired, "Application resume has no extracted text"))
		return
	}
	if app.Job == nil {
		utilities.RespondError(c, apperror.NotFound("Job not found"))
		return
	}

	// The advisor is called outside any transaction; it may be slow.
	result, degraded := matcher.ScoreWithFallback(ctx, ac.Advisor, matcher.ScoreRequest{
		ResumeText:     app.Resume.RawText,
		JobDescription: app.Job.Description,
		JobTitle:       app.Job.Title,
		Company:        app.Job.Company,
	})

	if degraded {
		c.JSON(http.StatusOK, AnalyzeResponse{Application: app, Analysis: result, Degraded: true})
		return
	}

	score := result.MatchScore
	res := ac.DB.WithContext(ctx).Model(&model.Application{}).Where("id = ?", id).UpdateColumns(map[string]any{
		"match_score": score,
		"ai_analysis": datatypes.NewJSONType(&result),
		"updated_at":  time.Now(),
	})
	if res.Error != nil {
		utilities.RespondError(c, apperror.Internal("Failed to store analysis", res.Error))
		return
	}
	if res.RowsAffected == 0 {
		utilities.RespondError(c, apperror.NotFound("Application not found"))
		return
	}
	app.MatchScore = &score
	app.AIAnalysis = datatypes.NewJSONType(&result)

	c.JSON(http.StatusOK, AnalyzeResponse{Application: app, Analysis: result})
}

// ApplicationStats summarises the ledger.
type ApplicationStats struct {
	Total        int64               `json:"total"`
	ByStatus     []StatusCount       `json:"by_status"`
	AverageScore *float64            `json:"average_match_score"`
	Recent       []model.Application `json:"recent"`
}

// StatusCount is the number of applications in one status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// StatsHandler summarises every application.
// @Summary Application statistics
// @Description Only admins have access to this endpoint.
// @Tags Applications
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Success 200 {object} ApplicationStats "Statistics"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/stats [get]
func (ac *ApplicationController) StatsHandler(c *gin.Context) {
	stats := ApplicationStats{ByStatus: []StatusCount{}, Recent: []model.Application{}}
	err := ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Application{}).Count(&stats.Total).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Application{}).
			Select("status, COUNT(*) AS count").
			Group("status").Order("status").
			Scan(&stats.ByStatus).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Application{}).
			Select("AVG(match_score)").
			Where("match_score IS NOT NULL").
			Scan(&stats.AverageScore).Error; err != nil {
			return err
		}
		return tx.Preload("Job", jobSummary).
			Preload("Applicant", applicantSummary).
			Order("created_at DESC").
			Limit(5).
			Find(&stats.Recent).Error
	})
	if err != nil {
		utilities.RespondError(c, apperror.Internal("Failed to compute application statistics", err))
		return
	}

	c.JSON(http.StatusOK, stats)
}
