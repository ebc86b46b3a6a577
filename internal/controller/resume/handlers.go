package resume

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Monesha-B/nexus-job-platform/internal/apperror"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
	"github.com/Monesha-B/nexus-job-platform/internal/utilities"
)

// ResumeListResponse lists a user's resumes.
type ResumeListResponse struct {
	Resumes []model.Resume `json:"resumes"`
}

// UploadHandler stores an uploaded resume for the calling user.
// @Summary Upload resume
// @Description Accepts .pdf, .docx and .doc files up to 10 MB. At most 5 active resumes per user; the first one becomes primary.
// @Tags Resumes
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param resume formData file true "Upload your resume file"
// @Success 201 {object} model.Resume "Resume uploaded"
// @Failure 400 {object} utilities.ErrorResponse "Unsupported file or too many resumes"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 10 MB"
// @Failure 500 {object} utilities.ErrorResponse "Storage or database error"
// @Router /resumes [post]
func (rc *ResumeController) UploadHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	rawFile, err := c.FormFile("resume")
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
			Error: err.Error(),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Please upload a file: %s", err.Error()),
		})
		return
	}

	f, err := rawFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot open file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot read file"})
		return
	}

	resume, err := rc.Upload(c.Request.Context(), user.ID, rawFile.Filename, data)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resume)
}

// ListHandler lists the calling user's active resumes, primary first then newest.
// @Summary List my resumes
// @Tags Resumes
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Success 200 {object} ResumeListResponse "Resumes"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /resumes [get]
func (rc *ResumeController) ListHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	resumes := []model.Resume{}
	err = rc.DB.Omit("content").
		Where("user_id = ? AND is_active = ?", user.ID, true).
		Order("is_primary DESC").
		Order("created_at DESC").
		Find(&resumes).Error
	if err != nil {
		utilities.RespondError(c, apperror.Internal("Failed to fetch resumes", err))
		return
	}

	c.JSON(http.StatusOK, ResumeListResponse{Resumes: resumes})
}

// PrimaryHandler returns the calling user's primary resume.
// @Summary Get my primary resume
// @Tags Resumes
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Success 200 {object} model.Resume "Primary resume"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "No resume uploaded"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /resumes/primary [get]
func (rc *ResumeController) PrimaryHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	resume, err := rc.Primary(c.Request.Context(), user.ID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume)
}

// GetHandler returns one of the calling user's resumes.
// @Summary Get resume by ID
// @Tags Resumes
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param id path string true "Resume ID"
// @Success 200 {object} model.Resume "Resume"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Resume not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /resumes/{id} [get]
func (rc *ResumeController) GetHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	id, ok := utilities.ParseUUIDParam(c, "id", "Resume not found")
	if !ok {
		return
	}

	var resume model.Resume
	if err := ownedResume(rc.DB.Omit("content"), user.ID, id).First(&resume).Error; err != nil {
		utilities.RespondError(c, apperror.FromDB(err, "Resume not found"))
		return
	}
	c.JSON(http.StatusOK, resume)
}

// FileHandler sends the resume file as an attachment.
// @Summary Download resume file
// @Description Admins may download any resume; job seekers only their own.
// @Tags Resumes
// @Produce octet-stream
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param id path string true "Resume ID"
// @Success 200 {string} binary "Resume file"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Resume not found"
// @Failure 500 {object} utilities.ErrorResponse "Fail to send file content"
// @Router /resumes/{id}/file [get]
func (rc *ResumeController) FileHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	id, ok := utilities.ParseUUIDParam(c, "id", "Resume not found")
	if !ok {
		return
	}

	query := rc.DB.Where("id = ?", id)
	if !user.IsAdmin() {
		query = query.Where("user_id = ?", user.ID)
	}
	var resume model.Resume
	if err := query.First(&resume).Error; err != nil {
		utilities.RespondError(c, apperror.FromDB(err, "Resume not found"))
		return
	}

	rc.writeFileResponse(c, &resume)
}

func (rc *ResumeController) writeFileResponse(c *gin.Context, resume *model.Resume) {
	name := resume.OriginalName
	if name == "" {
		name = resume.FileName
	}
	c.Writer.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Writer.Header().Set("Content-Type", "application/octet-stream")

	if resume.StorageObjectName != nil {
		if rc.Storage == nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: "Cloud storage is disabled while the requested file is stored remotely",
			})
			return
		}
		reader, size, err := rc.Storage.DownloadFile(*resume.StorageObjectName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to download file from storage: %s", err.Error()),
			})
			return
		}
		defer reader.Close()

		if size > 0 {
			c.Writer.Header().Set("Content-Length", fmt.Sprint(size))
		}
		if _, err := io.Copy(c.Writer, reader); err != nil {
			handleWriterError(c)
		}
		return
	}

	c.Writer.Header().Set("Content-Length", fmt.Sprint(len(resume.Content)))
	if _, err := c.Writer.Write(resume.Content); err != nil {
		handleWriterError(c)
	}
}

func handleWriterError(c *gin.Context) {
	if !c.Writer.Written() {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to send file content",
		})
	} else {
		c.Abort()
	}
}

// SetPrimaryHandler makes a resume the calling user's primary resume.
// @Summary Set primary resume
// @Tags Resumes
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param id path string true "Resume ID"
// @Success 200 {object} model.Resume "New primary resume"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Resume not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /resumes/{id}/primary [put]
func (rc *ResumeController) SetPrimaryHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	id, ok := utilities.ParseUUIDParam(c, "id", "Resume not found")
	if !ok {
		return
	}

	resume, err := rc.SetPrimary(c.Request.Context(), user.ID, id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	resume.Content = nil
	c.JSON(http.StatusOK, resume)
}

// DeleteHandler deletes one of the calling user's resumes.
// @Summary Delete resume
// @Description Deleting the primary resume promotes the newest remaining one.
// @Tags Resumes
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param id path string true "Resume ID"
// @Success 200 {object} utilities.MessageResponse "Resume deleted"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Resume not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /resumes/{id} [delete]
func (rc *ResumeController) DeleteHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	id, ok := utilities.ParseUUIDParam(c, "id", "Resume not found")
	if !ok {
		return
	}

	if err := rc.Delete(c.Request.Context(), user.ID, id); err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Resume deleted successfully"})
}

// ParseHandler extracts text and structured data from a resume.
// @Summary Parse resume
// @Description Extraction or advisor failures are reported in parse_error.
// @Tags Resumes
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param id path string true "Resume ID"
// @Success 200 {object} model.Resume "Resume after parsing"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Resume not found"
// @Failure 500 {object} utilities.ErrorResponse "Storage or database error"
// @Router /resumes/{id}/parse [post]
func (rc *ResumeController) ParseHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	id, ok := utilities.ParseUUIDParam(c, "id", "Resume not found")
	if !ok {
		return
	}

	resume, err := rc.Parse(c.Request.Context(), user.ID, id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume)
}
