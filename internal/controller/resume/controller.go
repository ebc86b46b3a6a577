// Package resume provides resume upload, storage and primary selection.
package resume

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Monesha-B/nexus-job-platform/internal/apperror"
	"github.com/Monesha-B/nexus-job-platform/internal/database"
	"github.com/Monesha-B/nexus-job-platform/internal/matcher"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
)

// ObjectPrefix is the storage folder holding every resume object.
const ObjectPrefix = "resumes"

// ResumeController handles resume related endpoints
type ResumeController struct {
	DB      *database.DBinstanceStruct
	Storage StorageClient
	Advisor matcher.Advisor
}

// NewResumeController creates a new instance of ResumeController. A nil
// storage keeps file bytes in the database.
func NewResumeController(db *database.DBinstanceStruct, storage StorageClient, advisor matcher.Advisor) *ResumeController {
	return &ResumeController{
		DB:      db,
		Storage: storage,
		Advisor: advisor,
	}
}

// Upload stores a new resume for userID. The first resume a user uploads
// becomes primary; a sixth active resume is rejected.
func (rc *ResumeController) Upload(ctx context.Context, userID uuid.UUID, originalName string, data []byte) (model.Resume, error) {
	ext := filepath.Ext(originalName)
	fileType, ok := model.ResumeTypeFromExtension(strings.ToLower(ext))
	if !ok {
		return model.Resume{}, apperror.Validation(fmt.Sprintf("Unsupported file extension: %s", ext))
	}

	resume := model.Resume{
		UserID:       userID,
		FileName:     uuid.NewString() + strings.ToLower(ext),
		OriginalName: filepath.Base(originalName),
		FileType:     fileType,
		FileSize:     int64(len(data)),
		IsActive:     true,
	}
	if text, err := ExtractText(fileType, data); err == nil {
		resume.RawText = text
	} else if !errors.Is(err, ErrUnsupportedExtraction) {
		resume.ParseError = err.Error()
	}

	if err := rc.persistFileData(&resume, data); err != nil {
		return model.Resume{}, apperror.Internal("Failed to store resume", err)
	}

	err := rc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUser(tx, userID); err != nil {
			return err
		}

		var active int64
		if err := tx.Model(&model.Resume{}).
			Where("user_id = ? AND is_active = ?", userID, true).
			Count(&active).Error; err != nil {
			return err
		}
		if active >= model.MaxActiveResumes {
			return apperror.New(apperror.KindTooManyResumes,
				fmt.Sprintf("Maximum %d resumes allowed. Please delete one first.", model.MaxActiveResumes))
		}
		resume.IsPrimary = active == 0

		return tx.Create(&resume).Error
	})
	if err != nil {
		rc.removeObject(resume.StorageObjectName)
		return model.Resume{}, apperror.FromDB(err, "User not found")
	}
	return resume, nil
}

// SetPrimary makes resumeID the user's only primary resume. A resume owned
// by someone else is reported as not found.
func (rc *ResumeController) SetPrimary(ctx context.Context, userID, resumeID uuid.UUID) (model.Resume, error) {
	var resume model.Resume
	err := rc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUser(tx, userID); err != nil {
			return err
		}
		if err := ownedResume(tx, userID, resumeID).First(&resume).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Resume{}).
			Where("user_id = ? AND is_primary = ? AND id <> ?", userID, true, resumeID).
			UpdateColumn("is_primary", false).Error; err != nil {
			return err
		}
		resume.IsPrimary = true
		return tx.Model(&resume).UpdateColumn("is_primary", true).Error
	})
	if err != nil {
		return model.Resume{}, apperror.FromDB(err, "Resume not found")
	}
	return resume, nil
}

// Delete removes a resume. When it was primary, the newest remaining active
// resume is promoted. The stored file is removed after the commit.
func (rc *ResumeController) Delete(ctx context.Context, userID, resumeID uuid.UUID) error {
	var resume model.Resume
	err := rc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUser(tx, userID); err != nil {
			return err
		}
		if err := ownedResume(tx, userID, resumeID).Omit("content").First(&resume).Error; err != nil {
			return err
		}
		if err := tx.Delete(&resume).Error; err != nil {
			return err
		}
		if !resume.IsPrimary {
			return nil
		}

		var next model.Resume
		err := tx.Select("id").
			Where("user_id = ? AND is_active = ?", userID, true).
			Order("created_at DESC").
			First(&next).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil
		case err != nil:
			return err
		}
		return tx.Model(&next).UpdateColumn("is_primary", true).Error
	})
	if err != nil {
		return apperror.FromDB(err, "Resume not found")
	}

	rc.removeObject(resume.StorageObjectName)
	return nil
}

// Parse extracts the resume's text and, through the advisor, its structured
// data. Failures are recorded on the resume rather than returned.
func (rc *ResumeController) Parse(ctx context.Context, userID, resumeID uuid.UUID) (model.Resume, error) {
	var resume model.Resume
	if err := ownedResume(rc.DB.WithContext(ctx), userID, resumeID).First(&resume).Error; err != nil {
		return model.Resume{}, apperror.FromDB(err, "Resume not found")
	}

	data, err := rc.fileBytes(&resume)
	if err != nil {
		return model.Resume{}, apperror.Internal("Failed to read resume file", err)
	}

	resume.IsParsed = false
	resume.ParseError = ""
	text, err := ExtractText(resume.FileType, data)
	switch {
	case err != nil:
		resume.ParseError = err.Error()
	case text == "":
		resume.ParseError = "No text could be extracted from the file"
	default:
		resume.RawText = text
		parsed, err := rc.Advisor.ParseResume(ctx, text)
		if err != nil {
			slog.Warn("resume parse failed",
				slog.String("resume_id", resume.ID.String()),
				slog.Any("error", err))
			resume.ParseError = err.Error()
		} else {
			resume.ParsedData = datatypes.NewJSONType(parsed)
			resume.IsParsed = true
		}
	}

	if err := rc.DB.WithContext(ctx).Model(&resume).UpdateColumns(map[string]any{
		"raw_text":    resume.RawText,
		"parsed_data": resume.ParsedData,
		"is_parsed":   resume.IsParsed,
		"parse_error": resume.ParseError,
	}).Error; err != nil {
		return model.Resume{}, apperror.Internal("Failed to save parsed resume", err)
	}
	return resume, nil
}

// Primary returns the user's primary resume.
func (rc *ResumeController) Primary(ctx context.Context, userID uuid.UUID) (model.Resume, error) {
	var resume model.Resume
	err := rc.DB.WithContext(ctx).
		Where("user_id = ? AND is_primary = ? AND is_active = ?", userID, true, true).
		First(&resume).Error
	if err != nil {
		return model.Resume{}, apperror.FromDB(err, "No primary resume found")
	}
	return resume, nil
}

func (rc *ResumeController) persistFileData(resume *model.Resume, data []byte) error {
	if rc.Storage == nil {
		resume.Content = data
		resume.StorageObjectName = nil
		return nil
	}

	objectName := fmt.Sprintf("%s/%s/%s", ObjectPrefix, resume.UserID, resume.FileName)
	if err := rc.Storage.UploadFile(objectName, bytes.NewReader(data)); err != nil {
		return err
	}
	resume.StorageObjectName = &objectName
	resume.Content = nil
	return nil
}

func (rc *ResumeController) fileBytes(resume *model.Resume) ([]byte, error) {
	if resume.StorageObjectName == nil {
		return resume.Content, nil
	}
	if rc.Storage == nil {
		return nil, errors.New("cloud storage is disabled while the requested file is stored remotely")
	}
	reader, _, err := rc.Storage.DownloadFile(*resume.StorageObjectName)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

func (rc *ResumeController) removeObject(objectName *string) {
	if objectName == nil || rc.Storage == nil {
		return
	}
	if err := rc.Storage.DeleteFile(*objectName); err != nil {
		slog.Warn("failed to delete resume object", slog.String("object", *objectName), slog.Any("error", err))
	}
}

// lockUser serializes resume changes of one user.
func lockUser(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", userID).
		First(&model.User{}).Error
}

func ownedResume(db *gorm.DB, userID, resumeID uuid.UUID) *gorm.DB {
	return db.Where("id = ? AND user_id = ? AND is_active = ?", resumeID, userID, true)
}
