package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/skillbridge/internal/models"
)

type ReportRepository interface {
	Create(report *models.AnalysisReport) error
	FindByID(id uuid.UUID) (*models.AnalysisReport, error)
	UpdateStatus(id uuid.UUID, status models.ReportStatus) error
	CompleteWithResult(id uuid.UUID, result *models.AnalysisResult) error
	FailWithError(id uuid.UUID, kind, message, hint string) error
	FindPendingJobs(limit int) ([]models.AnalysisReport, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *models.AnalysisReport) error {
	if err := r.db.Create(report).Error; err != nil {
		return fmt.Errorf("failed to create analysis report: %w", err)
	}
	return nil
}

func (r *reportRepository) FindByID(id uuid.UUID) (*models.AnalysisReport, error) {
	var report models.AnalysisReport
	if err := r.db.Where("id = ?", id).First(&report).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("analysis report not found")
		}
		return nil, fmt.Errorf("failed to find analysis report: %w", err)
	}
	return &report, nil
}

func (r *reportRepository) UpdateStatus(id uuid.UUID, status models.ReportStatus) error {
	result := r.db.Model(&models.AnalysisReport{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("analysis report not found")
	}

	return nil
}

// CompleteWithResult stores the normalized analysis and flips the report to
// completed in one update. The result is serialized as JSON so it round-trips
// exactly as the normalizer produced it.
func (r *reportRepository) CompleteWithResult(id uuid.UUID, analysisResult *models.AnalysisResult) error {
	payload, err := json.Marshal(analysisResult)
	if err != nil {
		return fmt.Errorf("failed to serialize analysis result: %w", err)
	}

	resultJSON := string(payload)
	result := r.db.Model(&models.AnalysisReport{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      models.StatusCompleted,
			"result_json": resultJSON,
			"updated_at":  time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update result: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("analysis report not found")
	}

	return nil
}

func (r *reportRepository) FailWithError(id uuid.UUID, kind, message, hint string) error {
	result := r.db.Model(&models.AnalysisReport{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_kind":    kind,
			"error_message": message,
			"error_hint":    hint,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("analysis report not found")
	}

	return nil
}

func (r *reportRepository) FindPendingJobs(limit int) ([]models.AnalysisReport, error) {
	var reports []models.AnalysisReport
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&reports).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return reports, nil
}

// DecodeResult unmarshals the stored result of a completed report.
func DecodeResult(report *models.AnalysisReport) (*models.AnalysisResult, error) {
	if report.ResultJSON == nil {
		return nil, fmt.Errorf("analysis report has no stored result")
	}

	var analysis models.AnalysisResult
	if err := json.Unmarshal([]byte(*report.ResultJSON), &analysis); err != nil {
		return nil, fmt.Errorf("failed to decode stored result: %w", err)
	}

	return &analysis, nil
}
