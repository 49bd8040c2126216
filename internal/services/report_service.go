package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/GymFlow-2025/gym-service/internal/models"
	"github.com/GymFlow-2025/gym-service/internal/repositories"
)

const scheduleSheet = "Schedule"

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// WriteScheduleReport renders the full class schedule as an xlsx workbook,
// one row per class, ordered by start time.
func (s *reportService) WriteScheduleReport(ctx context.Context, w io.Writer) error {
	// Page through the schedule; list reads are capped per page.
	const pageSize = 100
	var classes []*models.Class
	for offset := 0; ; offset += pageSize {
		page, _, err := s.repo.Class().List(ctx, repositories.ClassFilters{
			SortBy:    "start",
			SortOrder: "asc",
			Limit:     pageSize,
			Offset:    offset,
		})
		if err != nil {
			return fmt.Errorf("failed to load schedule: %w", err)
		}
		classes = append(classes, page...)
		if len(page) < pageSize {
			break
		}
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Error("failed to close workbook", "error", err)
		}
	}()

	index, err := f.NewSheet(scheduleSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := []string{"ID", "Name", "Trainer", "Start", "End", "Enrolled", "Capacity"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(scheduleSheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, class := range classes {
		values := []interface{}{
			class.ID,
			class.Name,
			class.Trainer.Name,
			class.Start.Format("2006-01-02 15:04"),
			class.End.Format("2006-01-02 15:04"),
			class.Enrolled,
			models.MaxTraineesPerClass,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(scheduleSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("schedule report generated", "classes", len(classes))
	return nil
}
