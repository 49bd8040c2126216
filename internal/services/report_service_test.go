package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/GymFlow-2025/gym-service/internal/models"
)

func TestWriteScheduleReport(t *testing.T) {
	repo := newFakeRepo()
	trainer := seedTrainer(repo)
	svc := NewReportService(repo, testLogger())

	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	repo.seedClass(&models.Class{
		Name:      "Morning Yoga",
		TrainerID: trainer.ID,
		Start:     start,
		End:       start.Add(2 * time.Hour),
		Enrolled:  3,
	})

	var buf bytes.Buffer
	if err := svc.WriteScheduleReport(context.Background(), &buf); err != nil {
		t.Fatalf("WriteScheduleReport() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("output is not a valid workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Schedule")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1 class", len(rows))
	}

	header := rows[0]
	wantHeader := []string{"ID", "Name", "Trainer", "Start", "End", "Enrolled", "Capacity"}
	for i, want := range wantHeader {
		if i >= len(header) || header[i] != want {
			t.Fatalf("header = %v, want %v", header, wantHeader)
		}
	}

	row := rows[1]
	if row[1] != "Morning Yoga" {
		t.Errorf("name cell = %q", row[1])
	}
	if row[3] != "2026-09-07 09:00" {
		t.Errorf("start cell = %q", row[3])
	}
	if row[5] != "3" {
		t.Errorf("enrolled cell = %q", row[5])
	}
}

func TestWriteScheduleReportEmpty(t *testing.T) {
	repo := newFakeRepo()
	svc := NewReportService(repo, testLogger())

	var buf bytes.Buffer
	if err := svc.WriteScheduleReport(context.Background(), &buf); err != nil {
		t.Fatalf("WriteScheduleReport() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("output is not a valid workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Schedule")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("rows = %d, want header only", len(rows))
	}
}
