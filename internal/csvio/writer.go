package csvio

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/internal/exam"
	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/pkg/model"
)

// ExportExamSchedule writes the exam placements to a CSV file.
func ExportExamSchedule(placements []exam.Placement, path string) error {
	if err := removeIfExists(path); err != nil {
		return err
	}
	out, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	rows := exam.Rows(placements)
	if err := gocsv.MarshalFile(&rows, out); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ExportFailures writes the unplaced-chunk report to a CSV file, replacing
// any previous report at that path.
func ExportFailures(failures []model.UnplacedChunk, path string) error {
	if err := removeIfExists(path); err != nil {
		return err
	}
	out, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	rows := make([]*model.UnplacedChunk, 0, len(failures))
	for i := range failures {
		rows = append(rows, &failures[i])
	}
	if err := gocsv.MarshalFile(&rows, out); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func removeIfExists(path string) error {
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to replace %s: %w", path, err)
		}
	}
	return nil
}
