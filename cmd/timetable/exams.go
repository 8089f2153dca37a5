package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/internal/config"
	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/internal/csvio"
	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/internal/exam"
	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/pkg/model"
)

var examsCmd = &cobra.Command{
	Use:   "exams",
	Short: "Schedule end-semester exams into dated slots and rooms",
	RunE:  runExams,
}

func runExams(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if len(cfg.Exams.Groups) == 0 {
		return fmt.Errorf("no exam groups configured in %s", cfgPath)
	}
	rooms, err := csvio.LoadRooms(cfg.RoomsFile)
	if err != nil {
		return err
	}
	var invigilators []string
	if cfg.Exams.InvigilatorsFile != "" {
		if invigilators, err = csvio.LoadInvigilators(cfg.Exams.InvigilatorsFile); err != nil {
			return err
		}
	}

	groups := make(map[string][]*model.ExamCourse, len(cfg.Exams.Groups))
	for _, g := range cfg.Exams.Groups {
		roster, err := csvio.LoadExamRoster(g.CoursesFile, g.Label)
		if err != nil {
			return err
		}
		groups[g.Label] = roster
	}

	examCfg := exam.Config{
		Slots:             cfg.Exams.Slots,
		MaxPerDay:         cfg.Exams.MaxPerDay,
		MaxPerGroupPerDay: cfg.Exams.MaxPerGroupPerDay,
		Logger:            logger,
	}
	if cfg.Exams.StartDate != "" {
		start, err := time.Parse("2006-01-02", cfg.Exams.StartDate)
		if err != nil {
			return fmt.Errorf("invalid exams start date %q: %w", cfg.Exams.StartDate, err)
		}
		examCfg.StartDate = start
	}

	placements, unscheduled := exam.New(rooms, invigilators, groups, examCfg).Run()
	for _, c := range unscheduled {
		logger.Warn("exam not scheduled",
			zap.String("group", c.Group),
			zap.String("code", c.Code),
			zap.Int("students", c.Students))
	}

	out := cfg.Exams.OutputFile
	if out == "" {
		out = "exam_schedule.csv"
	}
	if err := csvio.ExportExamSchedule(placements, out); err != nil {
		return err
	}
	logger.Info("exam schedule written",
		zap.String("path", out),
		zap.Int("exams", len(placements)),
		zap.Int("unscheduled", len(unscheduled)))
	return nil
}
