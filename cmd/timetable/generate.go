package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/internal/config"
	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/internal/csvio"
	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/internal/scheduler"
	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/internal/xlsxio"
	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/pkg/model"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate weekly timetables for all configured groups",
	RunE:  runGenerate,
}

func halfTitle(half int) string {
	if half == 1 {
		return "First Half"
	}
	return "Second Half"
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	table, err := cfg.SlotTable()
	if err != nil {
		return err
	}
	rooms, err := csvio.LoadRooms(cfg.RoomsFile)
	if err != nil {
		return err
	}
	reg, err := csvio.LoadRegistrations(cfg.RegistrationsFile)
	if err != nil {
		return err
	}

	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	sched := scheduler.New(scheduler.Config{
		SharedHall:  cfg.SharedHall,
		MaxAttempts: cfg.MaxAttempts,
		Rand:        rng,
		Logger:      logger,
	}, table, rooms, reg)
	logger.Info("starting run",
		zap.String("run", sched.RunID()),
		zap.Int64("seed", seed),
		zap.Int("groups", len(cfg.Groups)))

	wb, err := xlsxio.NewWorkbook(rng)
	if err != nil {
		return err
	}
	electiveRoom := func(key string) (string, bool) {
		return sched.ElectiveRooms().Peek(key)
	}

	var results []*scheduler.Result
	var failures []model.UnplacedChunk
	for gi, g := range cfg.Groups {
		courses, err := csvio.LoadCourses(g.CoursesFile)
		if err != nil {
			return err
		}
		for half := 1; half <= 2; half++ {
			var roster []*model.Course
			for _, c := range courses {
				if c.InHalf(half) {
					roster = append(roster, c)
				}
			}
			label := fmt.Sprintf("%s (%s)", g.Label, halfTitle(half))
			res := sched.Generate(roster, scheduler.GenerateOptions{
				Label:          label,
				SyncGroup:      g.SyncGroup,
				RoomPrefix:     g.RoomPrefix,
				Seed:           gi*2 + half,
				HideSharedHall: g.HideSharedHall,
			})
			if res.Err != nil {
				logger.Error("group skipped",
					zap.String("label", label),
					zap.Error(res.Err))
				continue
			}
			if err := wb.AddGridBlock(g.Sheet, label, res.Grid, res.Placed); err != nil {
				return err
			}
			results = append(results, res)
			failures = append(failures, res.Failures...)
		}
		if err := wb.AddLegend(g.Sheet, g.Label, courses, electiveRoom); err != nil {
			return err
		}
	}

	ok, report := scheduler.Verify(results, sched.SharedHall())
	fmt.Println(report)
	if !ok {
		logger.Warn("room collision check failed", zap.String("run", sched.RunID()))
	}

	if err := wb.AddFailureReport(failures); err != nil {
		return err
	}
	if err := wb.Save(cfg.OutputFile); err != nil {
		return err
	}
	logger.Info("workbook written",
		zap.String("path", cfg.OutputFile),
		zap.Int("unplaced_chunks", len(failures)))

	if cfg.ReportFile != "" {
		if err := csvio.ExportFailures(failures, cfg.ReportFile); err != nil {
			return err
		}
	}
	return nil
}
