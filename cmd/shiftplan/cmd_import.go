package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hris/backend/config"
	"hris/backend/internal/repository"
	"hris/backend/internal/service"
	"hris/backend/pkg/database"
)

var (
	importConfigPath string
	importUploader   string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "校验并写入排班文件（与上传接口行为一致）",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importConfigPath, "config", "", "配置文件路径")
	importCmd.Flags().StringVar(&importUploader, "uploader", "cli", "写入日志的上传人标识")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(importConfigPath)
	if err != nil {
		return err
	}

	in, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	svc := service.NewShiftPlanService(&cfg.ShiftPlan, repository.NewRepository(db), logger)
	resp, err := svc.UploadShiftPlan(cmd.Context(), importUploader, in, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "committed %d shifts\n", resp.Committed)
	return nil
}
