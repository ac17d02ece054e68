package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hris/backend/config"
	"hris/backend/pkg/database"
)

var (
	migrateConfigPath string
	migrateSteps      int
)

var migrateCmd = &cobra.Command{
	Use:       "migrate <up|down>",
	Short:     "执行或回滚数据库迁移",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down"},
	RunE:      runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateConfigPath, "config", "", "配置文件路径")
	migrateCmd.Flags().IntVar(&migrateSteps, "steps", 1, "down 时回滚的步数")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(migrateConfigPath)
	if err != nil {
		return err
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	switch args[0] {
	case "up":
		err = database.RunMigrations(sqlDB, logger)
	case "down":
		err = database.RollbackMigrations(sqlDB, migrateSteps, logger)
	default:
		return fmt.Errorf("未知的迁移方向 %q，可选 up|down", args[0])
	}
	if err != nil {
		logger.Error("迁移失败", zap.Error(err))
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "migrate %s done\n", args[0])
	return nil
}
