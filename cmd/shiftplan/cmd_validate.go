package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"hris/backend/internal/shiftplan"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "离线校验排班文件，不写入数据库",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	f, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	shifts, err := shiftplan.ParseWorkbook(f, args[0])
	if err != nil {
		var verr *shiftplan.ValidationError
		if errors.As(err, &verr) {
			for _, p := range verr.Problems {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return fmt.Errorf("%d problem(s) found", len(verr.Problems))
		}
		return err
	}

	docs := shiftplan.GroupByEmployeeMonth(shifts)
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d shifts across %d employee-months\n", len(shifts), len(docs))
	return nil
}
