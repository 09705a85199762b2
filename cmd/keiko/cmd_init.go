package main

import (
	"fmt"
	"os"

	"github.com/keiko-dev/keiko/internal/projectconfig"
	"github.com/keiko-dev/keiko/internal/wizard"
	"github.com/spf13/cobra"
)

var initOutput string

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively scaffold a new eval spec",
		Args:  cobra.NoArgs,
		RunE:  initCommandE,
	}

	cmd.Flags().StringVarP(&initOutput, "output", "o", "eval.yaml", "Path for the generated eval spec")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string) error {
	projCfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}

	scaffold, err := wizard.Run(cmd.InOrStdin(), cmd.ErrOrStderr(), projCfg)
	if err != nil {
		return err
	}

	content, err := wizard.GenerateEvalYAML(scaffold, projCfg)
	if err != nil {
		return err
	}

	if _, err := os.Stat(initOutput); err == nil {
		return fmt.Errorf("%s already exists, refusing to overwrite", initOutput)
	}

	if err := os.WriteFile(initOutput, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", initOutput, err)
	}

	if _, err := os.Stat(".keiko.yaml"); os.IsNotExist(err) {
		projectYAML, err := wizard.GenerateProjectYAML(projCfg)
		if err != nil {
			return err
		}
		if err := os.WriteFile(".keiko.yaml", []byte(projectYAML), 0o644); err != nil {
			return fmt.Errorf("writing .keiko.yaml: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "wrote .keiko.yaml")
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\nEdit the scenarios, then run: keiko run %s\n", initOutput, initOutput)
	return nil
}
