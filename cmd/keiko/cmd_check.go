package main

import (
	"fmt"
	"path/filepath"

	"github.com/keiko-dev/keiko/internal/artifact"
	"github.com/keiko-dev/keiko/internal/chat"
	"github.com/keiko-dev/keiko/internal/projectconfig"
	"github.com/keiko-dev/keiko/internal/validation"
	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <eval.yaml>",
		Short: "Validate an eval spec and model availability without running it",
		Long: `Check schema-validates an eval spec, confirms the artifact file loads,
and sends a minimal probe request to every configured model. Nothing is
evaluated and no transcripts are written.`,
		Args: cobra.ExactArgs(1),
		RunE: checkCommandE,
	}
}

func checkCommandE(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	specPath := args[0]

	projCfg, err := projectconfig.Load(filepath.Dir(specPath))
	if err != nil {
		return err
	}

	spec, err := loadSpec(specPath, projCfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "eval spec ok: %d scenarios\n", len(spec.Scenarios))

	art, err := artifact.Load(resolvePath(filepath.Dir(specPath), spec.ArtifactPath))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "artifact ok: %q (%d bytes)\n", art.Title, len(art.Content))

	gateway, err := chat.New(spec.Provider, chat.Options{})
	if err != nil {
		return err
	}

	if err := validation.ValidateModels(ctx, gateway, spec.Models.All()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "models ok")

	return nil
}
