package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/contract"
	"github.com/goliatone/go-regform/pkg/orchestrator"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		output   string
		renderer string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the empty registration form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			out, err := orch.Render(cmd.Context(), orchestrator.Request{Renderer: renderer})
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&renderer, "renderer", "vanilla", "renderer to use")
	return cmd
}

func newContractCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Print the OpenAPI document for the submission endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := contract.JSON(cmd.Context())
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("regform: write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Written to %s\n", path)
	return nil
}
