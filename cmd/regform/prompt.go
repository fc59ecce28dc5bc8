package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
)

func newPromptCmd(a *app) *cobra.Command {
	var (
		confirm   bool
		maxRounds int
	)

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in the registration form from the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, ok := tui.ParseOutputFormat(a.cfg.Output)
			if !ok {
				return fmt.Errorf("regform: unknown output format %q", a.cfg.Output)
			}

			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			fm, err := orch.Form(cmd.Context())
			if err != nil {
				return err
			}

			renderer := tui.New(
				tui.WithOutput(cmd.ErrOrStderr()),
				tui.WithOutputFormat(format),
				tui.WithConfirm(confirm),
				tui.WithMaxRounds(maxRounds),
				tui.WithFormOptions(form.WithSubmitter(form.LogSubmitter(a.logger))),
			)

			out, err := renderer.Render(cmd.Context(), fm, render.RenderOptions{})
			if errors.Is(err, tui.ErrAborted) {
				return nil
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().String("format", "", "output format: json, form or pretty")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "ask before submitting")
	cmd.Flags().IntVar(&maxRounds, "max-rounds", 0, "give up after this many rejected submissions (0 = no limit)")
	_ = a.v.BindPFlag("output", cmd.Flags().Lookup("format"))
	return cmd
}
