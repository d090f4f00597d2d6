package main

import (
	"github.com/phrazzld/mnemo-api/internal/domain"
	"github.com/phrazzld/mnemo-api/internal/preset"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Inspect the built-in configuration presets",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list [exercise_type]",
		Short: "Print presets as YAML, optionally for one exercise type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := preset.NewDefaultCatalog()
			if err != nil {
				return err
			}

			types := catalog.ExerciseTypes()
			if len(args) == 1 {
				et, err := domain.ParseExerciseType(args[0])
				if err != nil {
					return err
				}
				types = []domain.ExerciseType{et}
			}

			out := make(map[domain.ExerciseType][]preset.Preset, len(types))
			for _, et := range types {
				out[et] = catalog.Lookup(et)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return err
			}
			return enc.Close()
		},
	})
	return cmd
}
