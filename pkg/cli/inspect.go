package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/housing-price-predictor/pkg/header"
	"github.com/NVIDIA/housing-price-predictor/pkg/predictor"
)

// Inspection is the document printed by the inspect command.
type Inspection struct {
	header.Header `json:",inline" yaml:",inline"`

	Summary predictor.Summary `json:"summary" yaml:"summary"`
}

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Summarize the loaded artifacts",
		Description: `Load the artifacts and print the feature schema, categorical columns,
encoded feature order and the model and scaler kinds.`,
		Flags: []cli.Flag{
			artifactsFlag(),
			unseenCategoryFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			svc, err := loadService(cmd)
			if err != nil {
				return err
			}

			return writeOutput(ctx, cmd, Inspection{
				Header:  header.New(header.KindArtifactSummary, version),
				Summary: svc.Describe(),
			})
		},
	}
}
