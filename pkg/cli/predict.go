package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/NVIDIA/housing-price-predictor/pkg/defaults"
	"github.com/NVIDIA/housing-price-predictor/pkg/header"
	"github.com/NVIDIA/housing-price-predictor/pkg/predictor"
	"github.com/NVIDIA/housing-price-predictor/pkg/serializer"
)

const invalidRowMessage = "Input features do not match expected format"

var pricePrinter = message.NewPrinter(language.English)

// Prediction is the outcome for one input row.
type Prediction struct {
	Row            int      `json:"row" yaml:"row"`
	EstimatedPrice *float64 `json:"estimatedPrice,omitempty" yaml:"estimatedPrice,omitempty"`
	Error          string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// PredictionReport holds one Prediction per input row, in input order.
type PredictionReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Predictions []Prediction `json:"predictions" yaml:"predictions"`
}

// TableHeader implements serializer.Tabular.
func (r PredictionReport) TableHeader() []string {
	return []string{"ROW", "ESTIMATED PRICE", "ERROR"}
}

// TableRows implements serializer.Tabular.
func (r PredictionReport) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Predictions))
	for _, p := range r.Predictions {
		price := "-"
		if p.EstimatedPrice != nil {
			price = formatPrice(*p.EstimatedPrice)
		}
		errText := p.Error
		if errText == "" {
			errText = "-"
		}
		rows = append(rows, []string{strconv.Itoa(p.Row), price, errText})
	}
	return rows
}

func formatPrice(v float64) string {
	return pricePrinter.Sprintf("$%.2f", v)
}

func predictCmd() *cli.Command {
	return &cli.Command{
		Name:  "predict",
		Usage: "Estimate prices for feature vectors",
		Description: `Load the artifacts and estimate a price for each input row.

Rows come from --input (a single JSON array) and/or --rows (a JSON or YAML
file holding a list of arrays). Rows that do not match the feature schema
are reported and skipped.

Example:

  hpp predict --input '[7420, 4, 2, 3, "yes", "no", "no", "no", "yes", 2, "yes", "furnished"]'`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Feature vector as a JSON array",
			},
			&cli.StringFlag{
				Name:    "rows",
				Aliases: []string{"r"},
				Usage:   "Path to a JSON or YAML file holding a list of feature vectors",
			},
			artifactsFlag(),
			unseenCategoryFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			rows, err := readRows(cmd.String("input"), cmd.String("rows"))
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLIPredictTimeout)
			defer cancel()

			svc, err := loadService(cmd)
			if err != nil {
				return err
			}

			return writeOutput(ctx, cmd, estimateRows(ctx, svc, rows))
		},
	}
}

// readRows collects the rows given inline and in a rows file, inline first.
func readRows(input, rowsPath string) ([][]any, error) {
	var rows [][]any

	if strings.TrimSpace(input) != "" {
		r, err := serializer.NewReader(serializer.FormatJSON, strings.NewReader(input))
		if err != nil {
			return nil, err
		}
		var row []any
		if err := r.Deserialize(&row); err != nil {
			return nil, fmt.Errorf("invalid --input, expected a JSON array: %w", err)
		}
		rows = append(rows, row)
	}

	if rowsPath != "" {
		fileRows, err := serializer.FromFile[[][]any](rowsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read rows from %q: %w", rowsPath, err)
		}
		rows = append(rows, *fileRows...)
	}

	if len(rows) == 0 {
		return nil, errors.New("no input rows: set --input or --rows")
	}
	return rows, nil
}

// estimateRows estimates every row, recording failures per row.
func estimateRows(ctx context.Context, svc *predictor.Service, rows [][]any) PredictionReport {
	report := PredictionReport{
		Header:      header.New(header.KindPredictionReport, version),
		Predictions: make([]Prediction, 0, len(rows)),
	}
	for i, row := range rows {
		p := Prediction{Row: i + 1}
		if !svc.Validate(row) {
			p.Error = invalidRowMessage
			report.Predictions = append(report.Predictions, p)
			continue
		}

		price, err := svc.EstimatePrice(ctx, row)
		if err != nil {
			slog.Warn("estimate failed", "row", p.Row, "error", err)
			p.Error = err.Error()
		} else {
			p.EstimatedPrice = &price
		}
		report.Predictions = append(report.Predictions, p)
	}
	return report
}
