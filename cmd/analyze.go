/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/nephroclinic/clinic/kidney"
)

// CmdAnalyze runs the kidney lab interpreter offline and prints JSON.
var CmdAnalyze = &cli.Command{
	Name:  "analyze",
	Usage: "Interpret kidney lab results and print the outcome as JSON",
	Flags: analyzeFlags(),
	Action: func(_ context.Context, cmd *cli.Command) error {
		values := make(map[string]string, len(kidney.Tests))
		for _, test := range kidney.Tests {
			if cmd.IsSet(string(test)) {
				values[string(test)] = strconv.FormatFloat(cmd.Float(string(test)), 'f', -1, 64)
			}
		}

		return runAnalyze(cmd.Root().Writer, cmd.Int("age"), cmd.String("sex"), values)
	},
}

func analyzeFlags() []cli.Flag {
	flags := []cli.Flag{
		&cli.IntFlag{
			Name:     "age",
			Required: true,
			Usage:    "patient age in years (1-120)",
		},
		&cli.StringFlag{
			Name:     "sex",
			Required: true,
			Usage:    "patient sex: male or female",
		},
	}

	for _, test := range kidney.Tests {
		flags = append(flags, &cli.FloatFlag{
			Name:  string(test),
			Usage: fmt.Sprintf("%s (%s)", test.DisplayName(), test.Unit()),
		})
	}

	return flags
}

func runAnalyze(w io.Writer, age int, rawSex string, values map[string]string) error {
	sex, err := kidney.ParseSex(rawSex)
	if err != nil {
		return err
	}

	outcome, err := kidney.Analyze(kidney.Patient{Age: age, Sex: sex}, kidney.ParseReadings(values))
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(outcome); err != nil {
		return fmt.Errorf("failed to encode outcome: %w", err)
	}

	return nil
}
