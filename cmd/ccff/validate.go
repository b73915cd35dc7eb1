package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	ccff "github.com/arclabs-dev/go-ccff"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Strictly decode a CCFF container, rejecting anything an encoder could not have written",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "in",
				Aliases:  []string{"i"},
				Usage:    "Input .ccff file",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runValidate(cmd.String("in"))
		},
	}
}

func runValidate(inPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	cf, err := ccff.Decode(data,
		ccff.WithDuplicatePolicy(ccff.RejectDuplicates),
		ccff.WithStrictOffsets(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	fmt.Printf("ok: %s, %d sections, %d bytes\n", inPath, cf.Len(), len(data))
	return nil
}
