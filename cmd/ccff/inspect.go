package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	ccff "github.com/arclabs-dev/go-ccff"
	"github.com/arclabs-dev/go-ccff/codec"
)

type fileSummary struct {
	ABIVersion uint16           `json:"abi_version"`
	FileType   uint8            `json:"file_type"`
	Sections   []sectionSummary `json:"sections"`
	TotalSize  int              `json:"total_size"`
}

type sectionSummary struct {
	Name     string `json:"name"`
	Type     uint8  `json:"type"`
	Flags    uint32 `json:"flags"`
	Offset   uint32 `json:"offset"`
	Length   int    `json:"length"`
	Compress string `json:"compress,omitempty"`
}

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Print a JSON summary of a CCFF container",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "in",
				Aliases:  []string{"i"},
				Usage:    "Input .ccff file",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInspect(cmd.String("in"))
		},
	}
}

func runInspect(inPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	cf, err := ccff.Decode(data)
	if err != nil {
		return err
	}

	s := fileSummary{
		ABIVersion: cf.ABIVersion(),
		FileType:   cf.FileType(),
		TotalSize:  len(data),
	}
	for name, sec := range cf.Sections() {
		offset, _ := sec.Offset()
		sum := sectionSummary{
			Name:   name,
			Type:   sec.Type(),
			Flags:  sec.Flags(),
			Offset: offset,
			Length: len(sec.Data()),
		}
		// Only report a codec when the raw-length flag says the payload
		// follows the codec convention; a bare low nibble could just be
		// caller-defined flags.
		if sec.Flags()&codec.FlagHasRawLen != 0 {
			sum.Compress = codec.FromFlags(sec.Flags()).String()
		}
		s.Sections = append(s.Sections, sum)
	}

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
