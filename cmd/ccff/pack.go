package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	ccff "github.com/arclabs-dev/go-ccff"
	"github.com/arclabs-dev/go-ccff/codec"
)

func packCmd() *cli.Command {
	return &cli.Command{
		Name:  "pack",
		Usage: "Build a CCFF container from a YAML manifest",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "manifest",
				Aliases:  []string{"m"},
				Usage:    "Manifest describing the container",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    "Output .ccff path",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runPack(cmd.String("manifest"), cmd.String("out"))
		},
	}
}

func runPack(manifestPath, outPath string) error {
	m, err := loadManifest(manifestPath)
	if err != nil {
		return err
	}
	baseDir := filepath.Dir(manifestPath)

	cf := ccff.New(m.ABIVersion, m.FileType)
	for _, ms := range m.Sections {
		raw, err := ms.payload(baseDir)
		if err != nil {
			return err
		}
		comp, err := codec.Parse(ms.Compress)
		if err != nil {
			return fmt.Errorf("section %q: %w", ms.Name, err)
		}
		// With compress set the codec bits belong to this tool; flags that
		// already carry them describe a pre-encoded payload and must be
		// stored verbatim with compress left empty.
		if ms.Compress != "" && ms.Flags&(codec.CompressionMask|codec.FlagHasRawLen) != 0 {
			return fmt.Errorf("section %q: flags %#x overlap the codec bits, use compress instead", ms.Name, ms.Flags)
		}
		codecFlags, payload, err := codec.Pack(comp, raw)
		if err != nil {
			return fmt.Errorf("section %q: %w", ms.Name, err)
		}
		sec := ccff.NewSection(ms.Type, ms.Flags|codecFlags)
		sec.SetData(payload)
		if _, err := cf.AddSection(ms.Name, sec); err != nil {
			return err
		}
	}

	buf, err := cf.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, buf, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s: %d sections, %d bytes\n", outPath, cf.Len(), len(buf))
	return nil
}
