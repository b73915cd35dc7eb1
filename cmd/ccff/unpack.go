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

func unpackCmd() *cli.Command {
	return &cli.Command{
		Name:  "unpack",
		Usage: "Extract a CCFF container into a directory with a manifest",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "in",
				Aliases:  []string{"i"},
				Usage:    "Input .ccff file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "dir",
				Aliases:  []string{"d"},
				Usage:    "Output directory",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Decompress payloads whose flags carry a codec id",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runUnpack(cmd.String("in"), cmd.String("dir"), cmd.Bool("raw"))
		},
	}
}

func runUnpack(inPath, dir string, raw bool) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	cf, err := ccff.Decode(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	m := &manifest{ABIVersion: cf.ABIVersion(), FileType: cf.FileType()}
	i := 0
	for name, sec := range cf.Sections() {
		payload := sec.Data()
		flags := sec.Flags()
		compress := ""
		if raw {
			comp := codec.FromFlags(flags)
			payload, err = codec.Unpack(flags, payload, 0)
			if err != nil {
				return fmt.Errorf("section %q: %w", name, err)
			}
			compress = comp.String()
			if comp == codec.None {
				compress = ""
			}
			flags &^= codec.CompressionMask | codec.FlagHasRawLen
		}
		file := sectionFileName(i, name)
		if err := os.WriteFile(filepath.Join(dir, file), payload, 0o644); err != nil {
			return err
		}
		m.Sections = append(m.Sections, manifestSection{
			Name:     name,
			Type:     sec.Type(),
			Flags:    flags,
			Compress: compress,
			File:     file,
		})
		i++
	}

	if err := m.save(filepath.Join(dir, "manifest.yaml")); err != nil {
		return err
	}
	fmt.Printf("unpacked %s: %d sections into %s\n", inPath, cf.Len(), dir)
	return nil
}

// sectionFileName maps a section name to a filesystem-safe file name. The
// index prefix keeps names unique even when sanitizing collides.
func sectionFileName(i int, name string) string {
	safe := make([]byte, len(name))
	for j := 0; j < len(name); j++ {
		c := name[j]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '.', c == '-', c == '_':
			safe[j] = c
		default:
			safe[j] = '_'
		}
	}
	return fmt.Sprintf("%03d%s.bin", i, safe)
}
