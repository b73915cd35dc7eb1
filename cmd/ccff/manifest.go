package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// manifest describes a container to build: header metadata plus one entry
// per section, in the order they should appear in the file.
type manifest struct {
	ABIVersion uint16            `yaml:"abi_version"`
	FileType   uint8             `yaml:"file_type"`
	Sections   []manifestSection `yaml:"sections"`
}

type manifestSection struct {
	Name string `yaml:"name"`
	Type uint8  `yaml:"type"`
	// Flags is the caller-defined flags word. The codec bits are managed
	// by the compress field and must not be set here.
	Flags uint32 `yaml:"flags,omitempty"`
	// Compress selects a payload codec: none, snappy, zstd, lz4, brotli.
	Compress string `yaml:"compress,omitempty"`
	// File is the payload path, relative to the manifest unless absolute.
	File string `yaml:"file,omitempty"`
	// Data is an inline UTF-8 payload, mutually exclusive with File.
	Data string `yaml:"data,omitempty"`
}

func loadManifest(path string) (*manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

func (m *manifest) save(path string) error {
	b, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func (s manifestSection) payload(baseDir string) ([]byte, error) {
	switch {
	case s.File != "" && s.Data != "":
		return nil, fmt.Errorf("section %q: file and data are mutually exclusive", s.Name)
	case s.File != "":
		p := s.File
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		return os.ReadFile(p)
	default:
		return []byte(s.Data), nil
	}
}
