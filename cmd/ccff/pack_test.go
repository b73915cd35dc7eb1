package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	ccff "github.com/arclabs-dev/go-ccff"
	"github.com/arclabs-dev/go-ccff/codec"
)

const sampleManifest = `abi_version: 2
file_type: 1
sections:
  - name: .text
    type: 1
    compress: zstd
    file: text.bin
  - name: .note
    type: 2
    flags: 32
    data: "build 1234"
`

func writeSampleManifest(t *testing.T, dir string, textData []byte) string {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "text.bin"), textData, 0o644); err != nil {
		t.Fatal(err)
	}
	mPath := filepath.Join(dir, "manifest.yaml")
	if err := os.WriteFile(mPath, []byte(sampleManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	return mPath
}

func TestPackProducesValidContainer(t *testing.T) {
	dir := t.TempDir()
	textData := bytes.Repeat([]byte("machine code "), 50)
	mPath := writeSampleManifest(t, dir, textData)
	outPath := filepath.Join(dir, "out.ccff")

	if err := runPack(mPath, outPath); err != nil {
		t.Fatalf("pack: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	cf, err := ccff.Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cf.ABIVersion() != 2 || cf.FileType() != 1 || cf.Len() != 2 {
		t.Fatalf("header mismatch: abi=%d type=%d len=%d", cf.ABIVersion(), cf.FileType(), cf.Len())
	}

	text := cf.Section(".text")
	if codec.FromFlags(text.Flags()) != codec.Zstd {
		t.Fatalf(".text flags %#x", text.Flags())
	}
	raw, err := codec.Unpack(text.Flags(), text.Data(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(raw, textData) {
		t.Fatal(".text payload mismatch")
	}

	note := cf.Section(".note")
	if note.Flags() != 32 || string(note.Data()) != "build 1234" {
		t.Fatalf(".note flags %#x data %q", note.Flags(), note.Data())
	}

	if err := runValidate(outPath); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := runInspect(outPath); err != nil {
		t.Fatalf("inspect: %v", err)
	}
}

func TestUnpackRepackRoundTrip(t *testing.T) {
	dir := t.TempDir()
	textData := bytes.Repeat([]byte("machine code "), 50)
	mPath := writeSampleManifest(t, dir, textData)
	outPath := filepath.Join(dir, "out.ccff")
	if err := runPack(mPath, outPath); err != nil {
		t.Fatal(err)
	}

	unpackDir := filepath.Join(dir, "unpacked")
	if err := runUnpack(outPath, unpackDir, true); err != nil {
		t.Fatalf("unpack: %v", err)
	}

	textFile := filepath.Join(unpackDir, sectionFileName(0, ".text"))
	got, err := os.ReadFile(textFile)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, textData) {
		t.Fatal("unpacked .text payload mismatch")
	}

	m, err := loadManifest(filepath.Join(unpackDir, "manifest.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Sections) != 2 || m.Sections[0].Compress != "zstd" || m.Sections[1].Flags != 32 {
		t.Fatalf("regenerated manifest: %+v", m.Sections)
	}

	// Repacking the regenerated manifest must reproduce the same logical
	// container.
	rePath := filepath.Join(dir, "repacked.ccff")
	if err := runPack(filepath.Join(unpackDir, "manifest.yaml"), rePath); err != nil {
		t.Fatalf("repack: %v", err)
	}
	reData, err := os.ReadFile(rePath)
	if err != nil {
		t.Fatal(err)
	}
	cf, err := ccff.Decode(reData)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := codec.Unpack(cf.Section(".text").Flags(), cf.Section(".text").Data(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(raw, textData) {
		t.Fatal("repacked .text payload mismatch")
	}
	if string(cf.Section(".note").Data()) != "build 1234" {
		t.Fatal("repacked .note payload mismatch")
	}
}

func TestSectionFileName(t *testing.T) {
	cases := map[string]string{
		".text":       "000.text.bin",
		"a/b":         "000a_b.bin",
		"weird*?":     "000weird__.bin",
		"..":          "000...bin",
		`back\slash`:  "000back_slash.bin",
		"already_ok1": "000already_ok1.bin",
	}
	for name, want := range cases {
		if got := sectionFileName(0, name); got != want {
			t.Errorf("sectionFileName(0, %q) = %q, want %q", name, got, want)
		}
	}
}
