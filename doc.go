// Package ccff implements the CCFF binary container format.
//
// CCFF is a general-purpose, ELF-like container for persisting compiled
// artifacts. A container holds caller-defined metadata (an ABI version and a
// file type) plus an ordered set of named sections, each carrying a type tag,
// a 32-bit flags word, and an opaque byte payload. What the tags, flags, and
// payloads mean is entirely up to the caller; the engine only guarantees
// deterministic layout and round-trip fidelity.
//
// # File Format Overview
//
// An encoded container consists of, in order (all integers little-endian):
//   - 4 magic bytes "CCFF"
//   - 2-byte ABI version, 1-byte file type, 1-byte section count
//   - one header per section: type(1) flags(4) offset(4) length(4)
//     nameLen(1) name(nameLen)
//   - all section payloads, concatenated in section order
//
// Each header's offset field is the absolute position of that section's
// payload within the encoded buffer, so a reader can locate any payload from
// a single pass over the headers.
//
// # Basic Usage
//
// To build and encode a container:
//
//	cf := ccff.New(1, 0)
//	sec := ccff.NewSection(1, 0)
//	sec.SetData(code)
//	if _, err := cf.AddSection(".text", sec); err != nil {
//		return err
//	}
//	buf, err := cf.Encode()
//
// To decode one:
//
//	cf, err := ccff.Decode(buf)
//
// # Security Considerations
//
// Decode never panics and never reads outside the supplied buffer, no matter
// how malformed the input; errors are reported through the sentinel values in
// this package. Readers processing untrusted files can additionally tighten
// allocation bounds with [WithReadLimits] and reject duplicate names or
// non-contiguous payload layouts with [WithDuplicatePolicy] and
// [WithStrictOffsets].
//
// The engine performs no compression, checksumming, or encryption. The codec
// subpackage layers an optional payload-compression convention on top of the
// caller-defined flags word.
package ccff
