// Package txtar implements a line-oriented text archive format that packs
// multiple named file bodies into one blob and back, extended with binary
// file support and edit sections.
//
// An archive is free preamble text followed by named sections:
//
//	optional preamble text
//	-- file1.txt --
//	content of file1
//	-- file2.txt --
//	content of file2
//
// # Binary Extension
//
// Content that is not valid UTF-8, or that contains a line matching the
// section marker pattern, cannot be stored as plain text without corrupting
// the archive structure. Such sections start with a [.base64] line:
//
//	-- image.jpg --
//	[.base64]
//	/9j/4AAQSkZJRgABAQEAYABgAAD/2wBD
//
// The decision is made by the [Classifier] at encode time, re-derived from
// content rather than trusted from cached metadata.
//
// # Edit Sections
//
// A section may describe a text substitution against a named target instead
// of literal content. The body opens with an [edit:...] tag, the old content
// follows, and a "-- new --" line introduces the replacement:
//
//	-- f.txt --
//	[edit:other.txtar:f.txt]
//	old line
//	-- new --
//	new line
//
// # Quick Start
//
// Build and serialize an archive:
//
//	a := txtar.New()
//	err := a.AddFile(txtar.File{Name: "hello.txt", Content: []byte("hello\n")})
//	if err != nil {
//	    return err
//	}
//	out, err := txtar.Encode(a)
//
// Parse one back:
//
//	a, err := txtar.Decode(out)
//	if err != nil {
//	    return err
//	}
//	f := a.Find("hello.txt")
//
// The codec operates on in-memory buffers only; file-system I/O and CLI
// wrapping live in cmd/txtar.
package txtar
