// Command txtar creates, extracts, and lists txtar archives, tar-style.
//
// The codec itself never touches the file system; all I/O lives here.
package main

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/meigma/txtar"
)

const usage = `usage: txtar <command> [flags]

Commands:
  create <path>...   pack files and directories into an archive
  x                  extract an archive
  t                  list archive contents

Run 'txtar <command> --help' for command flags.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "create":
		err = runCreate(os.Args[2:])
	case "x", "extract":
		err = runExtract(os.Args[2:])
	case "t", "list":
		err = runList(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "txtar: unknown command %q\n", os.Args[1])
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "txtar: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runCreate(args []string) error {
	flags := pflag.NewFlagSet("create", pflag.ExitOnError)
	output := flags.StringP("output", "o", "", "write the archive to `file` instead of stdout")
	verbose := flags.BoolP("verbose", "v", false, "report each file added")
	if err := flags.Parse(args); err != nil {
		return err
	}
	inputs := flags.Args()
	if len(inputs) == 0 {
		return fmt.Errorf("create: no input paths")
	}
	log := newLogger(*verbose)

	a := txtar.New()
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := addDir(a, input, log); err != nil {
				return err
			}
			continue
		}
		if err := addFile(a, input, filepath.Base(input), log); err != nil {
			return err
		}
	}

	out, err := txtar.Encode(a)
	if err != nil {
		return err
	}
	if *output == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(*output, out, 0o644); err != nil {
		return err
	}
	log.Info("archive written", "path", *output, "files", a.Len())
	return nil
}

func addDir(a *txtar.Archive, dir string, log *slog.Logger) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		return addFile(a, path, filepath.ToSlash(rel), log)
	})
}

func addFile(a *txtar.Archive, path, name string, log *slog.Logger) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := a.AddFile(txtar.File{Name: name, Content: content}); err != nil {
		return err
	}
	log.Info("added", "name", name, "bytes", len(content))
	return nil
}

func runExtract(args []string) error {
	flags := pflag.NewFlagSet("x", pflag.ExitOnError)
	input := flags.StringP("input", "i", "", "archive `file` to extract (default: stdin)")
	dir := flags.StringP("directory", "C", ".", "extract into `dir`")
	includeEdits := flags.Bool("include-edits", false, "also write edit sections as files")
	verbose := flags.BoolP("verbose", "v", false, "report each file extracted")
	if err := flags.Parse(args); err != nil {
		return err
	}
	log := newLogger(*verbose)

	a, err := readArchive(*input)
	if err != nil {
		return err
	}

	for _, f := range a.Files() {
		if f.Edit != nil && !*includeEdits {
			log.Info("skipped edit section", "name", f.Name)
			continue
		}
		if !filepath.IsLocal(filepath.FromSlash(f.Name)) {
			return fmt.Errorf("refusing to extract non-local path %q", f.Name)
		}
		dst := filepath.Join(*dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, f.Content, 0o644); err != nil {
			return err
		}
		log.Info("extracted", "name", f.Name, "bytes", len(f.Content))
	}
	return nil
}

func runList(args []string) error {
	flags := pflag.NewFlagSet("t", pflag.ExitOnError)
	input := flags.StringP("input", "i", "", "archive `file` to list (default: stdin)")
	verbose := flags.BoolP("verbose", "v", false, "show encoding and size")
	if err := flags.Parse(args); err != nil {
		return err
	}

	a, err := readArchive(*input)
	if err != nil {
		return err
	}

	for _, f := range a.Files() {
		if !*verbose {
			fmt.Println(f.Name)
			continue
		}
		kind := f.Encoding.String()
		if f.Edit != nil {
			kind = "edit"
		}
		fmt.Printf("%s\t%s\t%d\n", f.Name, kind, len(f.Content))
	}
	return nil
}

func readArchive(path string) (*txtar.Archive, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return txtar.Decode(data)
}
