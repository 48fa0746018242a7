package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/pipe01/cddl/internal/config"
	"github.com/pipe01/cddl/internal/dump"
	"github.com/pipe01/cddl/internal/generator"
	"github.com/pipe01/cddl/internal/repl"
	"github.com/pipe01/cddl/internal/validate"
	"github.com/pipe01/cddl/internal/workspace"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("cddl")

var (
	verbose    = kingpin.Flag("verbose", "Increase log verbosity, may be repeated").Short('v').Counter()
	configPath = kingpin.Flag("config", "Path to a cddl.toml file").Short('c').String()
	noColor    = kingpin.Flag("no-color", "Disable colored output").Bool()

	validateCmd      = kingpin.Command("validate", "Check that files are valid CDDL")
	validateReserved = validateCmd.Flag("reserved", "Reject rules and keys named after prelude types").Bool()
	validateFiles    = validateCmd.Arg("files", "Files to validate").Required().Strings()

	generateCmd    = kingpin.Command("generate", "Generate type declarations from CDDL files")
	generateTarget = generateCmd.Flag("target", "Output language").Short('t').String()
	generateOutDir = generateCmd.Flag("out-dir", "Folder to put generated files on").Short('o').String()
	generateWatch  = generateCmd.Flag("watch", "Watch files for changes and regenerate automatically").Short('w').Bool()
	generateFiles  = generateCmd.Arg("files", "Files to generate from").Required().ExistingFiles()

	dumpCmd    = kingpin.Command("dump", "Print the syntax tree of a file")
	dumpFormat = dumpCmd.Flag("format", "Output format").Short('f').Default(string(dump.FormatJSON)).Enum(dump.Formats()...)
	dumpFile   = dumpCmd.Arg("file", "File to dump").Required().ExistingFile()

	replCmd = kingpin.Command("repl", "Start an interactive tokenizer shell")
)

var (
	success = color.New(color.FgGreen, color.Bold)
	failure = color.New(color.FgRed, color.Bold)
)

func main() {
	cmd := kingpin.Parse()

	commonlog.Configure(*verbose, nil)

	if *noColor {
		color.NoColor = true
	}

	cfg, err := loadConfig()
	if err != nil {
		kingpin.Fatalf("failed to load config: %s", err)
	}

	switch cmd {
	case validateCmd.FullCommand():
		os.Exit(validateAll(cfg))

	case generateCmd.FullCommand():
		genOpts, outDir := generateOptions(cfg)

		if *generateWatch {
			err = watchFiles(genOpts, outDir)
			if err != nil {
				kingpin.Fatalf("failed to watch files: %s", err)
			}
		} else {
			err = generateAll(genOpts, outDir)
			if err != nil {
				kingpin.Fatalf("failed to generate files: %s", err)
			}
		}

	case dumpCmd.FullCommand():
		wd, _ := os.Getwd()

		as, err := workspace.New(wd).Load(*dumpFile)
		if err != nil {
			reportError(os.Stderr, *dumpFile, err)
			os.Exit(1)
		}

		if err := dump.Write(os.Stdout, as, dump.Format(*dumpFormat)); err != nil {
			kingpin.Fatalf("failed to dump %q: %s", *dumpFile, err)
		}

	case replCmd.FullCommand():
		if err := repl.Start(); err != nil {
			kingpin.Fatalf("repl: %s", err)
		}
	}
}

func loadConfig() (config.Config, error) {
	if *configPath != "" {
		return config.Load(*configPath, true)
	}

	return config.Load(config.FileName, false)
}

func validateAll(cfg config.Config) int {
	for _, fname := range *validateFiles {
		if _, err := os.Stat(fname); err != nil {
			abs, _ := filepath.Abs(fname)
			failure.Fprintf(os.Stderr, "Couldn't find CDDL file at %s\n", abs)
			return 1
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wd, _ := os.Getwd()

	files, err := workspace.New(wd).LoadAll(ctx, *validateFiles, jobs(cfg))
	if err != nil {
		failure.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}

	checkReserved := *validateReserved || cfg.Validate.ReservedNames

	status := 0

	for _, f := range files {
		err := f.Err
		if err == nil && checkReserved {
			err = validate.CheckReservedNames(f.Assignments)
		}

		if err != nil {
			reportError(os.Stderr, f.Path, err)
			status = 1
			continue
		}

		success.Printf("Valid CDDL file! ")
		fmt.Printf("(%s)\n", f.Path)
	}

	return status
}

func jobs(cfg config.Config) int {
	if cfg.Jobs > 0 {
		return cfg.Jobs
	}

	return runtime.NumCPU()
}

func generateOptions(cfg config.Config) (generator.Options, string) {
	opts := generator.Options{
		Target: generator.Target(cfg.Generate.Target),
		Header: cfg.Generate.Header,
	}
	if *generateTarget != "" {
		opts.Target = generator.Target(*generateTarget)
	}

	outDir := cfg.Generate.OutDir
	if *generateOutDir != "" {
		outDir = *generateOutDir
	}
	outDir, _ = filepath.Abs(outDir)

	return opts, outDir
}

func generateAll(genOpts generator.Options, outDir string) error {
	wd, _ := os.Getwd()
	ws := workspace.New(wd)

	for _, fname := range *generateFiles {
		outPath, err := generateFile(ws, fname, genOpts, outDir)
		if err != nil {
			return fmt.Errorf("generate file %q: %w", fname, err)
		}

		log.Infof("wrote %s", outPath)
	}

	return nil
}

func generateFile(ws *workspace.Workspace, fname string, genOpts generator.Options, outDir string) (outPath string, err error) {
	as, err := ws.Load(fname)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer

	err = generator.Visit(&buf, as, genOpts)
	if err != nil {
		return "", fmt.Errorf("generate output: %w", err)
	}

	outPath = filepath.Join(outDir, filepath.Base(fname)+".ts")

	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}

	return outPath, nil
}

func watchFiles(genOpts generator.Options, outDir string) error {
	if err := generateAll(genOpts, outDir); err != nil {
		log.Errorf("%s", err)
	}

	watcher, err := NewWatcher(genOpts, outDir)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, f := range *generateFiles {
		err = watcher.WatchFile(f)
		if err != nil {
			return fmt.Errorf("watch file %q: %w", f, err)
		}
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	log.Notice("watching files for changes...")

	<-ch
	return nil
}
