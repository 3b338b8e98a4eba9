package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/nguyentantai21042004/bodhiflow/internal/config"
)

// options are the command line values. Only flags the user set override config.
type options struct {
	configPath   string
	input        string
	csvPath      string
	styles       string
	folderHint   string
	recursive    bool
	language     string
	start        int
	end          int
	phase1       bool
	phase2       bool
	resume       bool
	skipExisting bool
	workers      int
	asyncWorkers int
	docx         bool

	set map[string]bool
}

func parseFlags(name string, args []string, out io.Writer) (*options, error) {
	o := &options{set: make(map[string]bool)}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&o.configPath, "config", "config.yaml", "path to the YAML config file")
	fs.StringVar(&o.input, "input", "", "source: URL, playlist, feed, file or folder")
	fs.StringVar(&o.csvPath, "csv", "", "batch CSV file (input,styles,language,output_subdir)")
	fs.StringVar(&o.styles, "styles", "", "comma separated style names")
	fs.StringVar(&o.folderHint, "folder", "", "treat a folder input as media_folder or document_folder")
	fs.BoolVar(&o.recursive, "recursive", false, "walk folder inputs recursively")
	fs.StringVar(&o.language, "language", "", "output language")
	fs.IntVar(&o.start, "start", 0, "first item (1-based) of a playlist or feed")
	fs.IntVar(&o.end, "end", 0, "last item of a playlist or feed, 0 for all")
	fs.BoolVar(&o.phase1, "phase1", true, "run acquisition")
	fs.BoolVar(&o.phase2, "phase2", true, "run refinement")
	fs.BoolVar(&o.resume, "resume", false, "skip sources that already have a transcript")
	fs.BoolVar(&o.skipExisting, "skip-existing", false, "skip refinement when the output file exists")
	fs.IntVar(&o.workers, "workers", 0, "acquisition worker processes")
	fs.IntVar(&o.asyncWorkers, "async-workers", 0, "concurrent refinement tasks")
	fs.BoolVar(&o.docx, "docx", false, "also export every output as .docx")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// apply copies user-set flags onto cfg. When neither the config nor the
// flags pick a phase, both run.
func (o *options) apply(cfg *config.Config) {
	if !cfg.Run.RunPhase1 && !cfg.Run.RunPhase2 && !o.set["phase1"] && !o.set["phase2"] {
		cfg.Run.RunPhase1, cfg.Run.RunPhase2 = true, true
	}
	if o.set["phase1"] {
		cfg.Run.RunPhase1 = o.phase1
	}
	if o.set["phase2"] {
		cfg.Run.RunPhase2 = o.phase2
	}
	if o.set["language"] {
		cfg.Run.Language = o.language
	}
	if o.set["start"] {
		cfg.Run.StartIndex = o.start
	}
	if o.set["end"] {
		cfg.Run.EndIndex = o.end
	}
	if o.set["resume"] {
		cfg.Run.Resume = o.resume
	}
	if o.set["skip-existing"] {
		cfg.Run.SkipExisting = o.skipExisting
	}
	if o.set["docx"] {
		cfg.Run.DocxExport = o.docx
	}
	if o.set["workers"] && o.workers > 0 {
		cfg.Performance.MaxWorkersProcesses = o.workers
	}
	if o.set["async-workers"] && o.asyncWorkers > 0 {
		cfg.Performance.MaxWorkersAsync = o.asyncWorkers
	}
}

func (o *options) styleNames() []string {
	var names []string
	for _, s := range strings.Split(o.styles, ",") {
		if s = strings.TrimSpace(s); s != "" {
			names = append(names, s)
		}
	}
	return names
}
