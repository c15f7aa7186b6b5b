package utils

import (
	"flag"
	"fmt"
	"log"
	"strings"
)

type options struct {
	minlen       uint
	nodesep      float64
	outputFormat string
	outputFile   string
	task         string
	noColorize   bool
	verbose      bool
	visualize    bool
}

const (
	_DOM_TREE = iota
	_DOM_TO_DOT
	_PEG_TO_DOT
	_METRICS
)

var task = []struct{ flag, explanation string }{{
	"dom-tree",
	"Build the dominator tree for the given dependence graph and dump it",
}, {
	"dom-to-dot",
	"Create a dot graph for the dominator tree",
}, {
	"peg-to-dot",
	"Create a dot graph for the dependence graph",
}, {
	"metrics",
	"Collect metrics on the dependence graph and its dominator tree",
}}

var opts = &options{}

type optInterface struct{}

type taskInterface struct{}

func Opts() optInterface {
	return optInterface{}
}

func CanColorize(col func(...interface{}) string) func(...interface{}) string {
	if opts.noColorize {
		return func(is ...interface{}) string {
			return fmt.Sprintf(strings.Repeat("%s", len(is)), is...)
		}
	}
	return col
}

func (optInterface) NoColorize() bool {
	return opts.noColorize
}

func (optInterface) Minlen() uint {
	return opts.minlen
}
func (optInterface) Nodesep() float64 {
	return opts.nodesep
}
func (optInterface) OutputFormat() string {
	return opts.outputFormat
}
func (optInterface) OutputFile() string {
	return opts.outputFile
}
func (optInterface) Verbose() bool {
	return opts.verbose
}
func (optInterface) Visualize() bool {
	return opts.visualize
}

func (optInterface) Task() taskInterface {
	return taskInterface{}
}

func (taskInterface) IsDomTree() bool {
	return opts.task == task[_DOM_TREE].flag
}
func (taskInterface) IsDomToDot() bool {
	return opts.task == task[_DOM_TO_DOT].flag
}
func (taskInterface) IsPegToDot() bool {
	return opts.task == task[_PEG_TO_DOT].flag
}
func (taskInterface) IsMetrics() bool {
	return opts.task == task[_METRICS].flag
}

func (optInterface) OnVerbose(do func()) {
	if Opts().Verbose() {
		do()
	}
}

func init() {
	taskFlag := "\n"
	for _, task := range task {
		taskFlag += task.flag + " -- " + task.explanation + "\n"
	}
	taskFlag += "\n"

	flag.UintVar(&(opts.minlen), "minlen", 2, "Minimum edge length (for wider output).")
	flag.Float64Var(&(opts.nodesep), "nodesep", 0.35, "Minimum space between two adjacent nodes in the same rank (for taller output).")
	flag.StringVar(&(opts.outputFormat), "format", "svg", "output file format [svg | png | jpg | ...]")
	flag.StringVar(&(opts.outputFile), "output", "", "output file name for rendered dot graphs (empty for stdout dumping only)")
	flag.StringVar(&(opts.task), "task", task[_DOM_TREE].flag, "Set the task to do during execution. Options:"+taskFlag)
	flag.BoolVar(&(opts.noColorize), "no-colorize", false, "Disable pretty printer colorization")
	flag.BoolVar(&(opts.verbose), "verbose", false, "enable verbose output")
	flag.BoolVar(&(opts.visualize), "visualize", false, "enable visualization via XDot")

	// Set up logging
	log.SetFlags(log.Ltime | log.Lshortfile)
}

// Parse command line flags and return the remaining positional
// arguments (dependence graph files).
func ParseArgs() []string {
	// Calling flag.Parse in init messes up unit tests.
	// See https://stackoverflow.com/questions/60235896/flag-provided-but-not-defined-test-v
	flag.Parse()

	validTask := false
	for _, task := range task {
		if task.flag == opts.task {
			validTask = true
			break
		}
	}

	if !validTask {
		log.Fatalf("Value \"%s\" is not valid for -task", opts.task)
	}

	return flag.Args()
}
