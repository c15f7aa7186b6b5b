package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cs-au-dk/pegdom/dom"
	"github.com/cs-au-dk/pegdom/peg"
	"github.com/cs-au-dk/pegdom/utils"
	"github.com/cs-au-dk/pegdom/utils/dot"

	"github.com/fatih/color"
)

var (
	opts = utils.Opts()
	task = opts.Task()
)

func main() {
	args := utils.ParseArgs()
	if len(args) == 0 {
		log.Fatalln("No dependence graph file given")
	}

	for _, path := range args {
		processFile(path)
	}
}

func processFile(path string) {
	g, err := peg.ParseFile(path)
	if err != nil {
		log.Fatalln("Failed to parse dependence graph:", err)
	}

	opts.OnVerbose(func() {
		fmt.Println(g)
		fmt.Println()
	})

	if task.IsPegToDot() {
		writeDot(g.ToDotGraph(), g.Name())
		return
	}

	log.Printf("Building dominator tree for %s...", color.CyanString(g.Name()))
	start := time.Now()
	t := dom.Build(g)
	utils.VerbosePrint("Dominance analysis took %s\n", time.Since(start))
	log.Println("Dominator tree done")

	switch {
	case task.IsDomTree():
		t.Dump(os.Stdout)
	case task.IsDomToDot():
		writeDot(t.ToDotGraph(), fmt.Sprintf("%s-domtree", g.Name()))
	case task.IsMetrics():
		gatherMetrics(g, t)
	}
}

func writeDot(dg *dot.DotGraph, name string) {
	if opts.Visualize() {
		dg.ShowDot()
		return
	}

	if out := opts.OutputFile(); out != "" {
		var buf bytes.Buffer
		if err := dg.WriteDot(&buf); err != nil {
			log.Fatalln(err)
		}
		img, err := dot.DotToImage(out, opts.OutputFormat(), buf.Bytes())
		if err != nil {
			log.Fatalln("Rendering", name, "failed:", err)
		}
		log.Println("Rendered", img)
		return
	}

	if err := dg.WriteDot(os.Stdout); err != nil {
		log.Fatalln(err)
	}
}
