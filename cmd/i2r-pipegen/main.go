package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/image2radiomics/i2r/pkg/pipeline"
)

func main() {
	var (
		reference  = flag.String("r", "", "reference (training) pipeline file")
		output     = flag.String("n", "", "new testing pipeline file to write")
		strategy   = flag.String("s", pipeline.StrategyAuto, "input folder strategy: auto or suffix")
		modelDir   = flag.String("p", "", "reference run folder holding the models and statistics")
		logSuffix  = flag.String("suffix", "testing", "suffix inserted into log file names")
		addPredict = flag.Bool("predict", false, "append a PREDICT block when the reference has none")
	)
	flag.Parse()

	if *reference == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "usage: i2r-pipegen -r <reference pipeline> -n <new pipeline> [-s auto|suffix] [-p <model folder>] [-suffix <log suffix>] [-predict]")
		os.Exit(2)
	}
	if *strategy == "manual" {
		log.Fatalf("[Pipegen] The manual strategy was removed; edit the generated file instead (use -s auto or -s suffix)")
	}

	src, err := pipeline.LoadFromFile(*reference)
	if err != nil {
		log.Fatalf("[Pipegen] Error loading reference pipeline %s: %v", *reference, err)
	}

	blocks, err := pipeline.GenerateTesting(src, pipeline.GenerateOptions{
		Strategy:    *strategy,
		ModelFolder: *modelDir,
		LogSuffix:   *logSuffix,
		AddPredict:  *addPredict,
	})
	if err != nil {
		log.Fatalf("[Pipegen] %v", err)
	}

	header := fmt.Sprintf(" Testing pipeline generated from %s", filepath.Base(*reference))
	if err := pipeline.WriteFile(*output, header, blocks); err != nil {
		log.Fatalf("[Pipegen] Error writing %s: %v", *output, err)
	}
	log.Printf("[Pipegen] Wrote %s (%d block(s))", *output, len(blocks))
}
