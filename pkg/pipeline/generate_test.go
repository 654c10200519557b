package pipeline

import (
	"strings"
	"testing"
)

func referencePipeline() Pipeline {
	return Pipeline{Blocks: []Block{
		{Module: GlobalParameters, Params: Params{"verbose": true}},
		{Module: "CHECK_FOLDER", Params: Params{"inputFolder": "/train/raw", "log": "check.log"}},
		{Module: "REORGANIZE", Params: Params{
			"inputFolder": "/train/raw", "outputFolder": "/train/ready", "log": "reorg.log"}},
		{Module: "DCM2NII", Params: Params{
			"inputFolder": "/train/ready", "outputFolder": "/train/nii", "skip": int64(2)}},
		{Module: "F-NORMALIZE", Params: Params{
			"inputFolder": "/train/nii", "mode": "Internal"}},
	}}
}

func TestGenerateTestingAuto(t *testing.T) {
	blocks, err := GenerateTesting(referencePipeline(), GenerateOptions{
		Strategy:    StrategyAuto,
		ModelFolder: "/train/run1",
	})
	if err != nil {
		t.Fatalf("Failed to generate: %v", err)
	}
	if len(blocks) != 5 {
		t.Fatalf("Expected 5 blocks, got %d", len(blocks))
	}

	verifyCheckFolderRewiring(t, blocks[1])
	verifyChainRewiring(t, blocks)
	verifyModelRewiring(t, blocks[4])
}

// CHECK_FOLDER reads the raw drop folder without consuming the chain position.
func verifyCheckFolderRewiring(t *testing.T, b Block) {
	if b.Params["inputFolder"] != InputFromCLI {
		t.Errorf("Expected CHECK_FOLDER input %q, got %v", InputFromCLI, b.Params["inputFolder"])
	}
}

func verifyChainRewiring(t *testing.T, blocks []Block) {
	// REORGANIZE is the first consuming block, DCM2NII chains after it.
	if blocks[2].Params["inputFolder"] != InputFromCLI {
		t.Errorf("Expected REORGANIZE input %q, got %v", InputFromCLI, blocks[2].Params["inputFolder"])
	}
	if blocks[3].Params["inputFolder"] != PreviousOutputFolder {
		t.Errorf("Expected DCM2NII input %s, got %v", PreviousOutputFolder, blocks[3].Params["inputFolder"])
	}

	// Per-run output options must be dropped.
	for _, b := range blocks[2:4] {
		if b.Params.Has("outputFolder") {
			t.Errorf("%s: outputFolder should be dropped, got %v", b.Module, b.Params["outputFolder"])
		}
		if b.Params.Has("skip") {
			t.Errorf("%s: skip should be dropped", b.Module)
		}
	}
}

func verifyModelRewiring(t *testing.T, b Block) {
	if b.Params["modelFolder"] != "/train/run1" {
		t.Errorf("Expected modelFolder '/train/run1', got %v", b.Params["modelFolder"])
	}
	if b.Params["mode"] != "External" {
		t.Errorf("Expected mode 'External', got %v", b.Params["mode"])
	}
}

func TestGenerateTestingSuffix(t *testing.T) {
	blocks, err := GenerateTesting(referencePipeline(), GenerateOptions{
		Strategy: StrategySuffix,
	})
	if err != nil {
		t.Fatalf("Failed to generate: %v", err)
	}

	if blocks[2].Params["outputFolderSuffix"] != "ready" {
		t.Errorf("Expected REORGANIZE suffix 'ready', got %v", blocks[2].Params["outputFolderSuffix"])
	}
	if blocks[3].Params["outputFolderSuffix"] != "nii" {
		t.Errorf("Expected DCM2NII suffix 'nii', got %v", blocks[3].Params["outputFolderSuffix"])
	}
}

func TestGenerateTestingLogSuffix(t *testing.T) {
	blocks, err := GenerateTesting(referencePipeline(), GenerateOptions{Strategy: StrategyAuto})
	if err != nil {
		t.Fatalf("Failed to generate: %v", err)
	}

	log, _ := blocks[1].Params["log"].(string)
	if log != "check_testing.log" {
		t.Errorf("Expected log 'check_testing.log', got %q", log)
	}
}

func TestGenerateTestingAddPredict(t *testing.T) {
	blocks, err := GenerateTesting(referencePipeline(), GenerateOptions{
		Strategy:    StrategyAuto,
		ModelFolder: "/train/run1",
		AddPredict:  true,
	})
	if err != nil {
		t.Fatalf("Failed to generate: %v", err)
	}

	last := blocks[len(blocks)-1]
	if last.Module != "PREDICT" {
		t.Fatalf("Expected appended PREDICT block, got %s", last.Module)
	}
	if last.Params["inputFolder"] != PreviousOutputFolder {
		t.Errorf("Expected PREDICT input %s, got %v", PreviousOutputFolder, last.Params["inputFolder"])
	}
	if last.Params["modelFolder"] != "/train/run1" {
		t.Errorf("Expected PREDICT modelFolder '/train/run1', got %v", last.Params["modelFolder"])
	}
}

func TestGenerateTestingUnknownStrategy(t *testing.T) {
	_, err := GenerateTesting(referencePipeline(), GenerateOptions{Strategy: "manual"})
	if err == nil || !strings.Contains(err.Error(), "unknown input folder strategy") {
		t.Errorf("Expected unknown-strategy error, got: %v", err)
	}
}

func TestGenerateTestingDoesNotMutateSource(t *testing.T) {
	src := referencePipeline()
	if _, err := GenerateTesting(src, GenerateOptions{Strategy: StrategyAuto}); err != nil {
		t.Fatalf("Failed to generate: %v", err)
	}
	if src.Blocks[2].Params["inputFolder"] != "/train/raw" {
		t.Errorf("Source pipeline was mutated: %v", src.Blocks[2].Params["inputFolder"])
	}
}
