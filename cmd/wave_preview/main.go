package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/waves"
)

var (
	rulesPath = flag.String("rules", "data/wave_rules.yaml", "波次规则文件路径")
	levelID   = flag.Int("level", 0, "关卡ID")
	seed      = flag.Int64("seed", 1, "随机种子")
	tier      = flag.Int("tier", -1, "难度等级，-1 表示使用关卡预设")
	count     = flag.Int("waves", 0, "波次数，0 表示使用关卡预设")
)

// wave_preview 打印某个关卡在给定种子下生成的全部波次
//
// 用法:
//
//	go run ./cmd/wave_preview -level 2 -seed 42
func main() {
	flag.Parse()

	rules, err := config.LoadWaveRules(*rulesPath)
	if err != nil {
		log.Fatalf("Failed to load wave rules: %v", err)
	}

	preset, ok := rules.Level(*levelID)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown level %d\n", *levelID)
		os.Exit(1)
	}

	difficulty := preset.Difficulty
	if *tier >= 0 {
		difficulty = *tier
	}
	waveCount := preset.Waves
	if *count > 0 {
		waveCount = *count
	}

	generator := waves.NewGenerator(rules, rand.New(rand.NewSource(*seed)))
	specs, err := generator.Generate(difficulty, waveCount, *levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Level %d (%s), tier %d, seed %d\n", preset.ID, preset.Name, difficulty, *seed)
	total := 0
	for i, spec := range specs {
		fmt.Printf("  wave %2d  size %3d  %s\n", i+1, spec.Size(), spec)
		total += spec.Size()
	}
	fmt.Printf("Total enemies: %d\n", total)
}
