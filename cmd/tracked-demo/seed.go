package main

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

type cardSeed struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Estimate int      `yaml:"estimate"`
	Done     bool     `yaml:"done"`
	Tags     []string `yaml:"tags"`
}

type boardSeed struct {
	Board struct {
		ID    string `yaml:"id"`
		Title string `yaml:"title"`
	} `yaml:"board"`
	Cards   []cardSeed `yaml:"cards"`
	Archive []cardSeed `yaml:"archive"`
}

// loadSeed reads the seed at path, or the embedded one when path is empty.
func loadSeed(path string) (*boardSeed, error) {
	data := defaultSeed
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read seed: %w", err)
		}
	}

	var seed boardSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if seed.Board.Title == "" {
		return nil, fmt.Errorf("parse seed: board title is required")
	}
	return &seed, nil
}
