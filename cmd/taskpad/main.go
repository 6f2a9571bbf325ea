package main

import (
	"fmt"
	"os"

	"taskpad/internal/config"
	"taskpad/internal/store"
	"taskpad/internal/ui"
)

func main() {
	cfg, err := config.LoadOrCreate(config.ResolveConfigPath())
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.StorePath)
	if err != nil {
		fmt.Printf("failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := ui.Run(st, cfg); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}
