package cmd

import (
	"github.com/urfave/cli"
)

// Build the scene accelerator and display its statistics.
func ShowBVHStats(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	stats, err := sc.Stats()
	if err != nil {
		return err
	}

	displaySceneStats(sc.Name, stats)
	return nil
}
