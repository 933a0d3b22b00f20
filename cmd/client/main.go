package main

import (
	"context"
	"log"
	"os"

	"github.com/mkalinins/commportal/internal/client/cli"
	"github.com/mkalinins/commportal/internal/client/config"
	"github.com/mkalinins/commportal/internal/logging"
)

func main() {

	cfg := config.Load()
	logger := logging.NewText(os.Stderr)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// Run closes the app on exit.
	app.Run(context.Background())

}
