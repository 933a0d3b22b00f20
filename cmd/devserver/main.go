package main

import (
	"context"
	"log"
	"os"

	"github.com/mkalinins/commportal/internal/logging"
	"github.com/mkalinins/commportal/internal/server"
	"github.com/mkalinins/commportal/internal/server/config"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewJSON(os.Stdout)

	app := server.NewApp(cfg, logger)
	app.Run(context.Background())

}
