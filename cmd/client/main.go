package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/bookwise/internal/client/cli"
	"github.com/dmitrijs2005/bookwise/internal/client/config"
)

func main() {

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())

}
