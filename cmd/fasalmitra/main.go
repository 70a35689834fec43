package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"fasalmitra/internal/client/cli"
	"fasalmitra/internal/client/config"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	fmt.Println("FasalMitra CLI (type 'help' for commands)")
	app.Run(context.Background())
}
