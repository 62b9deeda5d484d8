package main

import (
	"context"
	"log"

	"github.com/seekbug-project/seek-bug/cmd"
)

func main() {
	entrypoint := cmd.NewCommand(
		context.Background(),
	)

	if err := entrypoint.Execute(); err != nil {
		log.Fatal(err)
	}
}
