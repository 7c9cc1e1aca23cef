package main

import (
	"context"
	"fmt"
	"log"
	"os"
)

func main() {
	log.SetFlags(log.Lshortfile)

	err := newCLI().Execute(context.Background())
	if err != nil {
		// zerr prints the error chain and metadata with %+v
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
