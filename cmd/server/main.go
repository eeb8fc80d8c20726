// Package main is the entry point for the ambitus API server
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Pietzcker/ambitus/pkg/api"
	"github.com/Pietzcker/ambitus/pkg/scale"
)

func main() {
	port := flag.Int("port", 8080, "Server port")
	scales := flag.String("scales", "", "TOML file with extra scale presets")
	flag.Parse()

	catalog := scale.DefaultCatalog()
	if *scales != "" {
		var err error
		if catalog, err = scale.LoadCatalogFile(*scales); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading scales: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Starting ambitus API server on port %d...\n", *port)
	fmt.Printf("Swagger docs available at http://localhost:%d/swagger/index.html\n", *port)

	if err := api.StartServer(*port, catalog); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
