// Package main writes the OpenAPI document for the lm-api server without
// starting it or contacting the price source.
//
// Usage:
//
//	go run ./cmd/lm-openapi > openapi.json
//	go run ./cmd/lm-openapi -yaml > openapi.yaml
//	go run ./cmd/lm-openapi -output openapi.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"

	"github.com/tint-us/lm-api/internal/http/routes"
	"github.com/tint-us/lm-api/internal/version"
)

func main() {
	outputFile := flag.String("output", "", "Output file path (default: stdout)")
	outputYAML := flag.Bool("yaml", false, "Output as YAML instead of JSON")
	baseURL := flag.String("base-url", "http://localhost:8000", "Base URL for the API server")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().String())
		return
	}

	router := chi.NewRouter()
	api := humachi.New(router, routes.NewHumaConfig(*baseURL))
	routes.Register(api, routes.StubHandlers())

	spec := api.OpenAPI()

	var (
		data []byte
		err  error
	)
	if *outputYAML {
		data, err = yaml.Marshal(spec)
	} else {
		data, err = json.MarshalIndent(spec, "", "  ")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error marshaling OpenAPI document: %v\n", err)
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "error writing to file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "OpenAPI document written to %s\n", *outputFile)
		return
	}
	fmt.Print(string(data))
}
