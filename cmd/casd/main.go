// Command casd serves the gocas tools over HTTP for agent frameworks.
//
//	casd serve --addr :8080 --config casd.toml
//	casd schema
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
