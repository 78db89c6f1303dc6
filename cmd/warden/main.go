package main

import (
	"github.com/example/warden/internal/cli"
	"github.com/example/warden/internal/metrics"
)

func main() {
	metrics.EmitBuildInfo()
	cli.Execute()
}
