package main

import (
	"github.com/NVIDIA/housing-price-predictor/pkg/cli"
)

func main() {
	cli.Execute()
}
