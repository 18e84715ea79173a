package main

import (
	"log"

	"github.com/NVIDIA/housing-price-predictor/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
