package main

import (
	"tcmbrates/internal/app"

	"github.com/sirupsen/logrus"
)

// @title TCMB Rates API
// @version 1.0
// @description Daily exchange rates published by the Central Bank of the Republic of Turkey.
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.Fatalf("Application stopped: %v", err)
	}
}
