package main

import (
	"os"

	"riskwatch/internal/cli"
)

// @title RiskWatch API
// @version 1.0
// @description Student dropout-risk scoring, wellbeing screening and counselor alerts
// @host localhost:8080
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
