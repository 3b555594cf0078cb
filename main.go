package main

import (
	"log"

	"github.com/joho/godotenv"

	"AtlasHR/CronJobs"
	"AtlasHR/FiberConfig"
	"AtlasHR/Models"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	Models.Connect()

	reconciler := CronJobs.NewReconcileChecker(false)
	if err := reconciler.Start(); err != nil {
		log.Printf("Failed to start reconciliation scheduler: %v", err)
	}

	FiberConfig.FiberConfig()
}
