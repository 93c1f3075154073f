package main

import (
	"log"

	"github.com/architeacher/device-registry/internal/runtime"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment variables")
	}

	runtime.New().Run()
}
