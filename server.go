package main

import (
	"flag"
	"fmt"
	"log"

	"pairdiary/api/middleware"
	"pairdiary/api/routes"
	"pairdiary/config"
	"pairdiary/db"
	"pairdiary/services"

	"github.com/gin-gonic/gin"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	if err := config.LoadConfig(configPath); err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	log.Println("Starting server...")

	if err := db.ConnectDB(); err != nil {
		panic("Failed to connect to the database: " + err.Error())
	}

	if err := services.InitSessionStore(); err != nil {
		panic("Failed to initialize session store: " + err.Error())
	}

	router := gin.Default()
	router.Use(middleware.PrometheusMiddleware("pairdiary"))

	routes.PublicApi(router)

	addr := fmt.Sprintf("%s:%d", config.AppConfig.Backend.Host, config.AppConfig.Backend.Port)
	if err := router.Run(addr); err != nil {
		panic(err)
	}
}
