package main

import (
	"os"

	"github.com/DRSN-tech/cafe-backend/internal/app"
	config "github.com/DRSN-tech/cafe-backend/internal/cfg"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
)

//	@title			Cafe backend API
//	@version		1.0
//	@description	Каталог товаров, заказы с учетом остатков, статистика продаж.
//	@host			localhost:8080
//	@BasePath		/api/v1
func main() {
	os.Exit(run(logger.NewSlogLogger()))
}

func run(log logger.Logger) int {
	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "config is invalid, cafe backend not started")
		return 1
	}

	cafe, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "cafe backend dependencies are unavailable")
		return 1
	}

	if err := cafe.Run(); err != nil {
		log.Errorf(err, "cafe backend stopped with error")
		return 1
	}

	log.Infof("cafe backend stopped")
	return 0
}
