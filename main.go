package main

import (
	"github.com/campushire/placement_service/config"
	"github.com/campushire/placement_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
