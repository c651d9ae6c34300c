package main

import (
	"github.com/AnaLarisa/nutriWave-api/config"
	"github.com/AnaLarisa/nutriWave-api/routes"
	"github.com/AnaLarisa/nutriWave-api/utils"
)

func main() {
	config.InitDB()
	config.InitRedis()
	utils.InitS3()
	utils.InitTextract()
	r := routes.SetupRouter()
	r.Run(":8080")
}
