package main

import (
	"github.com/sirupsen/logrus"

	_ "github.com/komiharuu/Trello-Project/docs"
	"github.com/komiharuu/Trello-Project/internal/config"
	"github.com/komiharuu/Trello-Project/internal/server"
)

// @title           Trello Project API
// @version         1.0
// @description     Collaborative board backend with invitations and membership.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		logrus.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
