package main

import (
	"log"

	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/server"
)

func main() {
	cfg := config.Load()
	r, err := server.NewRouter(cfg)
	if err != nil {
		log.Fatalf("setup error: %v", err)
	}

	addr := server.Addr(cfg.Port)
	log.Printf("Starting resume screener on %s (mode=%s)", addr, cfg.Mode)

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
