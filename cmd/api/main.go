package main

import (
	"log"

	"recommendation-backend/internal/shared/config"
	"recommendation-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()
	r, err := server.NewRouter(cfg)
	if err != nil {
		log.Fatalf("router init error: %v", err)
	}

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s (env=%s provider=%s)", addr, cfg.Env, cfg.LLMProvider)

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
