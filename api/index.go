package handler

import (
	"net/http"

	"cohost/config"
	"cohost/di"
	"cohost/shared/logger"
)

// Handler adapts the service for serverless platforms that route every
// request through a single exported function.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	server := di.InitializeService()
	server.Handler().ServeHTTP(w, r)
}
