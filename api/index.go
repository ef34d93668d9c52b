package handler

import (
	"net/http"
	"sync"

	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
)

var (
	app     *di.App
	appOnce sync.Once
)

// Handler is the serverless entry point. Background jobs do not run here.
func Handler(w http.ResponseWriter, r *http.Request) {
	appOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		app = di.InitializeApp()
	})

	r.RequestURI = r.URL.String()

	app.HTTP.Handler().ServeHTTP(w, r)
}
