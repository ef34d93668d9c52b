package di

import (
	"hotel/jobs"
	"hotel/transport/http"
)

// App is everything cmd/app runs: the HTTP server and the background jobs.
type App struct {
	HTTP      *http.HTTP
	Scheduler *jobs.Scheduler
}
