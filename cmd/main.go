package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/dasdy/gridfit/cmd/gridfit"
	"github.com/dasdy/gridfit/logging"
	"gitlab.com/greyxor/slogor"
)

func main() {
	slog.SetDefault(slog.New(logging.ContextHandler{
		Handler: slogor.NewHandler(os.Stderr,
			slogor.SetLevel(logging.LevelFromEnv("GRIDFIT_LOG_LEVEL", slog.LevelInfo)),
			slogor.SetTimeFormat(time.DateTime),
			slogor.ShowSource()),
	}))

	gridfit.Execute()
}
