package main

import (
	"context"
	"net/http"

	legacychat "github.com/tymeless/legacychat"
	"github.com/tymeless/legacychat/internal/mylog"
	"github.com/tymeless/legacychat/server"
)

func serve(ctx context.Context, app *legacychat.App, logger *mylog.Logger, addr string) error {
	srv := server.New(app, logger, addr)

	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Error("failed to shutdown server", mylog.Err(err))
		}
	}()

	defer logger.Info("server stopped")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
