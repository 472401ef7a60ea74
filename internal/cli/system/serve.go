package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/auri/internal/cli"
	"github.com/julianstephens/auri/internal/web"
)

// ServeCmd runs the web interface until interrupted.
type ServeCmd struct {
	Addr string `help:"Address to listen on." default:"${default_addr}" env:"AURI_ADDR"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	server, err := web.New(ctx.Store, ctx.CurrentDate)
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Printf("Auri is listening on http://%s (Ctrl+C to stop)\n", c.Addr)
	return server.Serve(sigCtx, c.Addr)
}
