package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"taskui/internal/config"
	"taskui/internal/exitcode"
	"taskui/internal/service"
	"taskui/internal/taskview"
	"taskui/internal/web"
)

func init() {
	Register(&WebCmd{})
}

// WebCmd serves the task manager page over HTTP.
type WebCmd struct {
	addr string
}

// SetAddr sets the listen address (for testing).
func (c *WebCmd) SetAddr(addr string) {
	c.addr = addr
}

func (c *WebCmd) Name() string       { return "web" }
func (c *WebCmd) Aliases() []string  { return []string{"serve"} }
func (c *WebCmd) Synopsis() string   { return "Serve the task manager web page" }
func (c *WebCmd) Usage() string      { return "taskui web [--addr <host:port>]" }
func (c *WebCmd) NeedsService() bool { return true }

func (c *WebCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", "", "")
}

func (c *WebCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	addr := cfg.Addr
	if c.addr != "" {
		addr = c.addr
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	view := taskview.New(svc, cfg.Logger())
	srv := web.NewServer(view, cfg.Logger())

	if !cfg.Quiet {
		fmt.Fprintf(out, "serving on http://%s\n", addr)
	}
	// a bind failure is the environment's, not the user's input
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
