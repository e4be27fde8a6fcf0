// Command testbed runs the UI against an in-process server seeded with sample
// data, so the render loop can be exercised without a real backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/taskdeck/pkg/app"
	"tableflip.dev/taskdeck/pkg/devserver"
	"tableflip.dev/taskdeck/pkg/record"
	"tableflip.dev/taskdeck/pkg/remote"
	"tableflip.dev/taskdeck/pkg/store"
	teaui "tableflip.dev/taskdeck/pkg/tui/app"
)

type options struct {
	latency time.Duration
	fail    string
	fps     int
	empty   bool
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "testbed",
		Short: "Run the UI against a seeded in-process server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	rootCmd.Flags().DurationVar(&opts.latency, "latency", 0, "delay every server response")
	rootCmd.Flags().StringVar(&opts.fail, "fail", "", "collection whose list requests fail with 500")
	rootCmd.Flags().IntVar(&opts.fps, "fps", 30, "frames per second")
	rootCmd.Flags().BoolVar(&opts.empty, "empty", false, "start without sample data")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	if opts.fps <= 0 {
		return errors.New("fps must be positive")
	}
	var failing record.Collection
	if opts.fail != "" {
		c, err := record.ParseCollection(opts.fail)
		if err != nil {
			return err
		}
		failing = c
	}

	mem := store.NewMemory()
	if !opts.empty {
		if err := seed(ctx, mem); err != nil {
			return err
		}
	}

	var handler http.Handler = devserver.New(mem, nil, devserver.WithLatency(opts.latency))
	if failing != "" {
		handler = failList(failing, handler)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	go func() { _ = srv.Serve(ln) }()
	defer func() { _ = srv.Close() }()

	client, err := remote.New("http://"+ln.Addr().String(), remote.WithLogger(zap.NewNop()))
	if err != nil {
		return err
	}

	p := teaui.NewProgram(app.New(client), teaui.Options{
		FrameInterval: time.Second / time.Duration(opts.fps),
		Context:       ctx,
	}, tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// failList answers list requests for c with 500 and passes everything else on.
func failList(c record.Collection, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && (r.URL.Path == c.Path() || r.URL.Path == c.Path()+"/") {
			http.Error(w, "testbed: forced failure", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r)
	})
}
