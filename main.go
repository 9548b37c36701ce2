package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nstehr/brood/agent"
	"github.com/nstehr/brood/config"
	"github.com/nstehr/brood/ipc"
	"github.com/nstehr/brood/process"
	"github.com/nstehr/brood/rules"
	"github.com/nstehr/brood/store"
)

const banner = `
██████╗ ██████╗  ██████╗  ██████╗ ██████╗
██╔══██╗██╔══██╗██╔═══██╗██╔═══██╗██╔══██╗
██████╔╝██████╔╝██║   ██║██║   ██║██║  ██║
██╔══██╗██╔══██╗██║   ██║██║   ██║██║  ██║
██████╔╝██║  ██║╚██████╔╝╚██████╔╝██████╔╝
╚═════╝ ╚═╝  ╚═╝ ╚═════╝  ╚═════╝ ╚═════╝

Scripted Zerg Macro`

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "brood:", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	slog.Info("starting brood", "socket", cfg.Socket, "ws", cfg.WSAddr, "journal", cfg.JournalDir, "store", cfg.StorePath)

	if err := run(cfg); err != nil {
		slog.Error("brood stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	gates, err := rules.CompileGates(cfg.Gates)
	if err != nil {
		return err
	}
	opts := agent.Options{
		Thresholds: cfg.Thresholds,
		Gates:      gates,
		Disabled:   cfg.Disabled,
		JournalDir: cfg.JournalDir,
	}
	if cfg.JournalDir != "" {
		if err := os.MkdirAll(cfg.JournalDir, 0o755); err != nil {
			return fmt.Errorf("journal dir: %w", err)
		}
	}
	if cfg.StorePath != "" {
		st, err := store.Open(cfg.StorePath)
		if err != nil {
			return err
		}
		defer st.Close()
		opts.Store = st
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serve := func(fc ipc.FrameConn) { handleConn(fc, opts) }

	if cfg.Socket != "" {
		listener, err := listenUnix(cfg.Socket)
		if err != nil {
			return err
		}
		defer listener.Close()
		defer os.Remove(cfg.Socket)
		slog.Info("listening on domain socket", "path", cfg.Socket)
		go acceptLoop(ctx, listener, serve)
	}

	if cfg.WSAddr != "" {
		srv := &http.Server{Addr: cfg.WSAddr, Handler: ipc.NewWSHandler(serve), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			slog.Info("listening for websocket bridges", "addr", cfg.WSAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("websocket listener failed", "error", err)
				stop()
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	// The bridge is started only once we are listening, so its first connect
	// attempt succeeds.
	var bridgeDone <-chan struct{}
	if cfg.Bridge.Command != "" {
		mgr := process.NewManager(cfg.Bridge.Grace)
		if err := mgr.Start(ctx, cfg.Bridge.Command, cfg.Bridge.Args...); err != nil {
			return err
		}
		defer func() {
			if err := mgr.Close(); err != nil {
				slog.Warn("bridge exited", "error", err)
			}
		}()
		bridgeDone = mgr.Done()
	}

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case <-bridgeDone:
		slog.Info("bridge exited, shutting down")
	}
	return nil
}

func listenUnix(path string) (net.Listener, error) {
	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("clean up socket %s: %w", path, err)
	}
	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket %s: %w", path, err)
	}
	return listener, nil
}

func acceptLoop(ctx context.Context, listener net.Listener, serve func(ipc.FrameConn)) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				if errors.Is(err, net.ErrClosed) {
					return
				}
				slog.Error("failed to accept connection", "error", err)
				continue
			}
		}
		slog.Info("new connection accepted")
		go serve(ipc.NewSocketConn(conn))
	}
}

func handleConn(fc ipc.FrameConn, opts agent.Options) {
	c := ipc.NewConnection(fc, nil)
	a := agent.New(c, opts)
	c.RegisterHandler(ipc.TypeHello, func(env ipc.Envelope) (*ipc.Envelope, error) {
		resp, err := a.HandleHello(env)
		c.Player = a.Player
		return resp, err
	})
	c.RegisterHandler(ipc.TypeObservation, a.HandleObservation)
	c.RegisterHandler(ipc.TypeGameEnd, a.HandleGameEnd)
	if err := c.ReadLoop(); err != nil {
		slog.Warn("connection closed", "player", c.Player, "error", err)
	}
	// A bridge that drops without game_end leaves the match abandoned.
	a.Abandon()
}
