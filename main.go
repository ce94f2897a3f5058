package main

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/diamondburned/qaportal/frontserver"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"golang.org/x/net/http2"

	toml "github.com/pelletier/go-toml"
)

var configGlob = "./config*.toml"

func stderrlnf(f string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, f+"\n", v...)
}

type Config struct {
	// Address is either a TCP address or a Unix socket path prefixed with
	// "unix:".
	Address    string `toml:"address"`
	SocketPerm string `toml:"socketPerm"`

	frontserver.FrontConfig
}

func NewConfig() Config {
	return Config{
		Address:     ":8081",
		FrontConfig: frontserver.NewConfig(),
	}
}

func init() {
	pflag.StringVarP(
		&configGlob, "config", "c", configGlob,
		"Path to config file with glob support for fallback",
	)

	pflag.Usage = func() {
		stderrlnf("Usage: %s [flags...]", filepath.Base(os.Args[0]))
		stderrlnf("Flags:")
		pflag.PrintDefaults()
	}
}

// loadConfig reads all files matching the glob sorted by name, so a file
// overrides the ones sorting before it: config.user.toml overrides
// config.toml. No matches means the defaults.
func loadConfig(glob string) (Config, error) {
	var cfg = NewConfig()

	d, err := filepath.Glob(glob)
	if err != nil {
		return cfg, errors.Wrap(err, "Failed to glob")
	}

	for _, path := range d {
		f, err := ioutil.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "Failed to read globbed config file")
		}

		t, err := toml.LoadBytes(f)
		if err != nil {
			return cfg, errors.Wrapf(err, "Failed to load TOML %s", path)
		}

		if err := t.Unmarshal(&cfg); err != nil {
			return cfg, errors.Wrapf(err, "Failed to unmarshal %s", path)
		}
	}

	return cfg, nil
}

func listen(cfg Config) (net.Listener, error) {
	if !strings.HasPrefix(cfg.Address, "unix:") {
		return net.Listen("tcp", cfg.Address)
	}

	var path = strings.TrimPrefix(cfg.Address, "unix:")

	// Ensure that the socket is cleaned up because we're not gracefully
	// handling closes.
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(err, "Failed to clean up old socket")
	}

	l, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}

	if cfg.SocketPerm != "" {
		o, err := strconv.ParseUint(cfg.SocketPerm, 8, 32)
		if err != nil {
			return nil, errors.Wrap(err, "Failed to parse socket perm in octet")
		}
		if err := os.Chmod(path, os.FileMode(o)); err != nil {
			return nil, errors.Wrap(err, "Failed to chmod socket")
		}
	}

	return l, nil
}

func main() {
	pflag.Parse()

	cfg, err := loadConfig(configGlob)
	if err != nil {
		log.Fatalln("Failed to load config:", err)
	}

	f, err := frontserver.New(cfg.FrontConfig)
	if err != nil {
		log.Fatalln("Failed to create frontend:", err)
	}

	c := middleware.NewCompressor(5)
	c.SetEncoder("br", func(w io.Writer, level int) io.Writer {
		return brotli.NewWriterLevel(w, level)
	})

	mux := chi.NewMux()
	mux.Use(
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		c.Handler,
	)
	mux.Mount("/", f)

	l, err := listen(cfg)
	if err != nil {
		log.Fatalln("Failed to listen:", err)
	}

	var server = http.Server{
		Handler: mux,
	}

	// Explicitly set up HTTP/2.
	err = http2.ConfigureServer(&server, &http2.Server{
		MaxHandlers:          4096,
		MaxConcurrentStreams: 1024,
	})

	if err != nil {
		log.Fatalln("Failed to configure HTTP/2 server:", err)
	}

	log.Println("Starting HTTP/2 listener at", l.Addr())
	log.Println("Using question API at", cfg.APIBaseURL)

	go func() {
		if err := server.Serve(l); err != nil && err != http.ErrServerClosed {
			log.Fatalln("Failed to start:", err)
		}
	}()

	// Handle SIGINT and gracefully close the server.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig

	// Give the server a 10 seconds timeout for shutting down.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalln("Failed to gracefully close the server:", err)
	}
}
