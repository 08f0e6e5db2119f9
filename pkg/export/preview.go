package export

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// Preview port range tried when no port is configured.
const (
	PreviewPortRangeStart = 9000
	PreviewPortRangeEnd   = 9100
)

// PreviewServer serves an export bundle locally.
type PreviewServer struct {
	bundlePath string
	port       int
	server     *http.Server
	log        logrus.FieldLogger
}

// NewPreviewServer creates a preview server for the bundle in bundlePath.
func NewPreviewServer(bundlePath string, port int, log logrus.FieldLogger) *PreviewServer {
	if log == nil {
		l := logrus.New()
		l.SetOutput(os.Stderr)
		log = l
	}
	return &PreviewServer{bundlePath: bundlePath, port: port, log: log}
}

// Port returns the port the server listens on.
func (p *PreviewServer) Port() int { return p.port }

// URL returns the address of the preview page.
func (p *PreviewServer) URL() string {
	return fmt.Sprintf("http://localhost:%d", p.port)
}

func (p *PreviewServer) check() error {
	if _, err := os.Stat(p.bundlePath); err != nil {
		return fmt.Errorf("bundle path does not exist: %s", p.bundlePath)
	}
	if _, err := os.Stat(filepath.Join(p.bundlePath, BundleIndex)); err != nil {
		return fmt.Errorf("no %s found in bundle: %s", BundleIndex, p.bundlePath)
	}
	return nil
}

// Handler returns the HTTP handler serving the bundle.
func (p *PreviewServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", noCache(http.FileServer(http.Dir(p.bundlePath))))
	mux.HandleFunc("/__preview__/status", p.status)
	return mux
}

// Serve runs the server until ctx is cancelled, then shuts it down.
func (p *PreviewServer) Serve(ctx context.Context) error {
	if err := p.check(); err != nil {
		return err
	}
	p.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", p.port),
		Handler:           p.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		if err := p.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()
	p.log.WithFields(logrus.Fields{"url": p.URL(), "bundle": p.bundlePath}).Info("preview server running")

	select {
	case <-ctx.Done():
		p.log.Info("shutting down preview server")
		return p.Stop()
	case err := <-errc:
		return err
	}
}

// Stop shuts the server down, waiting up to five seconds for requests.
func (p *PreviewServer) Stop() error {
	if p.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.server.Shutdown(ctx)
}

func (p *PreviewServer) status(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	hasIndex := true
	if _, err := os.Stat(filepath.Join(p.bundlePath, BundleIndex)); err != nil {
		hasIndex = false
	}
	var files int
	_ = filepath.Walk(p.bundlePath, func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files++
		}
		return nil
	})
	fmt.Fprintf(w, `{"status":"running","port":%d,"bundle_path":%q,"has_index":%v,"file_count":%d}`,
		p.port, p.bundlePath, hasIndex, files)
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

// FindAvailablePort returns the first port in [start, end] that can be bound.
func FindAvailablePort(start, end int) (int, error) {
	for port := start; port <= end; port++ {
		l, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			l.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", start, end)
}

// OpenInBrowser opens url with the platform's default handler.
func OpenInBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

// Preview serves bundlePath on a free port until ctx is cancelled,
// optionally opening the browser once the server is up.
func Preview(ctx context.Context, bundlePath string, open bool, log logrus.FieldLogger) error {
	port, err := FindAvailablePort(PreviewPortRangeStart, PreviewPortRangeEnd)
	if err != nil {
		return fmt.Errorf("could not find available port: %w", err)
	}
	srv := NewPreviewServer(bundlePath, port, log)
	if open {
		go func() {
			time.Sleep(500 * time.Millisecond)
			if err := OpenInBrowser(srv.URL()); err != nil {
				srv.log.WithError(err).Warnf("could not open browser; open %s manually", srv.URL())
			}
		}()
	}
	return srv.Serve(ctx)
}
