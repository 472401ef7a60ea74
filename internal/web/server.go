// Package web serves the journal as HTML pages.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/julianstephens/auri/internal/backup"
	"github.com/julianstephens/auri/internal/constants"
	"github.com/julianstephens/auri/internal/logger"
	"github.com/julianstephens/auri/internal/storage"
	"github.com/julianstephens/auri/internal/utils"
)

// Server encapsulates the Echo server and the store it serves.
type Server struct {
	Echo  *echo.Echo
	store storage.Provider
	today utils.Clock

	// backupBeforeImport copies the database aside before an import replaces
	// it. Nil when the store is not a local file.
	backupBeforeImport func() (string, error)
}

// New builds a server for store. today decides which date "/" shows.
func New(store storage.Provider, today utils.Clock) (*Server, error) {
	renderer, err := newTemplateRenderer()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Echo:  echo.New(),
		store: store,
		today: today,
	}
	if fs, ok := store.(storage.FileStore); ok {
		s.backupBeforeImport = backup.NewManager(fs.DBPath()).CreateBackup
	}

	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.Echo.Renderer = renderer
	s.Echo.HTTPErrorHandler = s.handleError

	s.configureMiddleware()
	s.initRoutes()
	return s, nil
}

func (s *Server) initRoutes() {
	s.Echo.GET("/", s.handleDay)
	s.Echo.GET("/all", s.handleAll)
	s.Echo.POST("/day", s.handleSaveDay)
	s.Echo.DELETE("/day/:id", s.handleDeleteDay)
	s.Echo.GET("/export", s.handleExport)
	s.Echo.POST("/import", s.handleImport)
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", addr)
		if err := s.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	logger.Info("HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeoutSecs*time.Second)
	defer cancel()
	if err := s.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	// Start returns once the listener is closed
	return <-errChan
}

// handleError writes HTTP errors as plain text. Anything that is not an
// *echo.HTTPError is a storage or internal failure and becomes a 500.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = fmt.Sprint(he.Message)
		if he.Internal != nil {
			logger.Debug("Request rejected", "status", code, "error", he.Internal)
		}
	} else {
		logger.Error("Request failed", "method", c.Request().Method, "path", c.Request().URL.Path, "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.String(code, message)
	}
	if err != nil {
		logger.Error("Failed to write error response", "error", err)
	}
}
