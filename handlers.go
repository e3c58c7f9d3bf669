package labsite

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// httpErrorHandler serves the theme's 404.html for missing files and logs
// server errors.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		page, readErr := os.ReadFile(filepath.Join(s.Config.OutputPath, "404.html"))
		if readErr == nil {
			_ = c.HTMLBlob(http.StatusNotFound, page)
			return
		}
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		s.log.Error("server error", zap.Error(err))
	}
	s.Echo.DefaultHTTPErrorHandler(err, c)
}
