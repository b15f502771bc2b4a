package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HTTPService envuelve un *http.Server como Service.
type HTTPService struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	logger          *zap.Logger

	// listener opcional (tests con puerto efímero).
	listener net.Listener
}

func NewHTTPService(srv *http.Server, shutdownTimeout time.Duration, logger *zap.Logger) *HTTPService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPService{srv: srv, shutdownTimeout: shutdownTimeout, logger: logger}
}

// WithListener hace que Start sirva sobre ln en lugar de srv.Addr.
func (h *HTTPService) WithListener(ln net.Listener) *HTTPService {
	h.listener = ln
	return h
}

func (h *HTTPService) Start() error {
	var err error
	if h.listener != nil {
		h.logger.Info("http listening", zap.String("addr", h.listener.Addr().String()))
		err = h.srv.Serve(h.listener)
	} else {
		h.logger.Info("http listening", zap.String("addr", h.srv.Addr))
		err = h.srv.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (h *HTTPService) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()
	if err := h.srv.Shutdown(ctx); err != nil {
		h.logger.Warn("http shutdown", zap.Error(err))
	}
}
