// Package server publishes the generated records calendar and the XLSX
// report to local clients over HTTP.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/config"
)

// cacheItem stores a rendered document and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

func newCacheItem(data []byte) *cacheItem {
	hash := sha256.Sum256(data)
	return &cacheItem{
		data:         data,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}
}

// FeedServer serves the ICS feed at "/" and the XLSX report at "/report.xlsx".
type FeedServer struct {
	// Documents are read on every request and replaced only on sync, so
	// readers load them lock-free.
	feed   atomic.Pointer[cacheItem]
	report atomic.Pointer[cacheItem]
	Port   string
}

// NewFeedServer creates a new instance of the server.
func NewFeedServer(port string) *FeedServer {
	return &FeedServer{
		Port: port,
	}
}

// Handler returns the routing table of the server.
func (s *FeedServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, func(w http.ResponseWriter, r *http.Request) {
		serveCached(w, r, s.feed.Load(), config.MimeTextCalendar)
	})
	mux.HandleFunc(config.RouteReport, func(w http.ResponseWriter, r *http.Request) {
		serveCached(w, r, s.report.Load(), config.MimeXLSX)
	})
	return mux
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *FeedServer) Start(ctx context.Context) error {
	if err := validPort(s.Port); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served calendar.
func (s *FeedServer) Update(data []byte) {
	item := newCacheItem(data)
	s.feed.Store(item)
	logUpdate(config.RouteRoot, item)
}

// UpdateReport atomically replaces the served XLSX report.
func (s *FeedServer) UpdateReport(data []byte) {
	item := newCacheItem(data)
	s.report.Store(item)
	logUpdate(config.RouteReport, item)
}

func logUpdate(route string, item *cacheItem) {
	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyRoute, route,
		config.LogKeySizeBytes, len(item.data),
		config.LogKeyETag, item.etag,
	)
}

// serveCached writes a cached document with HTTP caching support.
func serveCached(w http.ResponseWriter, r *http.Request, item *cacheItem, contentType string) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	// Nothing synced yet.
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, contentType)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// validPort rejects ports the listener could never bind.
func validPort(port string) error {
	if port == "" {
		return errors.New(config.ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return errors.New(config.ErrPortNumber)
	}
	if n < config.MinPort || n > config.MaxPort {
		return errors.New(config.ErrPortRange)
	}
	return nil
}
