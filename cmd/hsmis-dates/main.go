package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/config"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/records"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/server"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/ui"
	"github.com/joho/godotenv"
)

// Command hsmis-dates is the HSMIS tray companion: it syncs dated records
// from the HSMIS API, serves them as an iCalendar feed and an XLSX report,
// and shows them with Shamsi and Hijri dates.
//
// main returns through runMain so deferred cleanup runs before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain parses flags, sets up logging and signals, then runs the app.
func runMain() int {
	// --- Flags ---
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	flag.Parse()

	if *showVersion {
		printVersion(os.Stdout)
		return config.ExitCodeSuccess
	}

	// --- Logging (before anything that may fail) ---
	logCloser := setupLogging(*debugMode)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// --- Root context, cancelled by SIGINT/SIGTERM ---
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()
	loadEnvFile()

	// --- Application ---
	if err := run(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires the Fyne app, the feed server and the records fetcher, then
// blocks in the UI loop.
func run(ctx context.Context) error {
	a := app.NewWithID(config.AppID)

	a.Preferences().SetString(config.PrefLastRun, config.Version)
	ui.SeedPreferences(a.Preferences(), os.LookupEnv)

	port := a.Preferences().StringWithFallback(config.PrefServerPort, config.DefaultPort)
	srv := server.NewFeedServer(port)
	fetcher := records.NewHTTPFetcher()

	gui := ui.NewDatesApp(a, ctx, srv, fetcher)

	// Quit the UI when a signal cancels the root context.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	gui.Run()

	return nil
}

// printVersion writes the build information to w.
func printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		config.Commit,
		config.Date,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyBuildDate, config.Date),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// loadEnvFile reads HSMIS_* variables from .env in the working directory.
// Variables already set in the process win.
func loadEnvFile() {
	err := godotenv.Load(config.EnvFileName)
	switch {
	case err == nil:
		slog.Info(config.MsgEnvLoaded,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyFile, config.EnvFileName,
		)
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug(config.MsgEnvMissing,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyFile, config.EnvFileName,
		)
	default:
		slog.Warn(config.ErrEnvFile,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyFile, config.EnvFileName,
			config.LogKeyError, err,
		)
	}
}

// setupLogging installs a JSON slog handler writing to stdout and, when the
// cache directory is usable, to a log file truncated on each start. The
// returned closer is nil when no file was opened.
func setupLogging(debugMode bool) io.Closer {
	writers := []io.Writer{os.Stdout}
	var logFile *os.File

	if logPath, err := logFilePath(); err == nil {
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err != nil {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		} else {
			writers = append(writers, f)
			logFile = f
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	})))

	if logFile == nil {
		return nil
	}
	return logFile
}

// logFilePath returns the log file location in the user cache directory,
// creating the app directory owner-only.
func logFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return filepath.Join(appDir, config.LogFileName), nil
}
