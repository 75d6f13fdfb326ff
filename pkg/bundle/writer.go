package bundle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrOutputLocked is returned when another process is writing the same bundle.
var ErrOutputLocked = errors.New("output file is locked by another process")

const (
	notePrefix   = "// Source: "
	authorPrefix = "// Author: "
	lockSuffix   = ".lock"
)

// LockPath returns the sidecar file locked while output is being written.
func LockPath(output string) string {
	return output + lockSuffix
}

// Write truncates opts.Output and fills it from files, in the given order:
// every source note first (when enabled), then each file's lines, then the
// author line. A file that cannot be read is recorded in Report.FileErrors and
// skipped. Failures on the output itself abort the write and may leave a
// partial bundle behind.
func Write(opts Options, files []string, logger *zap.Logger) (report *Report, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	output, err := filepath.Abs(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output path: %w", err)
	}
	logger.Debug("Writing bundle", zap.String("output", output), zap.Int("files", len(files)))

	// The lock lives beside the output: Windows locks are mandatory and would
	// block writes through the handle opened by os.Create.
	lockPath := LockPath(output)
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		logger.Error("Failed to lock output file", zap.String("file", lockPath), zap.Error(err))
		return nil, fmt.Errorf("failed to lock output file: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrOutputLocked, output)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			logger.Warn("Failed to unlock output file", zap.String("file", lockPath), zap.Error(unlockErr))
			return
		}
		if rmErr := os.Remove(lockPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			logger.Debug("Failed to remove lock file", zap.String("file", lockPath), zap.Error(rmErr))
		}
	}()

	outFile, err := os.Create(output)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", output), zap.Error(err))
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil {
			logger.Error("Failed to close output file", zap.String("file", output), zap.Error(closeErr))
			if err == nil {
				report, err = nil, fmt.Errorf("failed to close output file: %w", closeErr)
			}
		}
	}()

	writer := bufio.NewWriter(outFile)
	report = &Report{Output: output}

	if opts.IncludeNote {
		for _, file := range files {
			if err := writeLine(writer, notePrefix+file); err != nil {
				return nil, fmt.Errorf("failed to write source note: %w", err)
			}
			report.Lines++
		}
	}

	for _, file := range files {
		n, fileErr, outErr := copyLines(writer, file, opts.RemoveEmptyLines)
		report.Lines += n
		if outErr != nil {
			logger.Error("Failed to write file contents",
				zap.String("file", output),
				zap.String("source", file),
				zap.Error(outErr))
			return nil, fmt.Errorf("failed to write contents of %s: %w", file, outErr)
		}
		if fileErr != nil {
			logger.Info("Skipping unreadable source file", zap.String("source", file), zap.Error(fileErr))
			report.FileErrors = multierr.Append(report.FileErrors, fmt.Errorf("%s: %w", file, fileErr))
			continue
		}
		report.Files++
	}

	if opts.Author != "" {
		if err := writeLine(writer, authorPrefix+opts.Author); err != nil {
			return nil, fmt.Errorf("failed to write author: %w", err)
		}
		report.Lines++
	}

	if err := writer.Flush(); err != nil {
		logger.Error("Failed to flush output file", zap.String("file", output), zap.Error(err))
		return nil, fmt.Errorf("failed to flush output: %w", err)
	}

	logger.Debug("Bundle written",
		zap.String("output", output),
		zap.Int("files", report.Files),
		zap.Int("lines", report.Lines))
	return report, nil
}

// copyLines streams one source file into w. readErr reports a problem with the
// source, writeErr a problem with the bundle.
func copyLines(w *bufio.Writer, path string, removeEmpty bool) (written int, readErr, writeErr error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err, nil
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if !removeEmpty || strings.TrimSpace(line) != "" {
				if werr := writeLine(w, line); werr != nil {
					return written, nil, werr
				}
				written++
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return written, nil, nil
			}
			return written, err, nil
		}
	}
}

func writeLine(w *bufio.Writer, line string) error {
	if _, err := w.WriteString(line); err != nil {
		return err
	}
	return w.WriteByte('\n')
}
