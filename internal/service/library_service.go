package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
	"github.com/tejashwikalptaru/playring/internal/domain"
	"github.com/tejashwikalptaru/playring/internal/ports"
)

const libraryServiceName = "LibraryService"

// DefaultSettleDelay is how long a watched file must stay quiet before it is imported.
const DefaultSettleDelay = 500 * time.Millisecond

// LibraryService scans folders of audio files and imports them into the
// active playlist. All operations are thread-safe via sync.RWMutex.
type LibraryService struct {
	// Dependencies (injected)
	tags     ports.TagReader
	playlist *PlaylistService
	bus      ports.EventBus
	logger   *slog.Logger

	// State
	scanning      bool
	cancelScan    context.CancelFunc
	supportedExts []string
	settle        time.Duration

	// Concurrency control
	mu sync.RWMutex
}

// NewLibraryService creates a new library service.
func NewLibraryService(
	tags ports.TagReader,
	playlist *PlaylistService,
	bus ports.EventBus,
	logger *slog.Logger,
) *LibraryService {
	return &LibraryService{
		tags:     tags,
		playlist: playlist,
		bus:      bus,
		logger:   logger,
		settle:   DefaultSettleDelay,
		supportedExts: []string{
			".mp3",
			".flac",
			".ogg", ".oga",
			".m4a", ".m4b", ".m4p", ".mp4", ".alac",
			".dsf",
		},
	}
}

// SetSettleDelay changes the quiet period used by Watch.
func (s *LibraryService) SetSettleDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settle = d
}

// ScanFolder scans a folder recursively for audio files and reads their tags.
// Files that cannot be read are skipped. Publishes progress events during
// scanning. Canceling ctx or calling CancelScan stops the scan with
// domain.ErrScanCancelled and the tracks read so far.
func (s *LibraryService) ScanFolder(ctx context.Context, folderPath string) ([]domain.TrackInfo, error) {
	if _, err := os.Stat(folderPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, folderPath)
		}
		return nil, domain.NewServiceError(libraryServiceName, "ScanFolder", "cannot access folder", err)
	}

	s.mu.Lock()
	if s.scanning {
		s.mu.Unlock()
		return nil, domain.NewServiceError(libraryServiceName, "ScanFolder", "cannot start scan", domain.ErrScanInProgress)
	}
	s.scanning = true
	ctx, cancel := context.WithCancel(ctx)
	s.cancelScan = cancel
	s.mu.Unlock()

	// Ensure cleanup
	defer func() {
		cancel()
		s.mu.Lock()
		s.scanning = false
		s.cancelScan = nil
		s.mu.Unlock()
	}()

	s.logger.Info("library scan started", slog.String("path", folderPath))
	s.bus.Publish(domain.NewScanStartedEvent(folderPath))

	files, err := s.collectAudioFiles(ctx, folderPath)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.bus.Publish(domain.NewScanCancelledEvent("scan cancelled"))
			return nil, domain.ErrScanCancelled
		}
		return nil, domain.NewServiceError(libraryServiceName, "ScanFolder", "failed to walk folder", err)
	}

	tracks := make([]domain.TrackInfo, 0, len(files))
	total := len(files)

	for i, filePath := range files {
		if ctx.Err() != nil {
			s.bus.Publish(domain.NewScanCancelledEvent("scan cancelled"))
			return tracks, domain.ErrScanCancelled
		}

		track, err := s.ExtractMetadata(filePath)
		if err != nil {
			s.logger.Debug("skipping unreadable file",
				slog.String("path", filePath),
				slog.String("error", err.Error()))
		} else {
			tracks = append(tracks, track)
		}

		s.bus.Publish(domain.NewScanProgressEvent(domain.ScanProgress{
			CurrentFile:  filePath,
			FilesScanned: i + 1,
			TotalFiles:   total,
			TracksFound:  len(tracks),
		}))
	}

	s.logger.Info("library scan completed",
		slog.String("path", folderPath),
		slog.Int("files", total),
		slog.Int("tracks", len(tracks)))
	s.bus.Publish(domain.NewScanCompletedEvent(tracks))

	return tracks, nil
}

// Import appends tracks to the active playlist in order.
func (s *LibraryService) Import(ctx context.Context, tracks []domain.TrackInfo) ([]domain.Song, error) {
	return s.playlist.Seed(ctx, trackSource(tracks), false)
}

// ScanAndImport scans folderPath and imports every track found.
func (s *LibraryService) ScanAndImport(ctx context.Context, folderPath string) ([]domain.Song, error) {
	tracks, err := s.ScanFolder(ctx, folderPath)
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, tracks)
}

// Watch imports audio files that appear in dir until ctx is canceled.
// A file is imported once it has had no write for the settle delay, so
// partially copied files are not read early. Watch blocks; run it in its
// own goroutine.
func (s *LibraryService) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return domain.NewServiceError(libraryServiceName, "Watch", "failed to create watcher", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return domain.NewServiceError(libraryServiceName, "Watch", "failed to watch "+dir, err)
	}

	s.mu.RLock()
	settle := s.settle
	s.mu.RUnlock()

	s.logger.Info("watching library folder", slog.String("path", dir))

	pending := make(map[string]time.Time)
	var flush <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 || !s.IsFormatSupported(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()
			if flush == nil {
				flush = time.After(settle)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("library watcher error", slog.String("error", err.Error()))

		case now := <-flush:
			flush = nil
			var ready []string
			for path, at := range pending {
				if now.Sub(at) >= settle {
					ready = append(ready, path)
					delete(pending, path)
				}
			}
			if len(pending) > 0 {
				flush = time.After(settle)
			}
			slices.Sort(ready)
			s.importFiles(ctx, ready)
		}
	}
}

func (s *LibraryService) importFiles(ctx context.Context, paths []string) {
	tracks := lo.FilterMap(paths, func(path string, _ int) (domain.TrackInfo, bool) {
		track, err := s.ExtractMetadata(path)
		if err != nil {
			s.logger.Warn("cannot import watched file",
				slog.String("path", path),
				slog.String("error", err.Error()))
			return domain.TrackInfo{}, false
		}
		return track, true
	})
	if len(tracks) == 0 {
		return
	}

	if _, err := s.Import(ctx, tracks); err != nil && ctx.Err() == nil {
		s.logger.Warn("import of watched files failed", slog.String("error", err.Error()))
	}
}

// CancelScan cancels the currently running scan operation.
func (s *LibraryService) CancelScan() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.scanning {
		return domain.NewServiceError(libraryServiceName, "CancelScan", "no scan in progress", nil)
	}

	if s.cancelScan != nil {
		s.cancelScan()
	}

	return nil
}

// IsScanning returns true if a scan is currently in progress.
func (s *LibraryService) IsScanning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scanning
}

// IsFormatSupported checks if a file format is supported.
func (s *LibraryService) IsFormatSupported(filePath string) bool {
	return slices.Contains(s.supportedExts, strings.ToLower(filepath.Ext(filePath)))
}

// GetSupportedFormats returns the list of supported file extensions.
func (s *LibraryService) GetSupportedFormats() []string {
	return slices.Clone(s.supportedExts)
}

// collectAudioFiles recursively collects all audio files in a directory,
// in lexical order.
func (s *LibraryService) collectAudioFiles(ctx context.Context, folderPath string) ([]string, error) {
	files := make([]string, 0)

	err := filepath.WalkDir(folderPath, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return context.Canceled
		}
		if err != nil {
			// Skip files/folders we can't access
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if s.IsFormatSupported(path) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// ExtractMetadata reads the tags of a single file.
func (s *LibraryService) ExtractMetadata(filePath string) (domain.TrackInfo, error) {
	if !s.IsFormatSupported(filePath) {
		return domain.TrackInfo{}, domain.ErrUnsupportedFormat
	}

	f, err := os.Open(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.TrackInfo{}, domain.ErrFileNotFound
	}
	if err != nil {
		return domain.TrackInfo{}, err
	}
	defer f.Close()

	return s.tags.ReadTags(filePath, f)
}

// Shutdown cancels any running scan.
func (s *LibraryService) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scanning && s.cancelScan != nil {
		s.cancelScan()
	}

	return nil
}

// trackSource adapts scanned tracks to ports.SongSource.
type trackSource []domain.TrackInfo

func (t trackSource) Name() string { return "library" }

func (t trackSource) Songs(context.Context) ([]domain.SongInput, error) {
	return lo.Map(t, func(track domain.TrackInfo, _ int) domain.SongInput {
		return track.Input()
	}), nil
}

var _ ports.SongSource = trackSource(nil)
