package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/GoPolymarket/polyproxy/internal/model"
	"github.com/GoPolymarket/polyproxy/internal/pkg/logger"
)

// AuditRepo is the optional durable sink behind the audit service.
type AuditRepo interface {
	Insert(ctx context.Context, entry *model.AuditLog) error
}

// AuditCleaner deletes persisted audit entries older than the retention
// horizon.
type AuditCleaner interface {
	Cleanup(ctx context.Context, olderThan time.Duration) error
}

// RetentionSweep runs Cleanup on a fixed interval until the context is
// cancelled. A zero retention or interval disables the sweep.
func RetentionSweep(ctx context.Context, cleaner AuditCleaner, retention, interval time.Duration) {
	if cleaner == nil || retention <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := cleaner.Cleanup(ctx, retention); err != nil {
				logger.Error("audit retention sweep failed", "error", err)
			}
		}
	}
}

// AuditService drains audit entries asynchronously so request handling never
// blocks on the sink. Entries go to a daily JSONL file and, when configured,
// to the database repo.
type AuditService struct {
	logChan chan *model.AuditLog
	logFile *os.File
	repo    AuditRepo
	done    chan struct{}
}

func NewAuditService(logDir string, repo AuditRepo) (*AuditService, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}

	filename := filepath.Join(logDir, "audit-"+time.Now().Format("2006-01-02")+".jsonl")
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	svc := &AuditService{
		logChan: make(chan *model.AuditLog, 1000),
		logFile: f,
		repo:    repo,
		done:    make(chan struct{}),
	}
	go svc.drain()
	return svc, nil
}

// Log enqueues an entry. When the buffer is full the entry is dropped to
// protect the request path.
func (s *AuditService) Log(entry *model.AuditLog) {
	select {
	case s.logChan <- entry:
	default:
		logger.Warn("audit buffer full, dropping entry", "path", entry.Path)
	}
}

func (s *AuditService) drain() {
	defer close(s.done)
	encoder := json.NewEncoder(s.logFile)
	for entry := range s.logChan {
		if s.repo != nil {
			if err := s.repo.Insert(context.Background(), entry); err != nil {
				logger.Error("failed to persist audit entry", "error", err)
			}
		}
		if err := encoder.Encode(entry); err != nil {
			logger.Error("failed to write audit entry", "error", err)
		}
	}
}

// Close flushes the queue and releases the file.
func (s *AuditService) Close() {
	close(s.logChan)
	<-s.done
	_ = s.logFile.Close()
}
