// Package audit appends guard deny events to a JSONL file with simple
// size-based rotation. Logging is opt-in (CLAUDE_ACCOUNT_GUARD_LOG) and
// strictly best-effort: the guard's fail-open contract means an unwritable
// log can never block a tool call.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/claunch/claunch/internal/guard"
	"github.com/claunch/claunch/pkg/types"
)

type Log struct {
	path       string
	maxBytes   int64
	maxBackups int

	mu   sync.Mutex
	file *os.File
}

// Open creates or opens the JSONL log at path for appending.
func Open(path string) (*Log, error) {
	if path == "" {
		return nil, fmt.Errorf("audit log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	return &Log{
		path:       path,
		maxBytes:   10 * 1024 * 1024,
		maxBackups: 3,
		file:       f,
	}, nil
}

// Append writes one event as a JSON line, filling in the id and timestamp
// when the caller left them empty.
func (l *Log) Append(ev types.GuardEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.rotateIfNeededLocked(); err != nil {
		return err
	}

	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := l.file.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// RecordDeny implements guard.Recorder. Errors are dropped on purpose.
func (l *Log) RecordDeny(in types.HookInput, d guard.Denial) {
	_ = l.Append(types.GuardEvent{
		Type:       types.EventTypeGuardDeny,
		Decision:   types.DecisionDeny,
		Account:    d.Account,
		ConfigDir:  d.ConfigDir,
		ToolName:   in.ToolName,
		MatchedDir: d.MatchedDir,
		Reason:     d.Reason,
	})
}

func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Log) rotateIfNeededLocked() error {
	if l.file == nil {
		return fmt.Errorf("audit log not open")
	}
	st, err := l.file.Stat()
	if err != nil {
		return fmt.Errorf("stat audit log: %w", err)
	}
	if st.Size() < l.maxBytes {
		return nil
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("close for rotate: %w", err)
	}

	for i := l.maxBackups - 1; i >= 1; i-- {
		from := fmt.Sprintf("%s.%d", l.path, i)
		to := fmt.Sprintf("%s.%d", l.path, i+1)
		if _, err := os.Stat(from); err == nil {
			_ = os.Rename(from, to)
		}
	}
	_ = os.Rename(l.path, l.path+".1")

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("reopen audit log: %w", err)
	}
	l.file = f
	return nil
}
