package commands

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mobile-next/screenlocator/config"
	"github.com/mobile-next/screenlocator/engine"
	"github.com/mobile-next/screenlocator/recognition"
	"github.com/mobile-next/screenlocator/screens"
	"github.com/mobile-next/screenlocator/utils"
)

// CommandResponse represents a standardized response format for all commands
type CommandResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) *CommandResponse {
	return &CommandResponse{
		Status: "ok",
		Data:   data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(err error) *CommandResponse {
	return &CommandResponse{
		Status: "error",
		Error:  err.Error(),
	}
}

// Tuner is implemented by recognizers whose settings can change at runtime.
type Tuner interface {
	SetImageLibrary(dir string) error
	SetWhitelist(chars string)
	SetTimeout(timeout time.Duration)
}

// Session is the process-wide engine together with the collaborators it was
// built from. The engine keeps no locks of its own, so every command takes
// mu for its whole duration.
type Session struct {
	mu      sync.Mutex
	engine  *engine.Engine
	screens engine.ScreenProvider
	source  recognition.Source
	tuner   Tuner
	closers []func() error

	// waitTimeout is used by wait and vanish requests that name no timeout
	waitTimeout time.Duration
}

var (
	sessionMu sync.Mutex
	session   *Session
)

// SetSession installs the session used by all commands. It is called once
// at startup by the cli or server, and by tests.
func SetSession(s *Session) {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	session = s
}

// NewSession wires an engine over the given collaborators. source and tuner
// may be nil when capture and runtime settings are not needed.
func NewSession(screenProvider engine.ScreenProvider, recognizer engine.Recognizer, source recognition.Source) *Session {
	s := &Session{
		engine:      engine.New(screenProvider, recognizer),
		screens:     screenProvider,
		source:      source,
		waitTimeout: recognition.DefaultTimeout,
	}
	if tuner, ok := recognizer.(Tuner); ok {
		s.tuner = tuner
	}
	return s
}

// OnShutdown registers cleanup run by Shutdown.
func (s *Session) OnShutdown(fn func() error) {
	s.closers = append(s.closers, fn)
}

// agentReadyTimeout bounds how long Setup waits for a screen agent to come up.
var agentReadyTimeout = 5 * time.Second

// Setup builds a session from configuration and installs it.
func Setup(cfg *config.Config) error {
	provider, closeProvider, err := newScreenProvider(cfg)
	if err != nil {
		return err
	}

	if cfg.Snapshot.Path == "" {
		closeProvider()
		return fmt.Errorf("no snapshot path configured, set [snapshot] path in the config file")
	}
	source := recognition.NewSnapshot(cfg.Snapshot.Path, cfg.SnapshotOrigin())

	opts, err := cfg.RecognitionOptions()
	if err != nil {
		closeProvider()
		return err
	}

	recognizer, err := recognition.New(source, opts)
	if err != nil {
		closeProvider()
		return fmt.Errorf("failed to create recognizer: %w", err)
	}

	s := NewSession(provider, recognizer, source)
	s.waitTimeout = opts.Timeout
	s.engine.SetPollInterval(time.Duration(float64(time.Second) / opts.ScanRate))
	s.OnShutdown(recognizer.Close)
	s.OnShutdown(func() error {
		closeProvider()
		return nil
	})

	target, err := cfg.TargetScreen()
	if err != nil {
		_ = s.shutdown()
		return err
	}
	if target != 0 {
		if err := s.engine.SetTargetScreen(target); err != nil {
			_ = s.shutdown()
			return err
		}
	}

	SetSession(s)
	utils.Verbose("Session ready: screens=%s snapshot=%s", cfg.Screens.Provider, cfg.Snapshot.Path)
	return nil
}

func newScreenProvider(cfg *config.Config) (engine.ScreenProvider, func(), error) {
	switch strings.ToLower(cfg.Screens.Provider) {
	case config.ProviderAgent:
		host, port, err := utils.ParseHostPort(cfg.Screens.Agent)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid screen agent: %w", err)
		}
		client := screens.NewAgentClient(host, port)
		if err := client.WaitForReady(agentReadyTimeout); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("screen agent at %s is not ready: %w", cfg.Screens.Agent, err)
		}
		return client, client.Close, nil

	default:
		if cfg.Screens.Layout == "" {
			return nil, nil, fmt.Errorf("no screen layout configured, set [screens] layout in the config file")
		}
		layout, err := screens.LoadLayout(cfg.Screens.Layout)
		if err != nil {
			return nil, nil, err
		}
		return layout, func() {}, nil
	}
}

var errNoSession = errors.New("no session configured, check the config file")

// withSession runs fn with the session locked.
func withSession(fn func(s *Session) *CommandResponse) *CommandResponse {
	sessionMu.Lock()
	s := session
	sessionMu.Unlock()

	if s == nil {
		return NewErrorResponse(errNoSession)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

func (s *Session) shutdown() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// Shutdown releases the installed session.
func Shutdown() error {
	sessionMu.Lock()
	s := session
	session = nil
	sessionMu.Unlock()

	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdown()
}
