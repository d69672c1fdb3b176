package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pankaj1920/shop/internal/credential"
	"github.com/pankaj1920/shop/internal/model"
	"github.com/pankaj1920/shop/internal/netwatch"
	"github.com/pankaj1920/shop/internal/prefs"
	"github.com/pankaj1920/shop/internal/store"
	"github.com/pankaj1920/shop/internal/theme"
)

// Options configure the shop application.
type Options struct {
	ConfigPath string // empty uses ~/.config/shop/config.yaml
	PrefsPath  string // empty uses ~/.config/shop/prefs.toml
	ProductID  int    // zero restores the last product
	InitConfig bool   // write the effective config and exit
	SetToken   bool   // store the API token read from TokenInput and exit
	TokenInput io.Reader
}

// Run boots the shop TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.SetToken {
		if err := storeToken(opts.TokenInput, credential.Set); err != nil {
			return err
		}
		fmt.Println("stored API token in the system keyring")
		return nil
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = model.DefaultConfigPath()
	}

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if opts.InitConfig {
		if err := model.SaveConfig(configPath, cfg); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Printf("wrote %s\n", configPath)
		return nil
	}

	theme.Apply(cfg.Display.Theme)

	if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	logFile, err := tea.LogToFile(cfg.Log.Path, "shop")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	s, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	repo, backend, err := newRepository(cfg, s)
	if err != nil {
		return err
	}

	watcher := netwatch.New(repo, time.Duration(cfg.API.HealthIntervalSec)*time.Second)
	defer watcher.Stop()

	root := New(ctx, Deps{
		Repository: repo,
		Backend:    backend,
		Shipping:   cfg.Shipping,
		ProductID:  opts.ProductID,
		Prefs:      prefs.Load(opts.PrefsPath),
		PrefsPath:  opts.PrefsPath,
		Watcher:    watcher,
	})

	p := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// storeToken saves the first line of r as the API token.
func storeToken(r io.Reader, set func(key, value string) error) error {
	if r == nil {
		return errors.New("no token input")
	}
	sc := bufio.NewScanner(r)
	var token string
	if sc.Scan() {
		token = strings.TrimSpace(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if token == "" {
		return errors.New("read token: empty input")
	}
	if err := set(credential.APITokenKey, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}
