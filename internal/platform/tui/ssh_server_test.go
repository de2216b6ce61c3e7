package tui

import (
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func testSSHConfig(t *testing.T, addr string) SSHServerConfig {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = addr
	cfg.HostKeyPath = filepath.Join(dir, "keys", "host_key")
	cfg.DBPath = filepath.Join(dir, "history.db")
	cfg.Logger = log.New(io.Discard)
	return cfg
}

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to reserve a port: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()
	return addr
}

func TestSSHServerAddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to occupy a port: %v", err)
	}
	defer ln.Close()

	srv, err := NewSSHServer(testSSHConfig(t, ln.Addr().String()))
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if err == nil {
			t.Fatal("Expected a bind error on an occupied port")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe kept blocking after the listener failed")
	}

	if _, err := srv.store.RecentRolls(1); err == nil {
		t.Error("History database should be closed after a failed start")
	}
}

func TestSSHServerShutdownClosesStoreAfterServer(t *testing.T) {
	addr := freeAddr(t)
	srv, err := NewSSHServer(testSSHConfig(t, addr))
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if srv.store == nil {
		t.Fatal("Expected the history database to open")
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	// Wait for the listener
	deadline := time.Now().Add(5 * time.Second)
	for {
		conn, dialErr := net.Dial("tcp", addr)
		if dialErr == nil {
			conn.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("Server never started listening: %v", dialErr)
		}
		time.Sleep(20 * time.Millisecond)
	}

	if _, err := srv.store.RecentRolls(1); err != nil {
		t.Fatalf("Store should be usable while serving: %v", err)
	}

	if err := srv.Shutdown(); err != nil {
		t.Errorf("Shutdown() failed: %v", err)
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("ListenAndServe() after Shutdown = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return after Shutdown")
	}

	if _, err := srv.store.RecentRolls(1); err == nil {
		t.Error("History database should be closed after Shutdown")
	}
}

func TestNewSSHServerHostKeyFailureOpensNoDatabase(t *testing.T) {
	cfg := testSSHConfig(t, freeAddr(t))

	// A regular file where the key directory should go
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("Failed to write blocker file: %v", err)
	}
	cfg.HostKeyPath = filepath.Join(blocker, "host_key")

	if _, err := NewSSHServer(cfg); err == nil {
		t.Fatal("Expected an error when the host key directory cannot be created")
	}
	if _, err := os.Stat(cfg.DBPath); !os.IsNotExist(err) {
		t.Errorf("History database should not be opened on a failed start, stat err = %v", err)
	}
}

func TestNewSSHServerRequiresCatalog(t *testing.T) {
	cfg := testSSHConfig(t, freeAddr(t))
	cfg.Catalog = nil

	if _, err := NewSSHServer(cfg); err == nil {
		t.Error("Expected an error without a catalog")
	}
}
