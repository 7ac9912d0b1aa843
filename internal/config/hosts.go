package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const hostsFile = "hosts.toml"

type hostsDoc struct {
	Hosts map[string]Host `toml:"hosts"`
}

func loadHosts(path string) (map[string]Host, error) {
	var doc hostsDoc
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", hostsFile, err)
	}
	out := make(map[string]Host, len(doc.Hosts))
	for name, h := range doc.Hosts {
		out[strings.ToLower(name)] = h
	}
	return out, nil
}

// SetHost stores credentials for host in hosts.toml, keeping other hosts.
// Returns the path of the written file.
func SetHost(host string, h Host) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return SetHostIn(dir, host, h)
}

// SetHostIn is like SetHost but writes into dir.
func SetHostIn(dir, host string, h Host) (string, error) {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return "", errors.New("host is required")
	}
	path := filepath.Join(dir, hostsFile)

	hosts, err := loadHosts(path)
	if err != nil {
		return "", err
	}
	if hosts == nil {
		hosts = map[string]Host{}
	}
	hosts[host] = h

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(hostsDoc{Hosts: hosts}); err != nil {
		return "", fmt.Errorf("write %s: %w", hostsFile, err)
	}
	return path, nil
}
