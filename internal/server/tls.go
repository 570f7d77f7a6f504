// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package server

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"codeberg.org/lesgardiens/boardclub/internal/config"
	"golang.org/x/crypto/acme/autocert"
)

type tlsMode string

const (
	tlsModeOff    tlsMode = "off"
	tlsModeManual tlsMode = "manual"
	tlsModeACME   tlsMode = "acme"
)

// tlsResult carries the resolved TLS configuration.
type tlsResult struct {
	TLSConfig   *tls.Config
	HTTPHandler http.Handler // ACME challenge + HTTPS redirect, ACME mode only
	Mode        tlsMode
}

// setupTLS resolves the TLS mode from the configuration: a cert/key pair
// enables manual TLS, an https base URL on a public host enables ACME,
// anything else runs plain HTTP.
func setupTLS(cfg *config.Config) (*tlsResult, error) {
	if cfg.Server.TLSCert != "" || cfg.Server.TLSKey != "" {
		if cfg.Server.TLSCert == "" || cfg.Server.TLSKey == "" {
			return nil, fmt.Errorf("tls-cert and tls-key must both be set")
		}
		cert, err := tls.LoadX509KeyPair(cfg.Server.TLSCert, cfg.Server.TLSKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load certificate: %w", err)
		}
		return &tlsResult{
			Mode:      tlsModeManual,
			TLSConfig: &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12},
		}, nil
	}

	domain, err := acmeDomain(cfg.Server.BaseURL)
	if err != nil {
		return nil, err
	}
	if domain == "" {
		return &tlsResult{Mode: tlsModeOff}, nil
	}

	manager := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(domain),
		Cache:      autocert.DirCache(cfg.Server.TLSDir),
	}

	return &tlsResult{
		Mode:        tlsModeACME,
		TLSConfig:   manager.TLSConfig(),
		HTTPHandler: manager.HTTPHandler(nil),
	}, nil
}

// acmeDomain extracts the hostname from an https base URL. Localhost and
// bare IPs never qualify for automatic certificates.
func acmeDomain(baseURL string) (string, error) {
	if !strings.HasPrefix(baseURL, "https://") {
		return "", nil
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	host := parsed.Hostname()
	if host == "" || host == "localhost" || !strings.Contains(host, ".") || net.ParseIP(host) != nil {
		return "", nil
	}
	return host, nil
}
