package cmd

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
)

func resolveURLs(positional []string, urlsFile string) ([]string, error) {
	trimmed := strings.TrimSpace(urlsFile)
	if trimmed != "" {
		if len(positional) > 0 {
			return nil, fmt.Errorf("cannot combine positional URLs with --urls-file")
		}
		return readURLsFile(trimmed)
	}

	urls := make([]string, 0, len(positional))
	for _, raw := range positional {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		if err := validateURL(value); err != nil {
			return nil, err
		}
		urls = append(urls, value)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("at least one URL is required")
	}
	return urls, nil
}

func readURLsFile(path string) ([]string, error) {
	var reader io.Reader
	if path == "-" {
		reader = os.Stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close() // nolint:errcheck
		reader = file
	}

	urls := make([]string, 0)
	scanner := bufio.NewScanner(reader)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		if err := validateURL(raw); err != nil {
			return nil, fmt.Errorf("invalid URL on line %d: %w", line, err)
		}
		urls = append(urls, raw)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(urls) == 0 {
		return nil, fmt.Errorf("no URLs found")
	}
	return urls, nil
}

func validateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q in %q", parsed.Scheme, raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}
