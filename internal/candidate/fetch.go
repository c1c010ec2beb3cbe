package candidate

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/sync/singleflight"
)

// Fetcher looks candidates up for a query, possibly slowly.
type Fetcher interface {
	Fetch(ctx context.Context, query string) ([]Candidate, error)
}

// FetcherFunc adapts a function into a Fetcher.
type FetcherFunc func(ctx context.Context, query string) ([]Candidate, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, query string) ([]Candidate, error) {
	return f(ctx, query)
}

// CommandFetcher runs an external program with the query as its final
// argument. Each output line is "label" or "label<TAB>value".
type CommandFetcher struct {
	Name string
	Args []string

	group singleflight.Group
}

// NewCommandFetcher splits a command line on whitespace into a fetcher.
func NewCommandFetcher(commandLine string) (*CommandFetcher, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, fmt.Errorf("candidate command is empty")
	}
	return &CommandFetcher{Name: fields[0], Args: fields[1:]}, nil
}

// Fetch implements Fetcher. Concurrent lookups for the same query share one
// process.
func (f *CommandFetcher) Fetch(ctx context.Context, query string) ([]Candidate, error) {
	v, err, _ := f.group.Do(query, func() (interface{}, error) {
		args := append(append([]string(nil), f.Args...), query)
		out, err := exec.CommandContext(ctx, f.Name, args...).Output() //nolint:gosec
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", f.Name, err)
		}
		return ParseLines(out), nil
	})
	if err != nil {
		return nil, err
	}
	return Clone(v.([]Candidate)), nil
}

// ParseLines converts "label<TAB>value" lines into candidates.
func ParseLines(data []byte) []Candidate {
	var items []Candidate
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		label, value, hasValue := strings.Cut(line, "\t")
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		c := Candidate{Label: label}
		if hasValue {
			c.Payload = value
		}
		items = append(items, c)
	}
	return items
}
