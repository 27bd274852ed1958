// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
)

// docgen reads docs/commands/<cmd>.md and writes, for each command,
//   - docs/man/share/man1/prefctl-<cmd>.1, the whole page through md2man
//   - docs/tldr/prefctl-<cmd>.md, built from the short description and the
//     Quick examples block

const (
	binary  = "prefctl"
	homeURL = "https://github.com/staranto/prefcache"
)

func main() {
	var (
		repoRoot      string
		onlyIfChanged bool
	)
	flag.StringVar(&repoRoot, "root", ".", "repo root")
	flag.BoolVar(&onlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	if err := generate(repoRoot, onlyIfChanged); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generate(root string, onlyIfChanged bool) error {
	commandsDir := filepath.Join(root, "docs", "commands")
	manOutDir := filepath.Join(root, "docs", "man", "share", "man1")
	tldrOutDir := filepath.Join(root, "docs", "tldr")

	for _, d := range []string{manOutDir, tldrOutDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", d, err)
		}
	}

	entries, err := os.ReadDir(commandsDir)
	if err != nil {
		return fmt.Errorf("reading commands dir %s: %w", commandsDir, err)
	}

	var processed int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		cmd := strings.TrimSuffix(e.Name(), ".md")
		raw, err := os.ReadFile(filepath.Join(commandsDir, e.Name()))
		if err != nil {
			return err
		}

		manPath := filepath.Join(manOutDir, fmt.Sprintf("%s-%s.1", binary, cmd))
		if err := writeFile(manPath, md2man.Render(raw), onlyIfChanged); err != nil {
			return fmt.Errorf("writing man page for %s: %w", cmd, err)
		}

		tldrPath := filepath.Join(tldrOutDir, fmt.Sprintf("%s-%s.md", binary, cmd))
		if err := writeFile(tldrPath, []byte(buildTLDR(cmd, string(raw))), onlyIfChanged); err != nil {
			return fmt.Errorf("writing tldr page for %s: %w", cmd, err)
		}
		processed++
	}

	if processed == 0 {
		return fmt.Errorf("no command markdown found under %s", commandsDir)
	}
	return nil
}

func writeFile(path string, content []byte, onlyIfChanged bool) error {
	if onlyIfChanged {
		old, err := os.ReadFile(path)
		switch {
		case err == nil && bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(content)):
			return nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return err
		}
	}
	return os.WriteFile(path, content, 0o644)
}

var (
	h1Re      = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	sectionRe = regexp.MustCompile(`(?mi)^#{2,}\s+(.+)$`)
)

// section returns the body under the first "## name" heading, up to the
// next heading.
func section(md, name string) string {
	locs := sectionRe.FindAllStringSubmatchIndex(md, -1)
	for i, loc := range locs {
		if !strings.EqualFold(strings.TrimSpace(md[loc[2]:loc[3]]), name) {
			continue
		}
		end := len(md)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		return md[loc[1]:end]
	}
	return ""
}

func title(md string) string {
	if m := h1Re.FindStringSubmatch(md); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// shortDescription is the first paragraph of the Short description section.
func shortDescription(md string) string {
	var words []string
	for _, ln := range strings.Split(strings.TrimSpace(section(md, "Short description")), "\n") {
		if strings.TrimSpace(ln) == "" {
			break
		}
		words = append(words, strings.TrimSpace(ln))
	}
	return strings.Join(words, " ")
}

type example struct {
	Desc string
	Cmd  string
}

// quickExamples reads the first fenced block of the Quick examples section.
// A "# comment" line describes the command line that follows it.
func quickExamples(md string) []example {
	body := section(md, "Quick examples")
	start := strings.Index(body, "```")
	if start < 0 {
		return nil
	}
	body = body[start+3:]
	if nl := strings.Index(body, "\n"); nl >= 0 {
		body = body[nl+1:]
	}
	end := strings.Index(body, "```")
	if end < 0 {
		return nil
	}

	var (
		exs  []example
		desc string
	)
	for _, ln := range strings.Split(body[:end], "\n") {
		s := strings.TrimSpace(ln)
		switch {
		case s == "":
		case strings.HasPrefix(s, "#"):
			desc = strings.TrimSpace(strings.TrimPrefix(s, "#"))
		default:
			if desc == "" {
				desc = "Example"
			}
			exs = append(exs, example{Desc: desc, Cmd: strings.Join(strings.Fields(s), " ")})
			desc = ""
		}
	}
	return exs
}

func buildTLDR(cmd, md string) string {
	summary := shortDescription(md)
	if summary == "" {
		summary = title(md)
	}
	if summary == "" {
		summary = binary + " " + cmd
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s-%s\n\n", binary, cmd)
	fmt.Fprintf(&b, "> %s\n", summary)
	fmt.Fprintf(&b, "> More information: %s.\n\n", homeURL)

	exs := quickExamples(md)
	if len(exs) == 0 {
		exs = []example{{Desc: "Show help for the command", Cmd: binary + " " + cmd + " --help"}}
	}
	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s:\n\n`%s`\n", ex.Desc, ex.Cmd)
	}
	return b.String()
}
