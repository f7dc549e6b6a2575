// /home/dbeesley/go/src/github.com/davidbeesley/runst/sanitizer/sanitizer.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 08. 2026 by David Beesley
// (c) 2026 David Beesley
// Time-stamp: <2026-08-30 17:26:19 dbeesley>

// Package sanitizer cleans up the text clients hand us. Clients send
// arbitrary bytes: broken UTF-8, DOS line endings, markup, megabytes of
// log output. Cleaning is strictly repair-and-bound: invalid sequences
// are replaced, CR/CRLF become LF, overlong text is cut at a rune
// boundary. Valid text comes back out byte-for-byte, including newlines,
// angle brackets, ampersands, quotes and anything non-ASCII. Markup is
// never interpreted here, only optionally stripped for renderers that
// cannot display it.
package sanitizer

import (
	"strings"
	"unicode/utf8"
)

// Default length limits, in bytes.
const (
	DefaultMaxSummary = 1024
	DefaultMaxBody    = 16384
)

// Sanitizer normalizes summary and body strings.
type Sanitizer struct {
	maxSummary int
	maxBody    int
}

// New creates a Sanitizer with the default length limits.
func New() *Sanitizer {
	return NewWithLimits(DefaultMaxSummary, DefaultMaxBody)
} // func New() *Sanitizer

// NewWithLimits creates a Sanitizer with the given length limits.
// A limit of 0 or less means unlimited.
func NewWithLimits(maxSummary, maxBody int) *Sanitizer {
	return &Sanitizer{
		maxSummary: maxSummary,
		maxBody:    maxBody,
	}
} // func NewWithLimits(maxSummary, maxBody int) *Sanitizer

// Summary normalizes a notification summary.
func (s *Sanitizer) Summary(raw string) string {
	return truncate(normalize(raw), s.maxSummary)
} // func (s *Sanitizer) Summary(raw string) string

// Body normalizes a notification body. Embedded newlines survive,
// multi-line bodies are expected.
func (s *Sanitizer) Body(raw string) string {
	return truncate(normalize(raw), s.maxBody)
} // func (s *Sanitizer) Body(raw string) string

func normalize(raw string) string {
	if !utf8.ValidString(raw) {
		raw = strings.ToValidUTF8(raw, string(utf8.RuneError))
	}

	if strings.ContainsRune(raw, '\r') {
		raw = strings.ReplaceAll(raw, "\r\n", "\n")
		raw = strings.ReplaceAll(raw, "\r", "\n")
	}

	return raw
} // func normalize(raw string) string

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}

	var i = max
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}

	return s[:i]
} // func truncate(s string, max int) string

// The markup subset the body-markup capability covers. Anything not
// in this set is literal text.
var markupTags = map[string]bool{
	"b": true, "/b": true,
	"i": true, "/i": true,
	"u": true, "/u": true,
	"a": true, "/a": true,
}

var markupEntities = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", "\"",
	"&apos;", "'",
	"&amp;", "&",
)

// StripMarkup renders a body down to plain text for display paths that
// do not understand the markup subset. Recognized tags are removed,
// the five minimal entities are decoded, everything else - including
// unknown tags and unknown entities - stays exactly as it was.
func StripMarkup(body string) string {
	if !strings.ContainsRune(body, '<') {
		return markupEntities.Replace(body)
	}

	var buf strings.Builder
	buf.Grow(len(body))

	for {
		var open = strings.IndexByte(body, '<')
		if open == -1 {
			buf.WriteString(body)
			break
		}

		var close = strings.IndexByte(body[open:], '>')
		if close == -1 {
			buf.WriteString(body)
			break
		}

		close += open

		if isMarkupTag(body[open+1 : close]) {
			buf.WriteString(body[:open])
		} else {
			buf.WriteString(body[:close+1])
		}

		body = body[close+1:]
	}

	return markupEntities.Replace(buf.String())
} // func StripMarkup(body string) string

func isMarkupTag(inner string) bool {
	if markupTags[strings.ToLower(inner)] {
		return true
	}

	// hyperlink with attributes, e.g. <a href="...">
	var fields = strings.Fields(inner)
	return len(fields) > 1 && strings.EqualFold(fields[0], "a")
} // func isMarkupTag(inner string) bool
