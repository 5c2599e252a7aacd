package main

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	maxProcessName    = 255
	maxProcessEntries = 1 << 16
)

var errListTooLarge = errors.New("process list exceeds entry limit")

// parseProcessList turns a LIST reply into entries. The first line is a
// header and is always dropped, whatever it contains. Data lines must start
// with a PID after optional whitespace; lines that don't are skipped. The
// final line does not need a trailing newline.
//
// The returned list is never partially built into the caller's state: on
// errListTooLarge the caller keeps its previous list.
func parseProcessList(raw string) (processList, error) {
	list := processList{}
	if raw == "" {
		return list, nil
	}
	lines := strings.Split(raw, "\n")
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		entry, ok := parseProcessLine(line)
		if !ok {
			continue
		}
		if len(list) >= maxProcessEntries {
			return nil, errListTooLarge
		}
		list = append(list, entry)
	}
	return list, nil
}

func parseProcessLine(line string) (processEntry, bool) {
	s := strings.TrimLeft(line, " \t\r\v\f")
	pid := 0
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		pid = pid*10 + int(s[digits]-'0')
		if pid > 1<<31-1 {
			return processEntry{}, false
		}
		digits++
	}
	if digits == 0 {
		return processEntry{}, false
	}
	name := strings.TrimLeft(s[digits:], " \t\r\v\f")
	return processEntry{pid: pid, name: truncateBytes(name, maxProcessName)}, true
}

// truncateBytes cuts s to at most n bytes without splitting a rune.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
