package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRenderPanels(t *testing.T) {
	h := newHarness(t, 80, 24)
	h.rt.sess.processes = processList{{pid: 1, name: "init"}, {pid: 234, name: "nginx"}}
	h.rt.sess.statusText = "Connected to 127.0.0.1:5002"
	h.rt.sess.lastReply = "Process 9 stopped"
	for _, r := range "lis" {
		h.rt.input.insert(r)
	}

	h.rt.render()

	procH, inputH, _ := computeLayout(24, 80)
	require.Contains(t, screenRow(h.screen, 0), "Processes")
	require.Contains(t, screenRow(h.screen, 1), "PID      NAME")
	require.Contains(t, screenRow(h.screen, 2), "1        init")
	require.Contains(t, screenRow(h.screen, 3), "234      nginx")
	require.Contains(t, screenRow(h.screen, procH), "Command")
	require.Contains(t, screenRow(h.screen, procH+1), "remote@127.0.0.1:5002> lis")
	status := screenRow(h.screen, procH+inputH+1)
	require.Contains(t, status, "Connected to 127.0.0.1:5002 | Process 9 stopped")
	require.Contains(t, status, "2 processes")
	require.NotContains(t, screenRow(h.screen, 0), "[*]")
}

func TestRenderEmptyListAndFocusMarker(t *testing.T) {
	h := newHarness(t, 80, 24)
	h.rt.layout.focused = focusProcess

	h.rt.render()

	require.Contains(t, screenText(h.screen), emptyProcessMessage)
	require.Contains(t, screenRow(h.screen, 0), "[*]")
}

func TestRenderProcessesScrolled(t *testing.T) {
	p := newPanel(" Processes ", 0, 0, 10, 40)
	list := make(processList, 30)
	for i := range list {
		list[i] = processEntry{pid: i + 1, name: "worker"}
	}
	renderBorder(p)
	renderProcesses(p, list, 5)

	require.True(t, strings.HasPrefix(p.win.rowText(0), "+"))
	require.Contains(t, p.win.rowText(2), "6        worker")
	last := p.visibleRows() + 1
	require.Contains(t, p.win.rowText(last), "12       worker")
	require.True(t, strings.HasPrefix(p.win.rowText(last+1), "+"))
}

func TestRenderTruncatesLongNames(t *testing.T) {
	p := newPanel(" Processes ", 0, 0, 6, 30)
	renderBorder(p)
	renderProcesses(p, processList{{pid: 1, name: strings.Repeat("x", 100)}}, 0)
	row := p.win.rowText(2)
	require.Len(t, row, 30)
	require.True(t, strings.HasSuffix(row, "|"))
}

func TestRenderInputKeepsCursorVisible(t *testing.T) {
	p := newPanel(" Command ", 0, 0, 5, 40)
	line := newInputLine(inputCapacity)
	for i := 0; i < 60; i++ {
		line.insert(rune('a' + i%26))
	}
	renderBorder(p)
	renderInput(p, line, formatPrompt("10.0.0.1", 5002))
	require.True(t, p.win.cursor)
	require.Less(t, p.win.curCol, p.width-1)
	require.Equal(t, 1, p.win.curRow)
}

func TestStatusSummary(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	sess := &session{}
	require.Equal(t, "0 processes ", statusSummary(sess, now))

	sess.processes = processList{{pid: 1, name: "init"}}
	sess.refreshed = now.Add(-2 * time.Minute)
	require.Equal(t, "1 process · refreshed 2 minutes ago ", statusSummary(sess, now))

	sess.processes = make(processList, 1234)
	require.True(t, strings.HasPrefix(statusSummary(sess, now), "1,234 processes"))
}

func TestStatusSummaryDroppedWhenNarrow(t *testing.T) {
	p := newPanel(" Status ", 0, 0, 3, 14)
	sess := &session{statusText: "Connected to 10.0.0.1:5002", processes: make(processList, 5)}
	renderBorder(p)
	renderStatus(p, sess, time.Now())
	require.NotContains(t, p.win.rowText(1), "processes")
	require.Contains(t, p.win.rowText(1), "Connected")
}

func TestHelpWindowFits(t *testing.T) {
	h := newHarness(t, 80, 24)
	win := renderHelp(h.screen)
	require.LessOrEqual(t, win.width, 80)
	require.Contains(t, win.rowText(2), "LIST")
	win = renderStartPrompt(h.screen, newInputLine(8))
	require.Contains(t, win.rowText(0), "Start process")
}
