package main

import (
	"errors"
	"strings"
)

type commandKind int

const (
	cmdList commandKind = iota
	cmdStart
	cmdStop
	cmdExit
	cmdHelp
	cmdMonitor
	cmdOther
)

type command struct {
	kind commandKind
	wire string
}

var (
	errEmptyCommand = errors.New("empty command")
	errStartUsage   = errors.New("usage: START <command>")
	errStopUsage    = errors.New("usage: STOP <pid>")
	errMonitorUsage = errors.New("usage: MONITOR <pid>")
)

var commandAliases = map[string]string{
	"1":   "LIST",
	"2":   "START",
	"3":   "STOP",
	"4":   "EXIT",
	"RUN": "START",
}

// parseCommand normalizes the verb, resolves aliases and builds the wire
// line without its terminator. Arguments are passed through untouched.
func parseCommand(text string) (command, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return command{}, errEmptyCommand
	}
	verb, args, _ := strings.Cut(text, " ")
	verb = strings.ToUpper(verb)
	args = strings.TrimSpace(args)
	if alias, ok := commandAliases[verb]; ok {
		verb = alias
	}

	cmd := command{kind: cmdOther, wire: verb}
	if args != "" {
		cmd.wire = verb + " " + args
	}
	switch verb {
	case "LIST":
		cmd.kind = cmdList
	case "START":
		if args == "" {
			return command{}, errStartUsage
		}
		cmd.kind = cmdStart
	case "STOP":
		if args == "" {
			return command{}, errStopUsage
		}
		cmd.kind = cmdStop
	case "MONITOR":
		if args == "" {
			return command{}, errMonitorUsage
		}
		cmd.kind = cmdMonitor
	case "EXIT":
		cmd.kind = cmdExit
		cmd.wire = "EXIT"
	case "HELP":
		cmd.kind = cmdHelp
	}
	return cmd, nil
}

// replacesList reports whether the reply becomes the new process list.
func (c command) replacesList() bool {
	return c.kind != cmdHelp && c.kind != cmdExit
}

func (c command) mutates() bool {
	return c.kind == cmdStart || c.kind == cmdStop
}

// dispatch runs one command to completion within the current loop
// iteration, blocking for at most the reply timeout.
func (rt *runtime) dispatch(text string) {
	cmd, err := parseCommand(text)
	if err != nil {
		if !errors.Is(err, errEmptyCommand) {
			rt.sess.lastReply = err.Error()
		}
		return
	}

	switch cmd.kind {
	case cmdHelp:
		rt.showHelp()
		return
	case cmdExit:
		rt.sess.statusText = "Disconnecting..."
		rt.sess.log.Info("exit requested")
		if err := rt.sess.sendLine(cmd.wire); err != nil {
			rt.sess.log.Debug("send EXIT", "err", err)
		}
		rt.running = false
		return
	}

	rt.sess.statusText = "Sending command..."
	rt.render()
	rt.sess.log.Info("command", "wire", cmd.wire)
	if err := rt.sess.sendLine(cmd.wire); err != nil {
		rt.connectionLost(err)
		return
	}
	now := rt.now()
	if cmd.kind == cmdList {
		rt.timers.listSent(now, rt.cfg)
	}

	buf := rt.sess.recvBuffer()
	n, err := rt.sess.waitRecv(buf, rt.cfg.replyTimeout)
	if err != nil {
		rt.connectionLost(err)
		return
	}
	if n > 0 {
		rt.applyReply(cmd, buf[:n])
	}
	if cmd.mutates() {
		rt.timers.armDeferred(rt.now(), rt.cfg)
	}
	rt.sess.statusText = rt.sess.connectedStatus()
}

func (rt *runtime) applyReply(cmd command, data []byte) {
	text := sanitizeReply(string(data))
	if cmd.kind == cmdList {
		rt.sess.lastReply = ""
	} else {
		rt.sess.lastReply = firstLine(text)
	}
	if !cmd.replacesList() {
		return
	}
	if err := rt.replaceProcesses(text); err != nil {
		return
	}
	rt.sess.scroll = 0
}
