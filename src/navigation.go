package main

// scrollClamp applies delta to offset and clips the result to
// [0, max(0, total-visible)].
func scrollClamp(offset, delta, total, visible int) int {
	maxStart := total - visible
	if maxStart < 0 {
		maxStart = 0
	}
	next := offset + delta
	if next < 0 {
		next = 0
	}
	if next > maxStart {
		next = maxStart
	}
	return next
}

func toggleFocus(l *layout) {
	if l.focused == focusProcess {
		l.focused = focusInput
		return
	}
	l.focused = focusProcess
}

func (rt *runtime) scrollProcesses(delta int) bool {
	if rt.layout.focused != focusProcess {
		return false
	}
	rt.sess.scroll = scrollClamp(rt.sess.scroll, delta, len(rt.sess.processes), rt.layout.proc.visibleRows())
	return true
}

func (rt *runtime) jumpScroll(toTop bool) bool {
	if rt.layout.focused != focusProcess {
		return false
	}
	if toTop {
		rt.sess.scroll = 0
		return true
	}
	rt.sess.scroll = scrollClamp(0, len(rt.sess.processes), len(rt.sess.processes), rt.layout.proc.visibleRows())
	return true
}
