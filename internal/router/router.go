// Package router keeps the TUI's stack of screens.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/symcheck/internal/screen"
)

// Op is a change to the screen stack.
type Op int

const (
	OpPush Op = iota
	OpBack
	OpHome
	OpSwap
)

// NavMsg asks the router to change screens. Screens send it through the
// Push, Back, Home and Swap commands.
type NavMsg struct {
	Op     Op
	Screen screen.Screen // for OpPush and OpSwap
}

func nav(op Op, s screen.Screen) tea.Cmd {
	return func() tea.Msg { return NavMsg{Op: op, Screen: s} }
}

// Push opens s on top of the current screen.
func Push(s screen.Screen) tea.Cmd { return nav(OpPush, s) }

// Back closes the current screen.
func Back() tea.Cmd { return nav(OpBack, nil) }

// Home closes everything above the first screen.
func Home() tea.Cmd { return nav(OpHome, nil) }

// Swap replaces the current screen with s.
func Swap(s screen.Screen) tea.Cmd { return nav(OpSwap, s) }

// Router holds the stack. The first screen is never removed.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Apply performs msg and returns the Init command of any screen it
// brings in.
func (r *Router) Apply(msg NavMsg) tea.Cmd {
	top := len(r.stack) - 1
	switch msg.Op {
	case OpPush:
		r.stack = append(r.stack, msg.Screen)
	case OpSwap:
		r.stack[top] = msg.Screen
	case OpBack:
		if top > 0 {
			r.stack[top] = nil
			r.stack = r.stack[:top]
		}
		return nil
	case OpHome:
		clear(r.stack[1:])
		r.stack = r.stack[:1]
		return nil
	}
	return msg.Screen.Init()
}

// Active is the screen on top.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if nm, ok := msg.(NavMsg); ok {
		return r.Apply(nm)
	}
	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
