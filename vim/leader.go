// @lixen: #focus{control[leader,mapping]}
package vim

import (
	"strings"
	"time"

	"github.com/lixenwraith/vi-dojo/input"
)

// DefaultLeaderTimeout is how long a leader sequence waits for its next key
const DefaultLeaderTimeout = time.Second

// LeaderMapping is one node of the leader tree; nodes with children are menus
type LeaderMapping struct {
	Key         rune
	Action      string
	Description string
	Children    []LeaderMapping
}

func leaf(key rune, action, desc string) LeaderMapping {
	return LeaderMapping{Key: key, Action: action, Description: desc}
}

func menu(key rune, desc string, children ...LeaderMapping) LeaderMapping {
	return LeaderMapping{Key: key, Description: desc, Children: children}
}

// DefaultLeaderTree returns the stock leader mappings
func DefaultLeaderTree() []LeaderMapping {
	return []LeaderMapping{
		leaf(' ', "find_files", "Find files"),
		leaf('/', "grep", "Grep search"),
		leaf('e', "explorer", "Toggle file explorer"),
		leaf(',', "buffer_list", "Show buffers"),
		menu('f', "File",
			leaf('f', "find_files", "Find files"),
			leaf('g', "live_grep", "Live grep"),
			leaf('r', "recent_files", "Recent files"),
			leaf('b', "find_buffers", "Find in buffers"),
		),
		menu('g', "Git",
			leaf('s', "git_status", "Git status"),
			leaf('l', "git_log", "Git log"),
			leaf('d', "git_diff", "Git diff"),
			leaf('b', "git_branches", "Git branches"),
		),
		menu('s', "Search",
			leaf('w', "search_word", "Search word under cursor"),
			leaf('b', "search_buffer", "Search current buffer"),
			leaf('r', "search_replace", "Search and replace"),
		),
		menu('b', "Buffer",
			leaf('d', "buffer_delete", "Buffer deleted"),
			leaf('n', "buffer_next", "Next buffer"),
			leaf('p', "buffer_prev", "Previous buffer"),
			leaf('l', "buffer_list", "Buffer list"),
			leaf('w', "write", "Write buffer"),
		),
		menu('u', "Toggle",
			leaf('w', "toggle_wrap", "Wrap"),
			leaf('l', "toggle_number", "Line numbers"),
			leaf('r', "toggle_relativenumber", "Relative numbers"),
			leaf('h', "toggle_hlsearch", "Search highlight"),
			leaf('c', "toggle_cursorline", "Cursor line"),
			leaf('s', "toggle_spell", "Spell check"),
		),
		menu('c', "Code",
			leaf('a', "code_action", "Code action"),
			leaf('r', "code_rename", "Rename symbol"),
			leaf('f', "code_format", "Format code"),
		),
		menu('w', "Window",
			leaf('h', "window_left", "Window left"),
			leaf('j', "window_down", "Window down"),
			leaf('k', "window_up", "Window up"),
			leaf('l', "window_right", "Window right"),
			leaf('v', "split_vertical", "Vertical split"),
			leaf('s', "split_horizontal", "Horizontal split"),
			leaf('q', "window_close", "Close window"),
			leaf('=', "window_equalize", "Equalize windows"),
		),
		menu('q', "Quit",
			leaf('q', "quit", "Quit"),
			leaf('a', "quit_all", "Quit all"),
			leaf('w', "write_quit", "Write and quit"),
		),
	}
}

// resolveLeader walks the tree; partial is true while the sequence names a menu
func resolveLeader(tree []LeaderMapping, seq []rune) (m *LeaderMapping, partial bool) {
	nodes := tree
	for i, k := range seq {
		var found *LeaderMapping
		for j := range nodes {
			if nodes[j].Key == k {
				found = &nodes[j]
				break
			}
		}
		if found == nil {
			return nil, false
		}
		if i == len(seq)-1 {
			if len(found.Children) > 0 {
				return nil, true
			}
			return found, false
		}
		nodes = found.Children
	}
	return nil, len(seq) == 0
}

func leaderDisplay(seq string) string {
	parts := make([]string, 0, len(seq))
	for _, r := range seq {
		if r == ' ' {
			parts = append(parts, "Space")
		} else {
			parts = append(parts, string(r))
		}
	}
	return strings.Join(parts, " ")
}

// startLeader opens a sequence with a fresh deadline
func (c *call) startLeader() {
	c.s.Leader = LeaderState{Active: true, Deadline: c.now.Add(c.e.leaderTimeout)}
	c.info("LEADER")
	c.action("leader")
}

// leaderKey advances an open sequence; it reports false when the key must be processed normally
func (c *call) leaderKey(key input.Key) bool {
	ls := &c.s.Leader
	if c.now.After(ls.Deadline) {
		c.s.Leader = LeaderState{}
		return false
	}
	if key.IsNamed(input.KeyEscape) || key.IsCtrl('c') || !key.Printable() {
		c.s.Leader = LeaderState{}
		c.action("leader_cancel")
		return true
	}

	seq := ls.Sequence + string(key.Rune)
	m, partial := resolveLeader(c.e.leaderTree, []rune(seq))
	switch {
	case m != nil:
		c.s.Leader = LeaderState{}
		c.runLeader(m)
	case partial:
		ls.Sequence = seq
		ls.Deadline = c.now.Add(c.e.leaderTimeout)
		c.info("LEADER: %s", leaderDisplay(seq))
	default:
		c.s.Leader = LeaderState{}
		c.warn("Unknown leader key: %s", leaderDisplay(seq))
	}
	return true
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// runLeader performs a resolved mapping; unbacked actions only report themselves
func (c *call) runLeader(m *LeaderMapping) {
	set := &c.s.Settings
	toggle := func(p *bool) {
		*p = !*p
		c.info("%s: %s", m.Description, onOff(*p))
	}

	switch m.Action {
	case "toggle_wrap":
		toggle(&set.Wrap)
	case "toggle_number":
		toggle(&set.Number)
	case "toggle_relativenumber":
		toggle(&set.RelativeNumber)
	case "toggle_hlsearch":
		toggle(&set.HlSearch)
	case "toggle_cursorline":
		toggle(&set.CursorLine)
	case "buffer_next":
		c.cycleBuffer(1)
	case "buffer_prev":
		c.cycleBuffer(-1)
	case "buffer_delete":
		if len(c.s.Buffers) <= 1 {
			c.warn("Cannot delete last buffer")
			return
		}
		c.deleteBuffer(true)
	case "buffer_list":
		c.info("%s", c.bufferListing())
	case "search_word":
		c.searchWord(true, 1)
	case "write":
		c.exCommand("w")
	case "quit":
		c.exCommand("q")
	case "write_quit":
		c.exCommand("wq")
	default:
		c.info("%s (simulated)", m.Description)
	}
	c.action("leader_" + m.Action)
}
