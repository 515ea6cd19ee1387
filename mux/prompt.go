// @lixen: #focus{prompt[input,history,completion]}
// @lixen: #interact{state[prompt]}
package mux

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"

	"github.com/lixenwraith/vi-dojo/input"
)

// OpenPrompt activates the status line prompt with initial text
func OpenPrompt(s *State, kind PromptKind, initial string) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.openPrompt(kind, initial) })
}

func (c *call) openPrompt(kind PromptKind, initial string) {
	pr := &c.s.Prompt
	pr.Active = true
	pr.Kind = kind
	pr.Text = initial
	pr.HistoryPos = len(pr.History)
	c.s.PrefixActive = false
}

func (c *call) closePrompt() {
	c.s.Prompt.Active = false
	c.s.Prompt.Text = ""
	c.s.Prompt.HistoryPos = len(c.s.Prompt.History)
}

// promptKey edits the prompt line; Enter submits it according to its kind
func (c *call) promptKey(key input.Key) {
	pr := &c.s.Prompt
	switch {
	case key.IsNamed(input.KeyEscape), key.IsCtrl('c'):
		c.closePrompt()
	case key.IsNamed(input.KeyEnter):
		kind, text := pr.Kind, pr.Text
		c.closePrompt()
		c.submit(kind, text)
	case key.IsNamed(input.KeyBackspace):
		if pr.Text == "" {
			c.closePrompt()
			return
		}
		_, size := utf8.DecodeLastRuneInString(pr.Text)
		pr.Text = pr.Text[:len(pr.Text)-size]
	case key.IsCtrl('u'):
		pr.Text = ""
	case key.IsNamed(input.KeyTab):
		if pr.Kind == PromptCommand {
			c.complete()
		}
	case key.IsNamed(input.KeyUp):
		if pr.Kind == PromptCommand && len(pr.History) > 0 {
			pr.HistoryPos = max(0, pr.HistoryPos-1)
			pr.Text = pr.History[pr.HistoryPos]
		}
	case key.IsNamed(input.KeyDown):
		if pr.Kind == PromptCommand && pr.HistoryPos < len(pr.History) {
			pr.HistoryPos++
			if pr.HistoryPos == len(pr.History) {
				pr.Text = ""
			} else {
				pr.Text = pr.History[pr.HistoryPos]
			}
		}
	case key.Printable():
		pr.Text += string(key.Rune)
	}
}

func (c *call) submit(kind PromptKind, text string) {
	switch kind {
	case PromptCommand:
		c.execute(text)
	case PromptRenameWindow:
		c.renameWindow(text)
	case PromptRenameSession:
		c.renameSession(text)
	case PromptFindWindow:
		c.findWindow(text)
	case PromptNewSession:
		c.newSession(text)
	case PromptSearchDown:
		c.copySearch(text, true)
	case PromptSearchUp:
		c.copySearch(text, false)
	}
}

// remember appends line to the command history, skipping a repeat of the newest entry
func (c *call) remember(line string) {
	pr := &c.s.Prompt
	if n := len(pr.History); n == 0 || pr.History[n-1] != line {
		pr.History = append(pr.History, line)
		if over := len(pr.History) - MaxHistory; over > 0 {
			pr.History = append([]string(nil), pr.History[over:]...)
		}
	}
	pr.HistoryPos = len(pr.History)
}

// complete extends the command name or layout argument under the prompt
// Prefix matches win; without one the best fuzzy match is taken
func (c *call) complete() {
	pr := &c.s.Prompt
	text := strings.TrimLeft(pr.Text, " ")
	lead, arg, hasArg := strings.Cut(text, " ")

	candidates, word, prefix := commandNames(), lead, ""
	if hasArg {
		cmd := lookupCommand(lead)
		if cmd == nil || cmd.name != "select-layout" {
			return
		}
		candidates, word, prefix = layoutNamesList(), strings.TrimSpace(arg), lead+" "
	}
	if word == "" {
		return
	}

	var matches []string
	for _, cand := range candidates {
		if strings.HasPrefix(cand, word) {
			matches = append(matches, cand)
		}
	}
	switch len(matches) {
	case 0:
		if fm := fuzzy.Find(word, candidates); len(fm) > 0 {
			pr.Text = prefix + fm[0].Str + " "
		}
	case 1:
		pr.Text = prefix + matches[0] + " "
	default:
		common := commonPrefix(matches)
		if len(common) > len(word) {
			pr.Text = prefix + common
			return
		}
		c.info("%s", strings.Join(matches, " "))
	}
}

func commonPrefix(words []string) string {
	p := words[0]
	for _, w := range words[1:] {
		for !strings.HasPrefix(w, p) {
			p = p[:len(p)-1]
		}
	}
	return p
}

func layoutNamesList() []string {
	out := make([]string, len(layoutCycle))
	for i, l := range layoutCycle {
		out[i] = l.String()
	}
	return out
}

func commandNames() []string {
	names := make([]string, len(commandTable))
	for i, cmd := range commandTable {
		names[i] = cmd.name
	}
	slices.Sort(names)
	return names
}
