// @lixen: #focus{host[crash,recover]}
package host

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"
)

var (
	crashMu     sync.Mutex
	crashScreen tcell.Screen

	// Swapped by tests
	crashOut  io.Writer = os.Stderr
	crashExit           = os.Exit
)

// SetCrashScreen registers the screen HandleCrash restores; nil clears it
func SetCrashScreen(scr tcell.Screen) {
	crashMu.Lock()
	crashScreen = scr
	crashMu.Unlock()
}

// HandleCrash restores the terminal, prints r with the stack and exits with status 1
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	scr := crashScreen
	crashScreen = nil
	crashMu.Unlock()
	if scr != nil {
		scr.Fini()
	}

	// \r\n in case the terminal is still raw
	fmt.Fprintf(crashOut, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\r\n%s\r\n", debug.Stack())
	crashExit(1)
}

// Go runs fn on a new goroutine that routes panics to HandleCrash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
