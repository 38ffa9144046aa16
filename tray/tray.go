// Package tray owns the OS tray icon for the life of the process.
package tray

import (
	"sync"

	"fyne.io/systray"
)

type State int

const (
	Uninitialized State = iota
	Active
	Terminated
)

var (
	stateMu sync.Mutex
	state   State

	quitCh    = make(chan struct{})
	closeOnce sync.Once

	copyStatusFn func()
	loginOn      bool
	loginCb      func(bool) error

	mCopy  *systray.MenuItem
	mLogin *systray.MenuItem
)

func OnCopyStatus(fn func())      { copyStatusFn = fn }
func SetLogin(on bool)            { loginOn = on }
func OnLogin(fn func(bool) error) { loginCb = fn }

// Run registers the tray icon and blocks until Quit. onReady fires once
// the icon exists; wire callbacks before calling Run.
func Run(onReady func()) {
	systray.Run(func() {
		buildMenu()
		setState(Active)
		if onReady != nil {
			onReady()
		}
	}, func() {
		setState(Terminated)
		closeOnce.Do(func() { close(quitCh) })
	})
}

// QuitRequested closes when the user picks Quit or the tray loop exits.
func QuitRequested() <-chan struct{} { return quitCh }

func Quit() {
	systray.Quit()
}

func CurrentState() State {
	stateMu.Lock()
	defer stateMu.Unlock()
	return state
}

func setState(s State) {
	stateMu.Lock()
	state = s
	stateMu.Unlock()
}

func active() bool { return CurrentState() == Active }

// SetIcon swaps the displayed icon. Takes PNG bytes; the Windows ICO
// wrapping happens internally.
func SetIcon(pngData []byte) {
	if !active() {
		return
	}
	systray.SetIcon(platformIcon(pngData))
}

func SetTooltip(msg string) {
	if !active() {
		return
	}
	systray.SetTooltip(msg)
}

func buildMenu() {
	systray.SetTooltip("battray")

	mCopy = systray.AddMenuItem("Copy Status", "Copy battery status to clipboard")
	go func() {
		for range mCopy.ClickedCh {
			if copyStatusFn != nil {
				copyStatusFn()
			}
		}
	}()

	mLogin = systray.AddMenuItemCheckbox("Start on Login", "Launch battray when you log in", loginOn)
	go func() {
		for range mLogin.ClickedCh {
			next := !mLogin.Checked()
			if loginCb != nil {
				if err := loginCb(next); err != nil {
					continue // leave the checkbox as it was
				}
			}
			if next {
				mLogin.Check()
			} else {
				mLogin.Uncheck()
			}
		}
	}()

	systray.AddSeparator()

	mQuit := systray.AddMenuItem("Quit", "Quit battray")
	go func() {
		<-mQuit.ClickedCh
		systray.Quit()
	}()
}
