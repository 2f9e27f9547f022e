// Package view holds the top-level screen state of the application shell.
// The controller owns which screen is visible and nothing else; generation
// output is display data it never validates or transforms.
package view

import (
	"fmt"
	"sync"
)

// Screen identifies one of the fixed feature screens.
type Screen string

const (
	ScreenHome         Screen = "home"
	ScreenFridge       Screen = "fridge"
	ScreenRecipes      Screen = "recipes"
	ScreenForum        Screen = "forum"
	ScreenPrices       Screen = "prices"
	ScreenNutritionist Screen = "nutritionist"
)

// Valid reports whether s names a known screen.
func (s Screen) Valid() bool {
	switch s {
	case ScreenHome, ScreenFridge, ScreenRecipes, ScreenForum, ScreenPrices, ScreenNutritionist:
		return true
	}
	return false
}

// Controller tracks the currently visible screen.
type Controller struct {
	mu      sync.Mutex
	current Screen
}

// NewController starts on the home screen.
func NewController() *Controller {
	return &Controller{current: ScreenHome}
}

// Current returns the visible screen.
func (c *Controller) Current() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Navigate replaces the visible screen. Unknown screens are rejected and the
// current screen stays put.
func (c *Controller) Navigate(s Screen) error {
	if !s.Valid() {
		return fmt.Errorf("unknown screen %q", s)
	}
	c.mu.Lock()
	c.current = s
	c.mu.Unlock()
	return nil
}
