// Package admin holds the state behind the admin screens: the auth state
// machine and one editor per content section. Rendering is left to callers,
// which supply a Notifier for transient messages and a Confirmer for
// destructive actions.
package admin

import (
	"github.com/folio/folio/pkg/logger"
)

// Variant distinguishes success toasts from failure toasts.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a short transient message. Technical errors never go in the
// description.
type Notification struct {
	Title       string
	Description string
	Variant     Variant
}

type Notifier interface {
	Notify(n Notification)
}

type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// LogNotifier writes notifications to the service logger.
type LogNotifier struct{}

func (LogNotifier) Notify(n Notification) {
	e := logger.WithFields(map[string]interface{}{"title": n.Title})
	if n.Variant == VariantDestructive {
		e.Warn(n.Description)
		return
	}
	e.Info(n.Description)
}

func success(n Notifier, description string) {
	if n != nil {
		n.Notify(Notification{Title: "Success", Description: description, Variant: VariantDefault})
	}
}

func failure(n Notifier, description string) {
	if n != nil {
		n.Notify(Notification{Title: "Error", Description: description, Variant: VariantDestructive})
	}
}
