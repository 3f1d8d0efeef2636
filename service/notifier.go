package service

import "log"

// Notifier delivers user-facing operation outcomes. The admin frontend
// renders these as toast notifications; raw transport/catalog errors never
// pass through here, only aggregate messages.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier writes notifications to the process log.
type LogNotifier struct{}

var _ Notifier = (*LogNotifier)(nil)

func (LogNotifier) Success(message string) {
	log.Printf("✅ %s", message)
}

func (LogNotifier) Error(message string) {
	log.Printf("❌ %s", message)
}
