package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

// InitializeLogger sets up the standard logger. Developer mode logs human
// readable text, otherwise JSON.
func InitializeLogger(level string, developer bool) error {
	lv, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lv)
	log.SetOutput(os.Stderr)

	if developer {
		customFormatter := new(log.TextFormatter)
		customFormatter.FullTimestamp = true
		customFormatter.TimestampFormat = "2006-01-02 15:04:05"
		log.SetFormatter(customFormatter)
	} else {
		customFormatter := new(log.JSONFormatter)
		customFormatter.TimestampFormat = "2006-01-02 15:04:05"
		log.SetFormatter(customFormatter)
	}
	return nil
}

func repoLog(fullName string) *log.Entry {
	return log.WithField("repo", fullName)
}

// sanitizeToken reports a token's presence without its content.
func sanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}
