package main

import (
	"fmt"
	"os/user"
	"strings"

	mail "github.com/xhit/go-simple-mail/v2"
)

const (
	smtpServer   = "127.0.0.1"
	smtpPort     = 25
	fromUsername = "testprep"

	repairSubject = "Test output directories under %q were re-created"
	repairIntro   = "The watcher re-created missing output directories:\n\n"
)

type notifyMode string

const (
	notifyAlways   notifyMode = "always"
	notifyNever    notifyMode = "never"
	notifyOnRepair notifyMode = "on-repair"
)

type notifyWhenRepaired func(baseDir string, repaired []string) error

func parseNotifyMode(mode string) (notifyMode, error) {
	switch mode {
	case string(notifyAlways):
		return notifyAlways, nil
	case string(notifyNever):
		return notifyNever, nil
	case string(notifyOnRepair), "":
		return notifyOnRepair, nil
	default:
		return "", fmt.Errorf("unknown notify mode: %v", mode)
	}
}

func notifyIfNeeded(notify notifyWhenRepaired, mode notifyMode, baseDir string, repaired []string) error {
	if mode == notifyNever || len(repaired) == 0 {
		return nil
	}

	return notify(baseDir, repaired)
}

func localUserAddress(username string) string {
	return username + "@localhost"
}

func notifyUserByEmail(baseDir string, repaired []string) error {
	subject, text := formatMessage(baseDir, repaired)

	currentUser, err := user.Current()
	if err != nil {
		return fmt.Errorf("failed to get current user: %v", err)
	}

	server := mail.NewSMTPClient()
	server.Host = smtpServer
	server.Port = smtpPort
	server.Username = currentUser.Username

	smtpClient, err := server.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %v", err)
	}

	email := mail.NewMSG()
	email.SetFrom(localUserAddress(fromUsername)).
		AddTo(localUserAddress(currentUser.Username)).
		SetSubject(subject).
		SetBody(mail.TextPlain, text)

	if err := email.Send(smtpClient); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

func formatMessage(baseDir string, repaired []string) (string, string) {
	subject := fmt.Sprintf(repairSubject, baseDir)

	var sb strings.Builder
	sb.WriteString(repairIntro)

	for _, path := range repaired {
		sb.WriteString("> " + path + "\n")
	}

	return subject, sb.String()
}
