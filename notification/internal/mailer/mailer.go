package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Alturino/nayarn/internal/config"
	"github.com/Alturino/nayarn/internal/log"
)

const (
	DriverSMTP = "smtp"
	DriverLog  = "log"
)

type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

type Mailer interface {
	Send(c context.Context, msg Message) error
}

func New(cfg config.Mail) (Mailer, error) {
	switch cfg.Driver {
	case DriverSMTP:
		return NewSMTPMailer(cfg), nil
	case DriverLog, "":
		return LogMailer{}, nil
	default:
		return nil, fmt.Errorf("unknown mail driver=%s", cfg.Driver)
	}
}

type SMTPMailer struct {
	addr string
	auth smtp.Auth
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg config.Mail) *SMTPMailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPMailer{
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		auth: auth,
		send: smtp.SendMail,
	}
}

func (m *SMTPMailer) Send(c context.Context, msg Message) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SMTPMailer Send").
		Str(log.KeyProcess, "sending mail").
		Strs(log.KeyEmail, msg.To).
		Logger()

	logger.Info().Msg("sending mail")
	if err := m.send(m.addr, m.auth, envelopeAddress(msg.From), msg.To, Render(msg, time.Now())); err != nil {
		err = fmt.Errorf("failed sending mail with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("sent mail")
	return nil
}

// LogMailer writes messages to the context logger instead of sending them.
type LogMailer struct{}

func (LogMailer) Send(c context.Context, msg Message) error {
	zerolog.Ctx(c).Info().
		Str(log.KeyTag, "LogMailer Send").
		Strs(log.KeyEmail, msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("mail not sent, log driver")
	return nil
}

// Render builds an RFC 5322 plain text message.
func Render(msg Message, date time.Time) []byte {
	b := strings.Builder{}
	b.WriteString("From: " + msg.From + "\r\n")
	b.WriteString("To: " + strings.Join(msg.To, ", ") + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("Date: " + date.Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}

// envelopeAddress extracts the bare address from "Name <addr>".
func envelopeAddress(from string) string {
	start, end := strings.LastIndex(from, "<"), strings.LastIndex(from, ">")
	if start >= 0 && end > start {
		return from[start+1 : end]
	}
	return from
}
