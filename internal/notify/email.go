package notify

import (
	"fmt"
	"mime"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"residence/server/internal/models"
)

// SendMailFunc matches smtp.SendMail
type SendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}

// Email relays new leads to staff over SMTP
type Email struct {
	config   EmailConfig
	logger   *logrus.Logger
	sendMail SendMailFunc
}

func NewEmail(config EmailConfig, logger *logrus.Logger) *Email {
	if config.From == "" {
		config.From = config.User
	}
	return &Email{
		config:   config,
		logger:   logger,
		sendMail: smtp.SendMail,
	}
}

// Notify sends one booking notification
func (e *Email) Notify(b models.Booking) error {
	addr := e.config.Host + ":" + strconv.Itoa(e.config.Port)

	var auth smtp.Auth
	if e.config.User != "" {
		auth = smtp.PlainAuth("", e.config.User, e.config.Password, e.config.Host)
	}

	if err := e.sendMail(addr, auth, e.config.From, []string{e.config.To}, e.compose(b)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	e.logger.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"to":         e.config.To,
	}).Info("Lead e-mail sent")
	return nil
}

func (e *Email) compose(b models.Booking) []byte {
	var sb strings.Builder
	sb.WriteString("From: " + e.config.From + "\r\n")
	sb.WriteString("To: " + e.config.To + "\r\n")
	sb.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", leadSubject(b)) + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(leadHTML(b))
	return []byte(sb.String())
}
