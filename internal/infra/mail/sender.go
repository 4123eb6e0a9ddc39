package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/telecrm/internal/infra/queue"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

var welcomeTmpl = template.Must(template.New("welcome").Parse(
	"Hi {{.Name}},\n\n" +
		"Your TeleCRM account is ready. Log in to start working your pipeline.\n\n" +
		"— TeleCRM\n"))

var callSummaryTmpl = template.Must(template.New("call_summary").Parse(
	"Hi {{.TelecallerName}},\n\n" +
		"Call logged for lead {{.LeadName}} ({{.LeadPhone}}).\n" +
		"Status: {{.Status}}\n" +
		"Response: {{if .Response}}{{.Response}}{{else}}-{{end}}\n" +
		"{{if .CallDate}}Call date: {{.CallDate.Format \"2006-01-02 15:04\"}}\n{{end}}\n" +
		"— TeleCRM\n"))

func (s *EmailSender) SendWelcome(to, name string) error {
	var body bytes.Buffer
	if err := welcomeTmpl.Execute(&body, struct{ Name string }{Name: name}); err != nil {
		return fmt.Errorf("render welcome template: %w", err)
	}
	return s.send(to, fmt.Sprintf("Welcome to TeleCRM, %s!", name), body.String())
}

func (s *EmailSender) SendCallSummary(to string, payload queue.LeadActivityPayload) error {
	var body bytes.Buffer
	if err := callSummaryTmpl.Execute(&body, payload); err != nil {
		return fmt.Errorf("render call summary template: %w", err)
	}
	return s.send(to, fmt.Sprintf("Call logged: %s", payload.LeadName), body.String())
}

func (s *EmailSender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send SMTP mail: %w", err)
	}

	return nil
}
