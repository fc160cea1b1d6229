package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

// SendPixCode reenvia o copia-e-cola por email logo após a geração,
// pro visitante não perder o código se fechar a aba.
func (s *EmailSender) SendPixCode(to, name, productName, pixCode string) error {
	data := PixEmailData{
		Name:        name,
		ProductName: productName,
		PixCode:     pixCode,
	}

	tmplPath := filepath.Join("templates", "pix.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "nao-responda@chromaimoveis.com.br")
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("%s, seu código Pix da reserva %s", name, productName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
