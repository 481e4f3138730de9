// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendSubscriptionActive(toEmail, planName string) error
	SendCreditPackReceipt(toEmail, featureText string, packSize int) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendSubscriptionActive(toEmail, planName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Sua assinatura está ativa!")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Assinatura confirmada</h2>
			<p>Seu plano <strong>%s</strong> está ativo. Bom apetite!</p>
			<p>Seus novos limites já valem a partir de agora.</p>
		</div>
	`, planName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send subscription mail to %s: %v\n", toEmail, err)
		return err
	}
	return nil
}

func (s *emailService) SendCreditPackReceipt(toEmail, featureText string, packSize int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Créditos adicionados à sua conta")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Compra confirmada</h2>
			<p>%d usos extras de <strong>%s</strong> foram adicionados à sua conta.</p>
		</div>
	`, packSize, featureText)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send receipt to %s: %v\n", toEmail, err)
		return err
	}
	return nil
}
