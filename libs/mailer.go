package libs

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Nerfise/bossing/models"
	"gopkg.in/gomail.v2"
)

type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService() (*EmailService, error) {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	if smtpHost == "" || smtpUser == "" || smtpPass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		port = 587
	}

	return &EmailService{
		dialer: gomail.NewDialer(smtpHost, port, smtpUser, smtpPass),
		from:   os.Getenv("SMTP_FROM"),
	}, nil
}

// SendOrderReceipt mails the placed order summary. Failures are the
// caller's to log; placement never rolls back on a mail error.
func (s *EmailService) SendOrderReceipt(toEmail string, order *models.Order) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Order %s confirmed - Bossing Shop", order.OrderNumber))

	var rows strings.Builder
	for _, item := range order.Items {
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding:8px;">%s</td><td style="padding:8px;text-align:center;">x%d</td><td style="padding:8px;text-align:right;">%s</td></tr>`,
			item.Name, item.Quantity, item.Price))
	}

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .logo { font-size: 24px; font-weight: bold; color: #f97316; text-align: center; }
        table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
        .total { font-size: 18px; font-weight: bold; text-align: right; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">Bossing Shop</div>
        <h2>Thanks for your order, %s!</h2>
        <p>Order <strong>%s</strong> was placed and is now <strong>%s</strong>.</p>
        <table>%s</table>
        <p class="total">Total: %s</p>
        <p>Delivery to: %s</p>
        <div class="footer">Bossing Shop &middot; This is an automated message</div>
    </div>
</body>
</html>`,
		order.CustomerName, order.OrderNumber, order.Status, rows.String(),
		order.Total, order.DeliveryAddress)

	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}
