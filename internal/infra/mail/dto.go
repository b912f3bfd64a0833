package mail

type ConfirmationEmailData struct {
	ContactName string
	Subject     string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
