package mail

type PixEmailData struct {
	Name        string
	ProductName string
	PixCode     string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}
