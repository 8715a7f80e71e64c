package whatsapp

type Response struct {
	StatusCode int
	Sent       string
	Message    string
	Id         string
	Error      string
}

// Ok reports whether the API accepted the message.
func (r Response) Ok() bool {
	return r.Sent == "true"
}
