package service

type InvalidPayloadErr struct {
	message string
}

func (e *InvalidPayloadErr) Error() string {
	return e.message
}

func NewInvalidPayloadError(msg string) *InvalidPayloadErr {
	return &InvalidPayloadErr{message: msg}
}

type BusyErr struct {
}

func (e *BusyErr) Error() string {
	return "Another sending is in progress, wait for it to complete"
}
