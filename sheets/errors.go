package sheets

// AuthErr means the service account could not authenticate.
type AuthErr struct {
	message string
	cause   error
}

func (e *AuthErr) Error() string {
	return e.message
}

func (e *AuthErr) Unwrap() error {
	return e.cause
}

func NewAuthError(msg string, cause error) *AuthErr {
	return &AuthErr{message: msg, cause: cause}
}

// ApiErr means the Sheets API call failed.
type ApiErr struct {
	message string
	cause   error
}

func (e *ApiErr) Error() string {
	return e.message
}

func (e *ApiErr) Unwrap() error {
	return e.cause
}

func NewApiError(msg string, cause error) *ApiErr {
	return &ApiErr{message: msg, cause: cause}
}

// EmptyErr means the sheet has no data rows.
type EmptyErr struct {
	message string
}

func (e *EmptyErr) Error() string {
	return e.message
}

func NewEmptyError(msg string) *EmptyErr {
	return &EmptyErr{message: msg}
}

// SchemaErr means the header row lacks a required column.
type SchemaErr struct {
	Column  string
	message string
}

func (e *SchemaErr) Error() string {
	return e.message
}

func NewSchemaError(column string) *SchemaErr {
	return &SchemaErr{Column: column, message: "Sheet has no \"" + column + "\" column, check your spreadsheet"}
}
