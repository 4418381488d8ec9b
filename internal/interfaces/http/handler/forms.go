package handler

// FormField describes one input of a form
type FormField struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Required  bool     `json:"required"`
	MinLength int      `json:"min_length,omitempty"`
	MaxLength int      `json:"max_length,omitempty"`
	Accept    []string `json:"accept,omitempty"`
}

// FormDescriptor tells a client how to submit a form
type FormDescriptor struct {
	Action   string      `json:"action"`
	Method   string      `json:"method"`
	Encoding string      `json:"encoding"`
	Fields   []FormField `json:"fields"`
}

const (
	encodingForm      = "application/x-www-form-urlencoded"
	encodingMultipart = "multipart/form-data"
)

var registerForm = FormDescriptor{
	Action:   "/register",
	Method:   "POST",
	Encoding: encodingForm,
	Fields: []FormField{
		{Name: "username", Type: "text", Required: true, MinLength: 2, MaxLength: 20},
		{Name: "email", Type: "email", Required: true, MaxLength: 120},
		{Name: "password", Type: "password", Required: true, MinLength: 6, MaxLength: 72},
		{Name: "confirm_password", Type: "password", Required: true},
	},
}

var loginForm = FormDescriptor{
	Action:   "/login",
	Method:   "POST",
	Encoding: encodingForm,
	Fields: []FormField{
		{Name: "email", Type: "email", Required: true},
		{Name: "password", Type: "password", Required: true},
	},
}

var listingForm = FormDescriptor{
	Action:   "/product/new",
	Method:   "POST",
	Encoding: encodingMultipart,
	Fields: []FormField{
		{Name: "name", Type: "text", Required: true, MinLength: 1, MaxLength: 100},
		{Name: "price", Type: "number", Required: true},
		{Name: "description", Type: "textarea", Required: true, MinLength: 1, MaxLength: 5000},
		{Name: "image", Type: "file", Accept: []string{".jpg", ".jpeg", ".png"}},
	},
}
