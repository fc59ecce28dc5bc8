package validation

// Field names of the registration form. The set is fixed.
const (
	FieldFirstName    = "firstName"
	FieldLastName     = "lastName"
	FieldEmail        = "email"
	FieldCPF          = "cpf"
	FieldCEP          = "cep"
	FieldStreet       = "street"
	FieldNumber       = "number"
	FieldNeighborhood = "neighborhood"
	FieldCity         = "city"
	FieldState        = "state"
	FieldPhone        = "phone"
)

// Messages surfaced by the registration rules.
const (
	MessageFirstNameRequired    = "First name is required"
	MessageInvalidEmail         = "Invalid email address"
	MessageInvalidCPF           = "Invalid CPF format. Use 000.000.000-00 or 00000000000"
	MessageInvalidCEP           = "Invalid zip code. The format must be 00000-000 or 00000000."
	MessageCEPTooShort          = "Zip code must contain at least 9 characters"
	MessageStreetRequired       = "Street is required"
	MessageNeighborhoodRequired = "Neighborhood is required"
	MessageCityRequired         = "City is required"
	MessageStateRequired        = "State is required"
	MessagePhoneRequired        = "Phone is required"
)

// RegistrationFields lists the registration fields in display order.
var RegistrationFields = []string{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldCPF,
	FieldCEP,
	FieldNumber,
	FieldStreet,
	FieldNeighborhood,
	FieldState,
	FieldCity,
	FieldPhone,
}

var registrationSchema = MustSchema(RegistrationFields,
	Required(FieldFirstName, MessageFirstNameRequired),
	Email(FieldEmail, MessageInvalidEmail),
	Matches(FieldCPF, MessageInvalidCPF, cpfPunctuatedPattern, cpfDigitsPattern),
	Matches(FieldCEP, MessageInvalidCEP, cepPattern),
	MinLength(FieldCEP, MessageCEPTooShort, 9, NormalizeCEP),
	Required(FieldStreet, MessageStreetRequired),
	Required(FieldNeighborhood, MessageNeighborhoodRequired),
	Required(FieldCity, MessageCityRequired),
	Required(FieldState, MessageStateRequired),
	Required(FieldPhone, MessagePhoneRequired),
)

// RegistrationSchema returns the rule table of the registration form.
// lastName and number carry no rules and accept "". Required fields trim
// whitespace first, so a value of only spaces is reported as missing.
func RegistrationSchema() *Schema {
	return registrationSchema
}

// Registration is the typed record handed to submitters once a submission is
// accepted.
type Registration struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	CPF          string `json:"cpf"`
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Phone        string `json:"phone"`
}

// RegistrationFromMap copies the known keys of values into a Registration.
func RegistrationFromMap(values map[string]string) Registration {
	return Registration{
		FirstName:    values[FieldFirstName],
		LastName:     values[FieldLastName],
		Email:        values[FieldEmail],
		CPF:          values[FieldCPF],
		CEP:          values[FieldCEP],
		Street:       values[FieldStreet],
		Number:       values[FieldNumber],
		Neighborhood: values[FieldNeighborhood],
		City:         values[FieldCity],
		State:        values[FieldState],
		Phone:        values[FieldPhone],
	}
}

// Map returns the record keyed by field name.
func (r Registration) Map() map[string]string {
	return map[string]string{
		FieldFirstName:    r.FirstName,
		FieldLastName:     r.LastName,
		FieldEmail:        r.Email,
		FieldCPF:          r.CPF,
		FieldCEP:          r.CEP,
		FieldStreet:       r.Street,
		FieldNumber:       r.Number,
		FieldNeighborhood: r.Neighborhood,
		FieldCity:         r.City,
		FieldState:        r.State,
		FieldPhone:        r.Phone,
	}
}
