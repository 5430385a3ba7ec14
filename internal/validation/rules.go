package validation

import (
	"fmt"
	"strings"
)

// PhoneFormat selects which phone rule a Rules value applies.
type PhoneFormat string

const (
	// PhoneGeneric accepts 8-15 digits with an optional leading +.
	PhoneGeneric PhoneFormat = "generic"
	// PhoneChilean accepts only +569 followed by 8 digits.
	PhoneChilean PhoneFormat = "chilean"
)

const (
	// ProfileForm selects FormRules.
	ProfileForm = "form"
	// ProfileChilean selects ChileanRules.
	ProfileChilean = "chilean"
)

// Rules is the configurable contact rule set. Each field method returns a
// user-facing error message, or "" when the value passes.
type Rules struct {
	NameMinLength    int
	NameLettersOnly  bool
	Phone            PhoneFormat
	PhoneRequired    bool
	SubjectMinLength int
	MessageMinLength int
	// MessageMaxLength of zero leaves the message unbounded.
	MessageMaxLength int
}

// FormRules mirrors the contact form screen: three letter-only name characters,
// optional generic phone, subject of five and message of ten characters.
func FormRules() Rules {
	return Rules{
		NameMinLength:    3,
		NameLettersOnly:  true,
		Phone:            PhoneGeneric,
		SubjectMinLength: 5,
		MessageMinLength: MinMessageLength,
	}
}

// ChileanRules is the stricter contact profile: required Chilean mobile number,
// looser two character name and a bounded message.
func ChileanRules() Rules {
	return Rules{
		NameMinLength:    2,
		Phone:            PhoneChilean,
		PhoneRequired:    true,
		SubjectMinLength: 5,
		MessageMinLength: MinMessageLength,
		MessageMaxLength: MaxMessageLength,
	}
}

// RulesForProfile resolves a configured profile name.
func RulesForProfile(profile string) (Rules, error) {
	switch strings.ToLower(strings.TrimSpace(profile)) {
	case "", ProfileForm:
		return FormRules(), nil
	case ProfileChilean:
		return ChileanRules(), nil
	default:
		return Rules{}, fmt.Errorf("unknown validation profile %q", profile)
	}
}

// NameError validates the sender name.
func (r Rules) NameError(name string) string {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return "Name is required"
	case runeLen(trimmed) < r.NameMinLength:
		return fmt.Sprintf("Name must be at least %d characters", r.NameMinLength)
	case r.NameLettersOnly && !personNamePattern.MatchString(trimmed):
		return "Name may only contain letters"
	}
	return ""
}

// EmailError validates the sender email.
func (r Rules) EmailError(email string) string {
	switch {
	case strings.TrimSpace(email) == "":
		return "Email is required"
	case !IsValidEmail(strings.TrimSpace(email)):
		return "Invalid email"
	}
	return ""
}

// PhoneError validates the optional phone number.
func (r Rules) PhoneError(phone string) string {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		if r.PhoneRequired {
			return "Phone is required"
		}
		return ""
	}
	if r.Phone == PhoneChilean {
		if !IsValidChileanPhone(trimmed) {
			return "Phone must use the Chilean format (+56912345678)"
		}
		return ""
	}
	if !IsValidPhone(trimmed) {
		return "Invalid phone (8-15 digits)"
	}
	return ""
}

// SubjectError validates the subject line.
func (r Rules) SubjectError(subject string) string {
	trimmed := strings.TrimSpace(subject)
	switch {
	case trimmed == "":
		return "Subject is required"
	case runeLen(trimmed) < r.SubjectMinLength:
		return fmt.Sprintf("Subject must be at least %d characters", r.SubjectMinLength)
	}
	return ""
}

// MessageError validates the message body.
func (r Rules) MessageError(message string) string {
	trimmed := strings.TrimSpace(message)
	n := runeLen(trimmed)
	switch {
	case trimmed == "":
		return "Message is required"
	case n < r.MessageMinLength:
		return fmt.Sprintf("Message must be at least %d characters", r.MessageMinLength)
	case r.MessageMaxLength > 0 && n > r.MessageMaxLength:
		return fmt.Sprintf("Message must be at most %d characters", r.MessageMaxLength)
	}
	return ""
}
