package services

import (
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// rule is one client-side check. Rules run in order and the first failure
// wins.
type rule struct {
	value   any
	tag     string // validator tag; empty means use fail
	fail    bool
	message string
}

func firstFailing(rules ...rule) error {
	for _, r := range rules {
		if r.tag == "" {
			if r.fail {
				return &ValidationError{Message: r.message}
			}
			continue
		}
		if err := validate.Var(r.value, r.tag); err != nil {
			return &ValidationError{Message: r.message}
		}
	}
	return nil
}

// usernameRule requires at least MinUsernameLength characters. optional
// skips the check for an empty value.
func usernameRule(username string, optional bool) rule {
	tag := "required,min=" + strconv.Itoa(MinUsernameLength)
	if optional {
		tag = "omitempty,min=" + strconv.Itoa(MinUsernameLength)
	}
	return rule{value: username, tag: tag, message: MsgUsernameTooShort}
}

func displayNameRule(name string) rule {
	return rule{value: name, tag: "required", message: MsgDisplayNameRequired}
}

func notTakenRule(taken bool) rule {
	return rule{fail: taken, message: MsgUsernameTaken}
}

func profilePicRule(pic string) rule {
	return rule{value: pic, tag: "omitempty,url", message: MsgProfilePicInvalid}
}
