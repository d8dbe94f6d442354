package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the single failure kind surfaced to API callers. Status is the
// HTTP status the handler layer replies with.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func BadRequest(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusForbidden, Message: fmt.Sprintf(format, args...)}
}

func Internal(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: fmt.Sprintf(format, args...)}
}

// AsError unwraps err into a *Error if one is in its chain.
func AsError(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// Validation messages
const (
	MsgFieldsEmpty        = "Necessary fields have been left empty"
	MsgTitleTooLong       = "Idea titles cannot exceed 100 characters"
	MsgDomainRequired     = "You must specify at least 1 domain"
	MsgTopicRequired      = "You must specify at least 1 topic"
	MsgIconRequired       = "An idea icon is required"
	MsgNonexistentObject  = "You are attempting to link your idea to an object that does not exist"
	MsgEmptyIdeaID        = "Please enter a valid UUID. UUID cannot be empty."
	MsgIdeaNotFoundFormat = "Idea with UUID %s does not exist."
	MsgNoIdeasMatch       = "No ideas match the given criteria. Please try again with different criteria."
	MsgCouldNotRetrieve   = "Could not retrieve ideas."
	MsgEmptyEmail         = "Please enter a valid email. Email cannot be left empty"
	MsgEmptyEmailShort    = "Email cannot be left empty!"
	MsgAccountNotFound    = "This account does not exist."
	MsgNotAuthorized      = "User not authorized"
	MsgNoRequestSent      = "You did not send a collaboration request for this idea"
	MsgInvalidReaction    = "Invalid reaction type"
	MsgAccessDenied       = "Access denied"
)

// Account and collaboration messages
const (
	MsgEmptyPassword         = "Password cannot be left empty!"
	MsgEmailTaken            = "An account with this email already exists"
	MsgInvalidCredentials    = "Invalid email or password"
	MsgOwnIdea               = "You cannot collaborate on your own idea"
	MsgRequestAlreadySent    = "You already sent a collaboration request for this idea"
	MsgRequestNotFoundFormat = "Collaboration request with UUID %s does not exist."
	MsgRequestAnswered       = "This collaboration request has already been answered"
	MsgInvalidStatus         = "Invalid collaboration status"
	MsgInvalidURL            = "Please enter a valid http or https URL"
	MsgURLNotFoundFormat     = "URL with UUID %s does not exist."
	MsgImagesOnly            = "Only image uploads are allowed"
	MsgUploadsDisabled       = "Image uploads are not configured"
	MsgTagExistsFormat       = "%s with name %s already exists"
)

// MaxTitleLength is the longest idea title accepted, counted in characters.
const MaxTitleLength = 100
