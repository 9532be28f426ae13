package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxTopicTitleLen       = 100
	maxTopicDescriptionLen = 500
	maxPostTitleLen        = 120
	maxUsernameLen         = 32
	minPasswordLen         = 8
)

// ValidationError reports a local pre-flight field violation. Inputs that
// fail validation never reach the network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// TopicInput is a trimmed, validated topic creation payload.
type TopicInput struct {
	Title       string
	Description string
}

func ValidateTopicInput(title, description string) (TopicInput, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" {
		return TopicInput{}, invalid("title", "Title is required.")
	}
	if utf8.RuneCountInString(title) > maxTopicTitleLen {
		return TopicInput{}, invalid("title", fmt.Sprintf("Title too long (max %d).", maxTopicTitleLen))
	}
	if utf8.RuneCountInString(description) > maxTopicDescriptionLen {
		return TopicInput{}, invalid("description", fmt.Sprintf("Description too long (max %d).", maxTopicDescriptionLen))
	}
	return TopicInput{Title: title, Description: description}, nil
}

// PostInput is a trimmed, validated post creation/update payload.
type PostInput struct {
	Title string
	Body  string
}

func ValidatePostInput(title, body string) (PostInput, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" {
		return PostInput{}, invalid("title", "Title is required.")
	}
	if utf8.RuneCountInString(title) > maxPostTitleLen {
		return PostInput{}, invalid("title", fmt.Sprintf("Title too long (max %d).", maxPostTitleLen))
	}
	if body == "" {
		return PostInput{}, invalid("body", "Body is required.")
	}
	return PostInput{Title: title, Body: body}, nil
}

// ValidateCommentBody trims and validates a comment body.
func ValidateCommentBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", invalid("body", "Comment cannot be empty.")
	}
	return body, nil
}

// Credentials is a validated signup/login payload. The password is not
// trimmed; leading and trailing spaces are legal password characters.
type Credentials struct {
	Username string
	Password string
}

// ValidateCredentials checks a signup form: username length and password
// strength rules apply only when creating an account.
func ValidateCredentials(username, password string) (Credentials, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Credentials{}, invalid("username", "Username is required.")
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return Credentials{}, invalid("username", fmt.Sprintf("Username too long (max %d).", maxUsernameLen))
	}
	if password == "" {
		return Credentials{}, invalid("password", "Password is required.")
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return Credentials{}, invalid("password", fmt.Sprintf("Password too short (min %d).", minPasswordLen))
	}
	return Credentials{Username: username, Password: password}, nil
}

// ValidateLoginCredentials checks a login form. Existing accounts may
// predate the signup rules, so the only local requirement is that both
// fields are present; everything else is the server's verdict.
func ValidateLoginCredentials(username, password string) (Credentials, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Credentials{}, invalid("username", "Username is required.")
	}
	if password == "" {
		return Credentials{}, invalid("password", "Password is required.")
	}
	return Credentials{Username: username, Password: password}, nil
}
