package auth

import (
	"fmt"
	"os"
	"strings"
)

// TokenProvider supplies a bearer token for APIs that want one.
type TokenProvider interface {
	AccessToken() (string, error)
}

// StaticToken is a token known up front, e.g. from the environment.
type StaticToken string

// AccessToken returns the token itself.
func (s StaticToken) AccessToken() (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", fmt.Errorf("static token is empty")
	}
	return strings.TrimSpace(string(s)), nil
}

// FileTokenProvider reads a bearer token from a file on every request, so
// a rotated token is picked up without a restart.
type FileTokenProvider struct {
	path string
}

// NewFileTokenProvider creates a TokenProvider that reads from path.
func NewFileTokenProvider(path string) *FileTokenProvider {
	return &FileTokenProvider{path: path}
}

// AccessToken reads the file and trims whitespace.
func (f *FileTokenProvider) AccessToken() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("reading token from %s: %w", f.path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", f.path)
	}

	return token, nil
}

// Resolve picks a provider: an inline token wins over a token file.
// It returns nil when neither is configured, meaning anonymous access.
func Resolve(token, tokenPath string) TokenProvider {
	switch {
	case strings.TrimSpace(token) != "":
		return StaticToken(token)
	case strings.TrimSpace(tokenPath) != "":
		return NewFileTokenProvider(tokenPath)
	default:
		return nil
	}
}
