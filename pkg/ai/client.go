// Package ai talks to the language model behind the advisory features and
// turns its replies into typed results.
package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyOutput  = errors.New("AI returned no usable output")
	ErrInvalidInput = errors.New("invalid AI request")
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is one turn of a chat history.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Image is inline image data sent alongside the user text.
type Image struct {
	MIMEType string
	Data     []byte
}

// DataURI renders the image as data:<mime>;base64,<data>.
func (i *Image) DataURI() string {
	return "data:" + i.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// ParseDataURI reads a base64 data URI such as those produced by a browser
// file reader.
func ParseDataURI(s string) (*Image, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, fmt.Errorf("%w: photo must be a data URI", ErrInvalidInput)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("%w: data URI has no payload", ErrInvalidInput)
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok || mime == "" {
		return nil, fmt.Errorf("%w: data URI must carry a MIME type and base64 data", ErrInvalidInput)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &Image{MIMEType: mime, Data: data}, nil
}

// Prompt is one request to the model. Flow names the calling flow so that
// the mock client can answer in the right shape.
type Prompt struct {
	Flow    string
	System  string
	User    string
	History []Message
	Image   *Image
	JSON    bool
}

type Client interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}
