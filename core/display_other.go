//go:build !darwin

package core

import "github.com/hamidzr/displaymode/model"

// NewSystemSource returns the display source of the running OS. Only macOS
// is supported; elsewhere use a modes file.
func NewSystemSource() (DisplaySource, error) {
	return nil, model.ErrUnsupportedPlatform
}
