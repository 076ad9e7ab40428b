package adaptor

import (
	"fmt"

	"github.com/pa-m/geneva"
)

func invalidArgument(msg string) error {
	return fmt.Errorf("adaptor: %s: %w", msg, geneva.ErrInvalidArgument)
}
