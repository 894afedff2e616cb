package keys

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrUnreadableKeyFile means a file-indirected secret reference pointed at a
// file that could not be read.
var ErrUnreadableKeyFile = errors.New("unable to read key file")

// Load resolves a secret reference to raw key material. A leading '@' marks
// the remainder as a file path read in full; anything else is used as the
// literal bytes of the reference.
func Load(reference string) ([]byte, error) {
	if path, ok := strings.CutPrefix(reference, "@"); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrUnreadableKeyFile, path, err)
		}
		return data, nil
	}
	return []byte(reference), nil
}
