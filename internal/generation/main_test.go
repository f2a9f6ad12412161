package generation

import (
	"io"
	"os"
	"testing"

	"github.com/firefly-engineering/genctl/internal/logging"
)

func TestMain(m *testing.M) {
	logging.SetUserOutput(io.Discard, io.Discard)
	logging.Setup(false, false, io.Discard)
	os.Exit(m.Run())
}
