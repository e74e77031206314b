package errs

import (
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	err := Validationf("row %d has %d tokens", 3, 2)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrResource))
	assert.Contains(t, err.Error(), "row 3 has 2 tokens")

	err = Configurationf("model name is empty")
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestResourceKeepsCause(t *testing.T) {
	err := Resource(os.ErrNotExist, "train.csv")
	assert.True(t, errors.Is(err, ErrResource))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "train.csv")
}

func TestEngineCarriesOperationAndName(t *testing.T) {
	cause := errors.New("boom")
	err := Engine(cause, "train", "workingFFNHypothesisFunction")
	assert.True(t, errors.Is(err, ErrEngine))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "train")
	assert.Contains(t, err.Error(), "workingFFNHypothesisFunction")

	err = Engine(cause, "predict", "")
	assert.Equal(t, "engine failure: engine predict: boom", err.Error())
}
