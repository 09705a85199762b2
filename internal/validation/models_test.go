package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/keiko-dev/keiko/internal/chat"
	"github.com/stretchr/testify/require"
)

func TestValidateModelsAllAvailable(t *testing.T) {
	gw := chat.NewScriptedGateway()
	gw.Queue("m1", "hi")
	gw.Queue("m2", "hi")

	require.NoError(t, ValidateModels(context.Background(), gw, []string{"m1", "m2"}))
}

func TestValidateModelsReportsEveryFailure(t *testing.T) {
	gw := chat.NewScriptedGateway()
	gw.Err = errors.New("not found")

	err := ValidateModels(context.Background(), gw, []string{"m1", "m2"})
	require.ErrorContains(t, err, "m1")
	require.ErrorContains(t, err, "m2")
}

func TestValidateModelsEmptyList(t *testing.T) {
	require.NoError(t, ValidateModels(context.Background(), chat.NewScriptedGateway(), nil))
}
